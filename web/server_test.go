package web_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rohanthewiz/rweb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdash/dashboard"
	"invdash/models"
	"invdash/web"
)

// inventoryStub fakes the inventory API and records what the dashboard asked for.
type inventoryStub struct {
	mu       sync.Mutex
	requests []string // "METHOD /path?query"
}

func (s *inventoryStub) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())
}

func (s *inventoryStub) seen(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

// last returns the query of the newest request starting with prefix.
func (s *inventoryStub) last(prefix string) (url.Values, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if strings.HasPrefix(s.requests[i], prefix) {
			u, err := url.Parse(strings.TrimPrefix(s.requests[i], prefix))
			if err != nil {
				return nil, false
			}
			return u.Query(), true
		}
	}
	return nil, false
}

func (s *inventoryStub) handler() http.Handler {
	mux := http.NewServeMux()
	reply := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			s.record(r)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, body)
		}
	}

	mux.Handle("GET /api/categories", reply(`[{"category_id": 3, "category_name": "Tools"}]`))
	mux.Handle("GET /api/suppliers", reply(`{"suppliers": [{"supplier_id": 4, "supplier_name": "Acme"}],
		"current_page": 1, "pages": 1, "total": 1, "per_page": 20}`))
	mux.Handle("GET /api/products", reply(`{"products": [{"product_id": 2, "product_name": "Hammer",
		"sku": "H-1", "category_name": "Tools", "unit_price": 12.5, "stock_level": 3,
		"reorder_level": 10, "is_low_stock": true}],
		"current_page": 1, "pages": 1, "total": 1, "per_page": 20}`))
	mux.Handle("GET /api/orders", reply(`{"orders": [], "current_page": 1, "pages": 0, "total": 0, "per_page": 20}`))
	mux.Handle("GET /api/reports/dashboard-stats", reply(`{"total_products": 42, "low_stock_count": 5,
		"total_orders": 17, "total_revenue": 1234.5, "pending_orders": 2,
		"total_inventory_value": 999, "recent_orders": 6, "total_categories": 1, "total_suppliers": 1}`))
	mux.Handle("GET /api/reports/recent-transactions", reply(`{"recent_transactions": []}`))
	mux.Handle("GET /api/reports/low-inventory", reply(`{"low_inventory_items": [], "total_items": 0}`))
	mux.Handle("DELETE /api/products/{id}", reply(`{"message": "Product deleted"}`))
	return mux
}

type dashboardTestServer struct {
	baseURL string
	client  *http.Client
	stub    *inventoryStub
}

// setupDashboardServer runs the dashboard against a stub inventory API.
// Uses the rweb ReadyChan pattern for reliable server startup detection.
func setupDashboardServer(t *testing.T) *dashboardTestServer {
	t.Helper()

	stub := &inventoryStub{}
	upstream := httptest.NewServer(stub.handler())
	t.Cleanup(upstream.Close)

	cfg := &models.Config{
		APIBaseURL:     upstream.URL + "/api",
		RequestTimeout: 5 * time.Second,
		SearchDebounce: 300 * time.Millisecond,
		SessionTTL:     time.Hour,
	}

	readyChan := make(chan struct{}, 1)
	srv := web.NewServerWithOptions(rweb.ServerOptions{
		ReadyChan: readyChan,
		Address:   "localhost:", // Dynamic port assignment
	}, cfg, models.NewAPIClient(cfg))

	go func() {
		_ = srv.Run()
	}()
	<-readyChan

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &dashboardTestServer{
		baseURL: fmt.Sprintf("http://localhost:%s", srv.GetListenPort()),
		client:  &http.Client{Timeout: 5 * time.Second, Jar: jar},
		stub:    stub,
	}
}

// do sends an htmx-style request and returns the fragments and HX-Trigger.
func (s *dashboardTestServer) do(t *testing.T, method, path string, form url.Values) (string, string) {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, s.baseURL+path, body)
	require.NoError(t, err)
	req.Header.Set("HX-Request", "true")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data), resp.Header.Get("HX-Trigger")
}

func TestDashboardServer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping server integration test in short mode")
	}
	server := setupDashboardServer(t)

	t.Run("page shell", func(t *testing.T) {
		body, _ := server.do(t, http.MethodGet, "/", nil)
		assert.Contains(t, body, "Inventory Management Dashboard")
		assert.Contains(t, body, `hx-post="/app/start"`)
	})

	t.Run("health", func(t *testing.T) {
		body, _ := server.do(t, http.MethodGet, "/health", nil)
		var health map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &health))
		assert.Equal(t, "healthy", health["status"])
	})

	t.Run("start fills the dashboard", func(t *testing.T) {
		body, trigger := server.do(t, http.MethodPost, "/app/start", nil)

		assert.Contains(t, body, `id="stats-cards"`)
		assert.Contains(t, body, "42")
		assert.Contains(t, body, "Tools")
		assert.Contains(t, body, "Acme")
		assert.Contains(t, body, dashboard.EmptyTransactions)
		assert.JSONEq(t, `{"showSection":"dashboard"}`, trigger)
		assert.Equal(t, 1, server.stub.seen("GET /api/categories"))
	})

	t.Run("show products", func(t *testing.T) {
		body, trigger := server.do(t, http.MethodPost, "/app/section/products", nil)

		assert.Contains(t, body, `id="products-table-body"`)
		assert.Contains(t, body, "Hammer")
		assert.Contains(t, body, "Low Stock")
		assert.JSONEq(t, `{"showSection":"products"}`, trigger)
	})

	t.Run("search products", func(t *testing.T) {
		server.do(t, http.MethodGet, "/app/products?search=ham&category_id=3&low_stock=true", nil)

		q, ok := server.stub.last("GET /api/products")
		require.True(t, ok)
		assert.Equal(t, "ham", q.Get("search"))
		assert.Equal(t, "3", q.Get("category_id"))
		assert.Equal(t, "true", q.Get("low_stock"))
		assert.Equal(t, "1", q.Get("page"))
	})

	t.Run("unknown section", func(t *testing.T) {
		body, trigger := server.do(t, http.MethodPost, "/app/section/billing", nil)
		assert.Contains(t, body, "Unknown section")
		assert.Contains(t, body, "toast-error")
		assert.Empty(t, trigger)
	})

	t.Run("unconfirmed delete is declined", func(t *testing.T) {
		server.do(t, http.MethodDelete, "/app/products/2", nil)
		assert.Zero(t, server.stub.seen("DELETE /api/products/2"))
	})

	t.Run("confirmed delete", func(t *testing.T) {
		body, _ := server.do(t, http.MethodDelete, "/app/products/2?confirmed=true", nil)
		assert.Equal(t, 1, server.stub.seen("DELETE /api/products/2"))
		assert.Contains(t, body, "toast-success")
	})

	t.Run("invalid product form", func(t *testing.T) {
		body, trigger := server.do(t, http.MethodPost, "/app/products", url.Values{"product_name": {"Saw"}})
		assert.Contains(t, body, "Unit price is required")
		assert.Empty(t, trigger)
		assert.Zero(t, server.stub.seen("POST /api/products"))
	})

	t.Run("report", func(t *testing.T) {
		body, _ := server.do(t, http.MethodGet, "/app/reports/low-inventory", nil)
		assert.Contains(t, body, `id="report-content"`)
		assert.Equal(t, 1, server.stub.seen("GET /api/reports/low-inventory"))
	})

	t.Run("page reload forgets filters", func(t *testing.T) {
		server.do(t, http.MethodGet, "/app/products?search=bolt&low_stock=true", nil)

		server.do(t, http.MethodGet, "/", nil)
		server.do(t, http.MethodPost, "/app/start", nil)
		server.do(t, http.MethodPost, "/app/section/products", nil)

		q, ok := server.stub.last("GET /api/products")
		require.True(t, ok)
		assert.Empty(t, q.Get("search"))
		assert.Empty(t, q.Get("low_stock"))
		assert.Equal(t, "1", q.Get("page"))
	})

	t.Run("order builder without an open order", func(t *testing.T) {
		body, _ := server.do(t, http.MethodPost, "/app/order-builder/items", nil)
		assert.Contains(t, body, "No order is being built")
	})
}
