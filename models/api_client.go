package models

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Inventory API Client
//
// Every request the dashboards make goes through APIClient.Call. It sends
// JSON, tags each request with an X-Request-ID, and turns any non-2xx
// response into an *APIError carrying the server's "error" message.
// There are no retries: a failed call is reported once and abandoned.
// ============================================================================

// DefaultErrorMessage is used when a failed response has no usable message.
const DefaultErrorMessage = "API request failed"

// APIError is a non-success HTTP response from the inventory API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorMessage returns the text to show a user for err. Server and
// validation messages pass through; anything else gets the generic message.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}
	return DefaultErrorMessage
}

// CallOptions customize a single Call. The zero value is a plain GET.
type CallOptions struct {
	Method  string
	Query   map[string]string
	Body    any
	Headers map[string]string
}

// APIClient talks to the inventory REST API.
type APIClient struct {
	http    *resty.Client
	baseURL string
}

// NewAPIClient builds a client for cfg.APIBaseURL with cfg.RequestTimeout
// applied to every request.
func NewAPIClient(cfg *Config) *APIClient {
	base := strings.TrimSuffix(cfg.APIBaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.RequestTimeout)

	return &APIClient{
		http:    restyClient,
		baseURL: base,
	}
}

// BaseURL returns the API root the client was configured with.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// Call issues one request against endpoint (relative to the base URL) and
// decodes a successful JSON body into out. A nil out discards the body.
func (c *APIClient) Call(ctx context.Context, endpoint string, opts CallOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())
	if len(opts.Query) > 0 {
		req.SetQueryParams(opts.Query)
	}
	if len(opts.Headers) > 0 {
		req.SetHeaders(opts.Headers)
	}
	if opts.Body != nil {
		req.SetBody(opts.Body)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return serr.Wrap(err, method+" "+endpoint+" failed")
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		apiErr := newAPIError(status, resp.Body())
		logger.Debug("API call rejected", "method", method, "endpoint", endpoint,
			"status", strconv.Itoa(status), "message", apiErr.Message)
		return apiErr
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return serr.Wrap(err, "failed to decode response from "+endpoint)
	}
	return nil
}

// newAPIError extracts the server's message from an error body, falling
// back to DefaultErrorMessage when the body is absent or not JSON.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: DefaultErrorMessage}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}

// ============================================================================
// Reference data and lists
// ============================================================================

// Categories returns every category. The endpoint is not paginated.
func (c *APIClient) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.Call(ctx, "/categories", CallOptions{}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Products returns one page of products matching q.
func (c *APIClient) Products(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	page := &ProductPage{}
	if err := c.Call(ctx, "/products", CallOptions{Query: q.Params()}, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Suppliers returns one page of suppliers matching q.
func (c *APIClient) Suppliers(ctx context.Context, q SupplierQuery) (*SupplierPage, error) {
	page := &SupplierPage{}
	if err := c.Call(ctx, "/suppliers", CallOptions{Query: q.Params()}, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Orders returns one page of orders matching q.
func (c *APIClient) Orders(ctx context.Context, q OrderQuery) (*OrderPage, error) {
	page := &OrderPage{}
	if err := c.Call(ctx, "/orders", CallOptions{Query: q.Params()}, page); err != nil {
		return nil, err
	}
	return page, nil
}

// ============================================================================
// Mutations
// ============================================================================

func (c *APIClient) CreateProduct(ctx context.Context, p ProductPayload) error {
	return c.Call(ctx, "/products", CallOptions{Method: http.MethodPost, Body: p}, nil)
}

func (c *APIClient) CreateSupplier(ctx context.Context, p SupplierPayload) error {
	return c.Call(ctx, "/suppliers", CallOptions{Method: http.MethodPost, Body: p}, nil)
}

func (c *APIClient) CreateOrder(ctx context.Context, p OrderPayload) error {
	return c.Call(ctx, "/orders", CallOptions{Method: http.MethodPost, Body: p}, nil)
}

func (c *APIClient) DeleteProduct(ctx context.Context, id int) error {
	return c.deleteResource(ctx, "products", id)
}

func (c *APIClient) DeleteSupplier(ctx context.Context, id int) error {
	return c.deleteResource(ctx, "suppliers", id)
}

func (c *APIClient) DeleteOrder(ctx context.Context, id int) error {
	return c.deleteResource(ctx, "orders", id)
}

func (c *APIClient) deleteResource(ctx context.Context, resource string, id int) error {
	endpoint := "/" + resource + "/" + strconv.Itoa(id)
	return c.Call(ctx, endpoint, CallOptions{Method: http.MethodDelete}, nil)
}

// ============================================================================
// Reports
// ============================================================================

func (c *APIClient) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	if err := c.Call(ctx, "/reports/dashboard-stats", CallOptions{}, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentTransactions returns at most limit of the newest stock movements.
func (c *APIClient) RecentTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	var resp RecentTransactions
	opts := CallOptions{Query: map[string]string{"limit": strconv.Itoa(limit)}}
	if err := c.Call(ctx, "/reports/recent-transactions", opts, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (c *APIClient) LowInventory(ctx context.Context) (*LowInventoryReport, error) {
	report := &LowInventoryReport{}
	if err := c.Call(ctx, "/reports/low-inventory", CallOptions{}, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *APIClient) SalesByCategory(ctx context.Context) ([]CategorySales, error) {
	var report SalesByCategoryReport
	if err := c.Call(ctx, "/reports/sales-by-category", CallOptions{}, &report); err != nil {
		return nil, err
	}
	return report.Rows, nil
}

func (c *APIClient) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var report TopProductsReport
	opts := CallOptions{Query: map[string]string{"limit": strconv.Itoa(limit)}}
	if err := c.Call(ctx, "/reports/top-selling-products", opts, &report); err != nil {
		return nil, err
	}
	return report.Products, nil
}

func (c *APIClient) InventoryValuation(ctx context.Context) ([]CategoryValuation, error) {
	var report ValuationReport
	if err := c.Call(ctx, "/reports/inventory-valuation", CallOptions{}, &report); err != nil {
		return nil, err
	}
	return report.Rows, nil
}
