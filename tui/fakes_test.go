package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"invdash/dashboard"
	"invdash/models"
)

// fakeAPI serves a small fixed inventory and records what was asked of it.
// Methods the terminal tests never reach fall through to the nil embed.
type fakeAPI struct {
	dashboard.API

	mu               sync.Mutex
	calls            map[string]int
	productQueries   []models.ProductQuery
	orderQueries     []models.OrderQuery
	deleted          []int
	createdSuppliers []models.SupplierPayload
	createdOrders    []models.OrderPayload
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) enter(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func page(q int) models.Pagination {
	return models.Pagination{CurrentPage: max(q, 1), Pages: 1, Total: 2, PerPage: models.DefaultPageSize}
}

func (f *fakeAPI) Categories(ctx context.Context) ([]models.Category, error) {
	f.enter("Categories")
	return []models.Category{{ID: 1, Name: "Hardware"}, {ID: 2, Name: "Tools"}}, nil
}

func (f *fakeAPI) Suppliers(ctx context.Context, q models.SupplierQuery) (*models.SupplierPage, error) {
	f.enter("Suppliers")
	return &models.SupplierPage{Pagination: page(q.Page), Suppliers: []models.Supplier{{ID: 4, Name: "Acme"}}}, nil
}

func (f *fakeAPI) Products(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error) {
	f.enter("Products")
	f.mu.Lock()
	f.productQueries = append(f.productQueries, q)
	f.mu.Unlock()
	return &models.ProductPage{Pagination: page(q.Page), Products: []models.Product{
		{ID: 1, Name: "Bolt", UnitPrice: decimal.RequireFromString("0.25"), StockLevel: 100, ReorderLevel: 10},
		{ID: 2, Name: "Hammer", UnitPrice: decimal.RequireFromString("12.50"), StockLevel: 3, ReorderLevel: 5, IsLowStock: true},
	}}, nil
}

func (f *fakeAPI) Orders(ctx context.Context, q models.OrderQuery) (*models.OrderPage, error) {
	f.enter("Orders")
	f.mu.Lock()
	f.orderQueries = append(f.orderQueries, q)
	f.mu.Unlock()
	name := "Ann"
	return &models.OrderPage{Pagination: page(q.Page), Orders: []models.Order{
		{ID: 7, CustomerName: &name, Status: models.OrderStatusPending, TotalAmount: decimal.RequireFromString("25")},
	}}, nil
}

func (f *fakeAPI) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	f.enter("DashboardStats")
	return &models.DashboardStats{TotalProducts: 42, LowStockCount: 1, TotalOrders: 17}, nil
}

func (f *fakeAPI) RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	f.enter("RecentTransactions")
	return []models.Transaction{{ID: 1, ProductName: "Bolt", Type: models.TransactionIn, Quantity: 50}}, nil
}

func (f *fakeAPI) LowInventory(ctx context.Context) (*models.LowInventoryReport, error) {
	f.enter("LowInventory")
	return &models.LowInventoryReport{Items: []models.LowInventoryItem{
		{ProductID: 2, ProductName: "Hammer", StockLevel: 3, ReorderLevel: 5, Shortage: 2},
	}, TotalItems: 1}, nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id int) error {
	f.enter("DeleteProduct")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) CreateSupplier(ctx context.Context, p models.SupplierPayload) error {
	f.enter("CreateSupplier")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdSuppliers = append(f.createdSuppliers, p)
	return nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, p models.OrderPayload) error {
	f.enter("CreateOrder")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdOrders = append(f.createdOrders, p)
	return nil
}

func (f *fakeAPI) lastProductQuery() models.ProductQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.productQueries[len(f.productQueries)-1]
}

func (f *fakeAPI) lastOrderQuery() models.OrderQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderQueries[len(f.orderQueries)-1]
}

// ============================================================================
// Driving the model
// ============================================================================

func testConfig() *models.Config {
	return &models.Config{
		RequestTimeout: time.Second,
		SearchDebounce: 10 * time.Millisecond,
	}
}

// newStartedModel returns a model that has completed startup.
func newStartedModel(t *testing.T) (*Model, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	m := New(testConfig(), api)
	m.app.Start()
	drive(m, m.runner.flush())
	if !m.app.Started() {
		t.Fatal("dashboard did not start")
	}
	return m, api
}

// drive runs cmd and every command it leads to, feeding task results back
// through Update. Commands that do not finish promptly, such as cursor blink
// ticks, are abandoned.
func drive(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := runCmd(next).(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case applyMsg:
			_, follow := m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

func runCmd(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(300 * time.Millisecond):
		return nil
	}
}

// press sends keys through Update and settles the resulting work.
func press(m *Model, keys ...string) {
	for _, k := range keys {
		_, cmd := m.Update(key(k))
		drive(m, cmd)
	}
}

// typeText sends each rune as its own key press.
func typeText(m *Model, text string) {
	for _, r := range text {
		press(m, string(r))
	}
}

var specialKeys = map[string]tea.KeyType{
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"backspace": tea.KeyBackspace,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+x":    tea.KeyCtrlX,
	"ctrl+c":    tea.KeyCtrlC,
}

func key(k string) tea.KeyMsg {
	if t, ok := specialKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
