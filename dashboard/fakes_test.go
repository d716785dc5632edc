package dashboard_test

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"invdash/dashboard"
	"invdash/models"
)

// fakeAPI is an in-memory inventory server. It counts every call and can be
// told to fail any method by name.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int
	errs  map[string]error

	products   []models.Product
	suppliers  []models.Supplier
	orders     []models.Order
	categories []models.Category
	stats      models.DashboardStats
	txns       []models.Transaction
	pages      int

	productQueries  []models.ProductQuery
	supplierQueries []models.SupplierQuery
	orderQueries    []models.OrderQuery
	txnLimits       []int
	topLimits       []int

	createdProducts  []models.ProductPayload
	createdSuppliers []models.SupplierPayload
	createdOrders    []models.OrderPayload
	deleted          []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		calls: map[string]int{},
		errs:  map[string]error{},
		pages: 1,
		categories: []models.Category{
			{ID: 1, Name: "Hardware"},
			{ID: 2, Name: "Tools"},
		},
		suppliers: []models.Supplier{
			{ID: 1, Name: "Acme Supply", City: strPtr("Springfield")},
		},
		products: []models.Product{
			{ID: 1, Name: "Bolt", SKU: strPtr("B1"), UnitPrice: decimal.RequireFromString("0.25"), StockLevel: 100, ReorderLevel: 10},
			{ID: 2, Name: "Hammer", UnitPrice: decimal.RequireFromString("12.50"), StockLevel: 3, ReorderLevel: 5, IsLowStock: true},
		},
		orders: []models.Order{
			{ID: 7, CustomerName: strPtr("Ann"), Status: models.OrderStatusPending, TotalAmount: decimal.RequireFromString("25")},
		},
		stats: models.DashboardStats{TotalProducts: 2, LowStockCount: 1, TotalOrders: 1},
		txns: []models.Transaction{
			{ID: 1, ProductName: "Bolt", Type: models.TransactionIn, Quantity: 50},
		},
	}
}

func strPtr(s string) *string { return &s }

// enter counts a call and returns the configured error for it.
func (f *fakeAPI) enter(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) failWith(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
}

func (f *fakeAPI) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = map[string]int{}
}

func pagination(page, pages, total int) models.Pagination {
	if page < 1 {
		page = 1
	}
	return models.Pagination{CurrentPage: page, Pages: pages, Total: total, PerPage: models.DefaultPageSize}
}

func (f *fakeAPI) Categories(ctx context.Context) ([]models.Category, error) {
	if err := f.enter("Categories"); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeAPI) Products(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error) {
	if err := f.enter("Products"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productQueries = append(f.productQueries, q)

	var matched []models.Product
	for _, p := range f.products {
		if q.Search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
			matched = append(matched, p)
		}
	}
	return &models.ProductPage{Pagination: pagination(q.Page, f.pages, len(matched)), Products: matched}, nil
}

func (f *fakeAPI) Suppliers(ctx context.Context, q models.SupplierQuery) (*models.SupplierPage, error) {
	if err := f.enter("Suppliers"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.supplierQueries = append(f.supplierQueries, q)
	sups := append([]models.Supplier(nil), f.suppliers...)
	return &models.SupplierPage{Pagination: pagination(q.Page, f.pages, len(sups)), Suppliers: sups}, nil
}

func (f *fakeAPI) Orders(ctx context.Context, q models.OrderQuery) (*models.OrderPage, error) {
	if err := f.enter("Orders"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderQueries = append(f.orderQueries, q)
	return &models.OrderPage{Pagination: pagination(q.Page, f.pages, len(f.orders)), Orders: f.orders}, nil
}

// CreateProduct stores the product with the server's low-stock rule.
func (f *fakeAPI) CreateProduct(ctx context.Context, p models.ProductPayload) error {
	if err := f.enter("CreateProduct"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdProducts = append(f.createdProducts, p)
	sku := p.SKU
	f.products = append(f.products, models.Product{
		ID:           len(f.products) + 1,
		Name:         p.Name,
		SKU:          &sku,
		UnitPrice:    decimal.NewFromFloat(p.UnitPrice),
		StockLevel:   p.StockLevel,
		ReorderLevel: p.ReorderLevel,
		IsLowStock:   p.StockLevel <= p.ReorderLevel,
	})
	return nil
}

func (f *fakeAPI) CreateSupplier(ctx context.Context, p models.SupplierPayload) error {
	if err := f.enter("CreateSupplier"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdSuppliers = append(f.createdSuppliers, p)
	f.suppliers = append(f.suppliers, models.Supplier{ID: len(f.suppliers) + 1, Name: p.Name})
	return nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, p models.OrderPayload) error {
	if err := f.enter("CreateOrder"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdOrders = append(f.createdOrders, p)
	return nil
}

func (f *fakeAPI) remove(name, resource string, id int) error {
	if err := f.enter(name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, resource)
	return nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id int) error {
	return f.remove("DeleteProduct", "products", id)
}

func (f *fakeAPI) DeleteSupplier(ctx context.Context, id int) error {
	return f.remove("DeleteSupplier", "suppliers", id)
}

func (f *fakeAPI) DeleteOrder(ctx context.Context, id int) error {
	return f.remove("DeleteOrder", "orders", id)
}

func (f *fakeAPI) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	if err := f.enter("DashboardStats"); err != nil {
		return nil, err
	}
	stats := f.stats
	return &stats, nil
}

func (f *fakeAPI) RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	if err := f.enter("RecentTransactions"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txnLimits = append(f.txnLimits, limit)
	return f.txns, nil
}

func (f *fakeAPI) LowInventory(ctx context.Context) (*models.LowInventoryReport, error) {
	if err := f.enter("LowInventory"); err != nil {
		return nil, err
	}
	return &models.LowInventoryReport{
		Items:      []models.LowInventoryItem{{ProductID: 2, ProductName: "Hammer", StockLevel: 3, ReorderLevel: 5, Shortage: 2}},
		TotalItems: 1,
	}, nil
}

func (f *fakeAPI) SalesByCategory(ctx context.Context) ([]models.CategorySales, error) {
	if err := f.enter("SalesByCategory"); err != nil {
		return nil, err
	}
	return []models.CategorySales{{CategoryName: "Tools", TotalRevenue: decimal.RequireFromString("125")}}, nil
}

func (f *fakeAPI) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	if err := f.enter("TopProducts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topLimits = append(f.topLimits, limit)
	return []models.TopProduct{{ProductName: "Bolt", TotalSold: 40}}, nil
}

func (f *fakeAPI) InventoryValuation(ctx context.Context) ([]models.CategoryValuation, error) {
	if err := f.enter("InventoryValuation"); err != nil {
		return nil, err
	}
	return nil, nil
}

// recordingSurface keeps everything the dashboard rendered.
type recordingSurface struct {
	activated  []dashboard.Section
	loading    []bool
	notes      []dashboard.Notification
	stats      []dashboard.StatsView
	activity   []dashboard.ActivityView
	tables     map[dashboard.Section][]dashboard.TableView
	pagination map[dashboard.Section][]dashboard.PaginationView
	options    map[dashboard.OptionTarget][]dashboard.Option
	reports    []dashboard.ReportView
	builder    []dashboard.OrderBuilderView
	closed     []dashboard.Modal
	prompts    []string
	confirm    bool
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		tables:     map[dashboard.Section][]dashboard.TableView{},
		pagination: map[dashboard.Section][]dashboard.PaginationView{},
		options:    map[dashboard.OptionTarget][]dashboard.Option{},
		confirm:    true,
	}
}

func (s *recordingSurface) ActivateSection(sec dashboard.Section) {
	s.activated = append(s.activated, sec)
}
func (s *recordingSurface) SetLoading(on bool) { s.loading = append(s.loading, on) }
func (s *recordingSurface) Notify(n dashboard.Notification) {
	s.notes = append(s.notes, n)
}
func (s *recordingSurface) RenderStats(v dashboard.StatsView) { s.stats = append(s.stats, v) }
func (s *recordingSurface) RenderActivity(v dashboard.ActivityView) {
	s.activity = append(s.activity, v)
}
func (s *recordingSurface) RenderTable(list dashboard.Section, v dashboard.TableView) {
	s.tables[list] = append(s.tables[list], v)
}
func (s *recordingSurface) RenderPagination(list dashboard.Section, v dashboard.PaginationView) {
	s.pagination[list] = append(s.pagination[list], v)
}
func (s *recordingSurface) RenderOptions(target dashboard.OptionTarget, opts []dashboard.Option) {
	s.options[target] = opts
}
func (s *recordingSurface) RenderReport(v dashboard.ReportView) { s.reports = append(s.reports, v) }
func (s *recordingSurface) RenderOrderBuilder(v dashboard.OrderBuilderView) {
	s.builder = append(s.builder, v)
}
func (s *recordingSurface) CloseModal(m dashboard.Modal) { s.closed = append(s.closed, m) }
func (s *recordingSurface) Confirm(prompt string) bool {
	s.prompts = append(s.prompts, prompt)
	return s.confirm
}

func (s *recordingSurface) lastNote() dashboard.Notification {
	if len(s.notes) == 0 {
		return dashboard.Notification{}
	}
	return s.notes[len(s.notes)-1]
}

func (s *recordingSurface) lastTable(list dashboard.Section) dashboard.TableView {
	views := s.tables[list]
	if len(views) == 0 {
		return dashboard.TableView{}
	}
	return views[len(views)-1]
}

// manualRunner queues tasks so tests control completion order.
type manualRunner struct {
	queue []dashboard.Task
}

func (r *manualRunner) Go(task dashboard.Task) {
	r.queue = append(r.queue, task)
}

// run completes the i-th queued task (in issue order).
func (r *manualRunner) run(i int) {
	if apply := r.queue[i](context.Background()); apply != nil {
		apply()
	}
}

// newTestApp builds an App over the fakes with an inline runner.
func newTestApp(active dashboard.Section) (*dashboard.App, *fakeAPI, *recordingSurface) {
	api := newFakeAPI()
	surface := newRecordingSurface()
	state := dashboard.NewState()
	state.Active = active
	app := dashboard.New(api, dashboard.InlineRunner{}, surface, state)
	return app, api, surface
}
