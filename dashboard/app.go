package dashboard

import (
	"context"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"golang.org/x/sync/errgroup"

	"invdash/models"
)

// RecentTransactionsLimit is how many movements the activity feed shows.
const RecentTransactionsLimit = 5

// StartupFailedMessage is shown when any of the startup fetches fails.
const StartupFailedMessage = "Error loading application"

// API is the slice of the inventory API the dashboard consumes.
// *models.APIClient implements it.
type API interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Products(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error)
	Suppliers(ctx context.Context, q models.SupplierQuery) (*models.SupplierPage, error)
	Orders(ctx context.Context, q models.OrderQuery) (*models.OrderPage, error)

	CreateProduct(ctx context.Context, p models.ProductPayload) error
	CreateSupplier(ctx context.Context, p models.SupplierPayload) error
	CreateOrder(ctx context.Context, p models.OrderPayload) error
	DeleteProduct(ctx context.Context, id int) error
	DeleteSupplier(ctx context.Context, id int) error
	DeleteOrder(ctx context.Context, id int) error

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
	LowInventory(ctx context.Context) (*models.LowInventoryReport, error)
	SalesByCategory(ctx context.Context) ([]models.CategorySales, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
	InventoryValuation(ctx context.Context) ([]models.CategoryValuation, error)
}

// none is the query of loaders that take no parameters.
type none struct{}

// App is one dashboard session: view state, loaders and mutation handlers
// bound to a surface. All methods must be called on the session's UI thread.
type App struct {
	api     API
	runner  Runner
	surface Surface
	state   *State
	act     activity

	products   *Loader[models.ProductQuery, *models.ProductPage]
	suppliers  *Loader[models.SupplierQuery, *models.SupplierPage]
	orders     *Loader[models.OrderQuery, *models.OrderPage]
	categories *Loader[none, []models.Category]
	stats      *Loader[none, *models.DashboardStats]
	recent     *Loader[none, []models.Transaction]
	reports    *Loader[ReportKind, ReportView]
	catalog    *Loader[models.ProductQuery, *models.ProductPage]

	builder *OrderBuilder
	started bool
}

// New binds a session to api, runner and surface. A nil state starts from NewState.
func New(api API, runner Runner, surface Surface, state *State) *App {
	if state == nil {
		state = NewState()
	}
	a := &App{
		api:     api,
		runner:  runner,
		surface: surface,
		state:   state,
		act:     activity{surface: surface},
	}

	a.products = newLoader(LoaderSpec[models.ProductQuery, *models.ProductPage]{
		Name: "products",
		Query: func(page int) models.ProductQuery {
			f := a.state.ProductFilter
			return models.ProductQuery{
				Page: page, PerPage: models.DefaultPageSize,
				Search: f.Search, CategoryID: f.CategoryID, LowStock: f.LowStock,
			}
		},
		Fetch: a.api.Products,
		Apply: a.applyProducts,
	}, runner, &a.act)

	a.suppliers = newLoader(LoaderSpec[models.SupplierQuery, *models.SupplierPage]{
		Name: "suppliers",
		Query: func(page int) models.SupplierQuery {
			return models.SupplierQuery{Page: page, PerPage: models.DefaultPageSize, Search: a.state.SupplierSearch}
		},
		Fetch:   a.api.Suppliers,
		Apply:   a.applySuppliers,
		Spinner: func() bool { return a.state.Active == SectionSuppliers },
	}, runner, &a.act)

	a.orders = newLoader(LoaderSpec[models.OrderQuery, *models.OrderPage]{
		Name: "orders",
		Query: func(page int) models.OrderQuery {
			return models.OrderQuery{Page: page, PerPage: models.DefaultPageSize, Status: a.state.OrderStatus}
		},
		Fetch: a.api.Orders,
		Apply: a.applyOrders,
	}, runner, &a.act)

	a.categories = newLoader(LoaderSpec[none, []models.Category]{
		Name:    "categories",
		Query:   func(int) none { return none{} },
		Fetch:   func(ctx context.Context, _ none) ([]models.Category, error) { return a.api.Categories(ctx) },
		Apply:   func(_ none, cats []models.Category) { a.applyCategories(cats) },
		Spinner: never,
	}, runner, &a.act)

	a.stats = newLoader(LoaderSpec[none, *models.DashboardStats]{
		Name:    "dashboard stats",
		Query:   func(int) none { return none{} },
		Fetch:   func(ctx context.Context, _ none) (*models.DashboardStats, error) { return a.api.DashboardStats(ctx) },
		Apply:   func(_ none, s *models.DashboardStats) { a.applyStats(s) },
		Spinner: never,
	}, runner, &a.act)

	a.recent = newLoader(LoaderSpec[none, []models.Transaction]{
		Name:  "recent transactions",
		Query: func(int) none { return none{} },
		Fetch: func(ctx context.Context, _ none) ([]models.Transaction, error) {
			return a.api.RecentTransactions(ctx, RecentTransactionsLimit)
		},
		Apply:   func(_ none, txns []models.Transaction) { a.applyTransactions(txns) },
		Spinner: never,
	}, runner, &a.act)

	a.reports = newLoader(LoaderSpec[ReportKind, ReportView]{
		Name:  "report",
		Query: func(int) ReportKind { return a.state.Report },
		Fetch: func(ctx context.Context, kind ReportKind) (ReportView, error) {
			return fetchReport(ctx, a.api, kind)
		},
		Apply:   func(_ ReportKind, v ReportView) { a.surface.RenderReport(v) },
		Failure: func(kind ReportKind) string { return "Error loading " + kind.Name() },
	}, runner, &a.act)

	a.catalog = newLoader(LoaderSpec[models.ProductQuery, *models.ProductPage]{
		Name:    "products for order",
		Query:   func(int) models.ProductQuery { return models.ProductQuery{PerPage: models.CatalogPageSize} },
		Fetch:   a.api.Products,
		Apply:   func(_ models.ProductQuery, page *models.ProductPage) { a.setBuilderChoices(page.Products) },
		Spinner: never,
	}, runner, &a.act)

	return a
}

func never() bool { return false }

// State exposes the session's view state.
func (a *App) State() *State {
	return a.state
}

// Started reports whether startup completed.
func (a *App) Started() bool {
	return a.started
}

// ============================================================================
// Startup
// ============================================================================

// Start fetches categories, the first supplier page, dashboard stats and
// recent transactions concurrently. Nothing is applied unless all four
// succeed. A result superseded by a newer load of the same resource is
// skipped, and the dashboard section is shown only if the user has not
// navigated elsewhere meanwhile.
func (a *App) Start() {
	a.act.begin()
	from := a.state.Active
	catSeq, supSeq := a.categories.claim(), a.suppliers.claim()
	statsSeq, recentSeq := a.stats.claim(), a.recent.claim()

	a.runner.Go(func(ctx context.Context) func() {
		var (
			cats  []models.Category
			sups  *models.SupplierPage
			stats *models.DashboardStats
			txns  []models.Transaction
		)
		supQuery := models.SupplierQuery{Page: 1, PerPage: models.DefaultPageSize}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			if cats, err = a.api.Categories(gctx); err != nil {
				return serr.Wrap(err, "failed to fetch categories")
			}
			return nil
		})
		g.Go(func() error {
			var err error
			if sups, err = a.api.Suppliers(gctx, supQuery); err != nil {
				return serr.Wrap(err, "failed to fetch suppliers")
			}
			return nil
		})
		g.Go(func() error {
			var err error
			if stats, err = a.api.DashboardStats(gctx); err != nil {
				return serr.Wrap(err, "failed to fetch dashboard stats")
			}
			return nil
		})
		g.Go(func() error {
			var err error
			if txns, err = a.api.RecentTransactions(gctx, RecentTransactionsLimit); err != nil {
				return serr.Wrap(err, "failed to fetch recent transactions")
			}
			return nil
		})
		err := g.Wait()

		return func() {
			a.act.end()
			if err != nil {
				logger.LogErr(err, "dashboard startup failed")
				a.act.notify(NotifyError, StartupFailedMessage)
				return
			}

			if a.categories.current(catSeq) {
				a.applyCategories(cats)
			}
			if a.suppliers.current(supSeq) {
				a.applySuppliers(supQuery, sups)
			}
			if a.stats.current(statsSeq) {
				a.applyStats(stats)
			}
			if a.recent.current(recentSeq) {
				a.applyTransactions(txns)
			}
			a.surface.RenderOptions(OptionsOrderStatus, StatusOptions())
			a.started = true
			logger.Debug("Dashboard started")

			if a.state.Active != from {
				return
			}
			_ = a.ShowSection(SectionDashboard)
		}
	})
}

// ============================================================================
// Section Router
// ============================================================================

// ShowSection activates s and dispatches its loaders. Reports load only on
// explicit request.
func (a *App) ShowSection(s Section) error {
	if _, err := ParseSection(string(s)); err != nil {
		return err
	}

	a.surface.ActivateSection(s)
	a.state.Active = s

	switch s {
	case SectionDashboard:
		a.stats.Refresh()
		a.recent.Refresh()
	case SectionProducts:
		a.products.Refresh()
	case SectionOrders:
		a.orders.Refresh()
	case SectionSuppliers:
		a.suppliers.Refresh()
	case SectionReports:
	}
	return nil
}

// ============================================================================
// List filters and pagination
// ============================================================================

func (a *App) SearchProducts(term string) {
	a.state.ProductFilter.Search = term
	a.state.ProductPage = 1
	a.products.Load(1)
}

func (a *App) FilterProducts(categoryID string, lowStock bool) {
	a.state.ProductFilter.CategoryID = categoryID
	a.state.ProductFilter.LowStock = lowStock
	a.state.ProductPage = 1
	a.products.Load(1)
}

// SetProductFilter replaces every product filter at once with a single load.
func (a *App) SetProductFilter(f ProductFilter) {
	a.state.ProductFilter = f
	a.state.ProductPage = 1
	a.products.Load(1)
}

func (a *App) SearchSuppliers(term string) {
	a.state.SupplierSearch = term
	a.state.SupplierPage = 1
	a.suppliers.Load(1)
}

func (a *App) FilterOrders(status string) {
	a.state.OrderStatus = status
	a.state.OrderPage = 1
	a.orders.Load(1)
}

// LoadPage loads page of a list section. It backs the pagination controls.
func (a *App) LoadPage(list Section, page int) error {
	switch list {
	case SectionProducts:
		a.products.Load(page)
	case SectionSuppliers:
		a.suppliers.Load(page)
	case SectionOrders:
		a.orders.Load(page)
	default:
		return serr.New("section " + string(list) + " has no list")
	}
	return nil
}

// LoadReport fetches and renders one report.
func (a *App) LoadReport(kind ReportKind) {
	a.state.Report = kind
	a.reports.Load(1)
}

// ============================================================================
// Loader continuations
// ============================================================================

// pageOf prefers the server's page number and falls back to the request's.
func pageOf(p models.Pagination, requested int) int {
	if p.CurrentPage > 0 {
		return p.CurrentPage
	}
	return requested
}

func (a *App) applyProducts(q models.ProductQuery, page *models.ProductPage) {
	a.state.Products = page.Products
	a.state.ProductPage = pageOf(page.Pagination, q.Page)

	a.surface.RenderTable(SectionProducts, ProductsTable(page.Products))
	a.surface.RenderPagination(SectionProducts, BuildPagination(a.state.ProductPage, page.Pages))
	a.setBuilderChoices(page.Products)
}

// applySuppliers always refreshes the product form's supplier dropdown;
// the table is only drawn while the suppliers section is visible.
func (a *App) applySuppliers(q models.SupplierQuery, page *models.SupplierPage) {
	a.state.Suppliers = page.Suppliers
	a.state.SupplierPage = pageOf(page.Pagination, q.Page)

	a.surface.RenderOptions(OptionsProductSupplier, SupplierOptions(page.Suppliers))
	if a.state.Active == SectionSuppliers {
		a.surface.RenderTable(SectionSuppliers, SuppliersTable(page.Suppliers))
		a.surface.RenderPagination(SectionSuppliers, BuildPagination(a.state.SupplierPage, page.Pages))
	}
}

func (a *App) applyOrders(q models.OrderQuery, page *models.OrderPage) {
	a.state.Orders = page.Orders
	a.state.OrderPage = pageOf(page.Pagination, q.Page)

	a.surface.RenderTable(SectionOrders, OrdersTable(page.Orders))
	a.surface.RenderPagination(SectionOrders, BuildPagination(a.state.OrderPage, page.Pages))
}

func (a *App) applyCategories(cats []models.Category) {
	a.state.Categories = cats
	a.surface.RenderOptions(OptionsCategoryFilter, CategoryFilterOptions(cats))
	a.surface.RenderOptions(OptionsProductCategory, ProductCategoryOptions(cats))
}

func (a *App) applyStats(stats *models.DashboardStats) {
	a.state.Stats = stats
	a.surface.RenderStats(StatsCards(*stats))
}

func (a *App) applyTransactions(txns []models.Transaction) {
	a.state.Transactions = txns
	a.surface.RenderActivity(ActivityFeed(txns))
}

// RefreshCategories reloads the category reference data.
func (a *App) RefreshCategories() {
	a.categories.Refresh()
}
