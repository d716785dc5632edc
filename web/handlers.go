package web

import (
	"strconv"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"

	"invdash/dashboard"
	"invdash/models"
	"invdash/web/pages"
)

// dashboardHandlers maps htmx requests onto the session's dashboard.App.
// Every action answers 200 with out-of-band fragments; failures become
// error toasts so htmx still swaps them in.
type dashboardHandlers struct {
	sessions *SessionStore
	page     pages.Page
	cfg      *models.Config
}

func invalid(msg string) error {
	return &models.ValidationError{Message: msg}
}

// param reads a form field, falling back to the query string.
func param(c rweb.Context, name string) string {
	if v := c.Request().FormValue(name); v != "" {
		return v
	}
	return c.Request().QueryParam(name)
}

func pathInt(c rweb.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Request().Param(name))
	if err != nil {
		return 0, invalid("Invalid " + name)
	}
	return n, nil
}

// respond runs action for the caller's session and writes the fragments.
func (h *dashboardHandlers) respond(c rweb.Context, confirmed bool, action func(app *dashboard.App) error) error {
	sess := h.session(c)
	body, trigger := sess.do(confirmed, func(app *dashboard.App) {
		if err := action(app); err != nil {
			logger.LogErr(err, "dashboard action rejected", "path", c.Request().Path())
			sess.surface.Notify(dashboard.Notification{Kind: dashboard.NotifyError, Message: models.ErrorMessage(err)})
		}
	})
	return writeFragments(c, body, trigger)
}

func (h *dashboardHandlers) session(c rweb.Context) *session {
	id, _ := c.Get(sessionKey).(string)
	return h.sessions.get(id)
}

func writeFragments(c rweb.Context, body, trigger string) error {
	if trigger != "" {
		c.Response().SetHeader("HX-Trigger", trigger)
	}
	return c.WriteHTML(body)
}

// ============================================================================
// Page and health
// ============================================================================

func (h *dashboardHandlers) index(c rweb.Context) error {
	c.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return c.WriteHTML(h.page.Render())
}

func (h *dashboardHandlers) health(c rweb.Context) error {
	return c.WriteJSON(map[string]any{
		"status":   "healthy",
		"service":  "invdash-web",
		"api":      h.cfg.APIBaseURL,
		"sessions": h.sessions.Len(),
	})
}

// ============================================================================
// Navigation and lists
// ============================================================================

// start is the first request of every page load, so the session's
// dashboard is replaced rather than resumed.
func (h *dashboardHandlers) start(c rweb.Context) error {
	body, trigger := h.session(c).restart()
	return writeFragments(c, body, trigger)
}

func (h *dashboardHandlers) showSection(c rweb.Context) error {
	section, err := dashboard.ParseSection(c.Request().Param("name"))
	return h.respond(c, false, func(app *dashboard.App) error {
		if err != nil {
			return invalid("Unknown section")
		}
		return app.ShowSection(section)
	})
}

// requestedPage returns the page query parameter, or the list's current page
// when none was sent.
func requestedPage(c rweb.Context, app *dashboard.App, list dashboard.Section) int {
	if page, err := strconv.Atoi(param(c, "page")); err == nil {
		return page
	}
	return app.State().Page(list)
}

// listProducts reloads the product list. Changed filters start over at
// page 1; otherwise the requested page is loaded.
func (h *dashboardHandlers) listProducts(c rweb.Context) error {
	filter := dashboard.ProductFilter{
		Search:     strings.TrimSpace(param(c, "search")),
		CategoryID: param(c, "category_id"),
		LowStock:   param(c, "low_stock") == "true",
	}
	return h.respond(c, false, func(app *dashboard.App) error {
		if filter != app.State().ProductFilter {
			app.SetProductFilter(filter)
			return nil
		}
		return app.LoadPage(dashboard.SectionProducts, requestedPage(c, app, dashboard.SectionProducts))
	})
}

func (h *dashboardHandlers) listSuppliers(c rweb.Context) error {
	search := strings.TrimSpace(param(c, "search"))
	return h.respond(c, false, func(app *dashboard.App) error {
		if search != app.State().SupplierSearch {
			app.SearchSuppliers(search)
			return nil
		}
		return app.LoadPage(dashboard.SectionSuppliers, requestedPage(c, app, dashboard.SectionSuppliers))
	})
}

func (h *dashboardHandlers) listOrders(c rweb.Context) error {
	status := param(c, "status")
	return h.respond(c, false, func(app *dashboard.App) error {
		if status != app.State().OrderStatus {
			app.FilterOrders(status)
			return nil
		}
		return app.LoadPage(dashboard.SectionOrders, requestedPage(c, app, dashboard.SectionOrders))
	})
}

func (h *dashboardHandlers) report(c rweb.Context) error {
	kind, err := dashboard.ParseReportKind(c.Request().Param("kind"))
	return h.respond(c, false, func(app *dashboard.App) error {
		if err != nil {
			return invalid("Unknown report")
		}
		app.LoadReport(kind)
		return nil
	})
}

// ============================================================================
// Mutations
// ============================================================================

func (h *dashboardHandlers) createProduct(c rweb.Context) error {
	form := dashboard.ProductForm{
		Name:         param(c, "product_name"),
		SKU:          param(c, "sku"),
		Description:  param(c, "description"),
		CategoryID:   param(c, "category_id"),
		SupplierID:   param(c, "supplier_id"),
		UnitPrice:    param(c, "unit_price"),
		StockLevel:   param(c, "stock_level"),
		ReorderLevel: param(c, "reorder_level"),
	}
	return h.respond(c, false, func(app *dashboard.App) error {
		app.CreateProduct(form)
		return nil
	})
}

func (h *dashboardHandlers) createSupplier(c rweb.Context) error {
	form := dashboard.SupplierForm{
		Name:          param(c, "supplier_name"),
		ContactPerson: param(c, "contact_person"),
		Email:         param(c, "email"),
		Phone:         param(c, "phone"),
		Address:       param(c, "address"),
		City:          param(c, "city"),
		Country:       param(c, "country"),
	}
	return h.respond(c, false, func(app *dashboard.App) error {
		app.CreateSupplier(form)
		return nil
	})
}

func (h *dashboardHandlers) createOrder(c rweb.Context) error {
	form := dashboard.OrderForm{
		CustomerName:  param(c, "customer_name"),
		CustomerEmail: param(c, "customer_email"),
		DeliveryDate:  param(c, "delivery_date"),
	}
	return h.respond(c, false, func(app *dashboard.App) error {
		app.CreateOrder(form)
		return nil
	})
}

// deleteHandler builds a delete endpoint. The browser's hx-confirm dialog
// sends confirmed=true; anything else declines.
func (h *dashboardHandlers) deleteHandler(del func(app *dashboard.App, id int)) rweb.Handler {
	return func(c rweb.Context) error {
		id, err := pathInt(c, "id")
		confirmed := param(c, "confirmed") == "true"
		return h.respond(c, confirmed, func(app *dashboard.App) error {
			if err != nil {
				return err
			}
			del(app, id)
			return nil
		})
	}
}

// ============================================================================
// Order builder
// ============================================================================

func (h *dashboardHandlers) openOrderBuilder(c rweb.Context) error {
	return h.respond(c, false, func(app *dashboard.App) error {
		app.OpenOrderBuilder()
		return nil
	})
}

func (h *dashboardHandlers) addOrderItem(c rweb.Context) error {
	return h.respond(c, false, func(app *dashboard.App) error {
		if err := app.AddOrderItem(); err != nil {
			return invalid("No order is being built")
		}
		return nil
	})
}

func (h *dashboardHandlers) updateOrderItem(c rweb.Context) error {
	row, err := pathInt(c, "row")
	var productID, quantity string
	if err == nil {
		productID = param(c, pages.ItemProductField(row))
		quantity = param(c, pages.ItemQuantityField(row))
	}
	return h.respond(c, false, func(app *dashboard.App) error {
		if err != nil {
			return err
		}
		if err := app.SelectOrderProduct(row, productID); err != nil {
			return invalid("Order line not found")
		}
		if err := app.SetOrderQuantity(row, quantity); err != nil {
			return invalid("Order line not found")
		}
		return nil
	})
}

func (h *dashboardHandlers) removeOrderItem(c rweb.Context) error {
	row, err := pathInt(c, "row")
	return h.respond(c, false, func(app *dashboard.App) error {
		if err != nil {
			return err
		}
		if err := app.RemoveOrderItem(row); err != nil {
			return invalid("Order line not found")
		}
		return nil
	})
}
