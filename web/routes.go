package web

import (
	"github.com/rohanthewiz/rweb"

	"invdash/dashboard"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server, h *dashboardHandlers) {
	// Page routes - HTML responses
	s.Get("/", h.index)
	s.Get("/health", h.health)

	// HTMX action endpoints - every response is a set of out-of-band fragments
	app := s.Group("/app")
	{
		app.Post("/start", h.start)
		app.Post("/section/:name", h.showSection)

		// Lists
		app.Get("/products", h.listProducts)
		app.Get("/suppliers", h.listSuppliers)
		app.Get("/orders", h.listOrders)

		// Mutations
		app.Post("/products", h.createProduct)
		app.Post("/suppliers", h.createSupplier)
		app.Post("/orders", h.createOrder)
		app.Delete("/products/:id", h.deleteHandler((*dashboard.App).DeleteProduct))
		app.Delete("/suppliers/:id", h.deleteHandler((*dashboard.App).DeleteSupplier))
		app.Delete("/orders/:id", h.deleteHandler((*dashboard.App).DeleteOrder))

		// Order builder
		app.Post("/order-builder", h.openOrderBuilder)
		app.Post("/order-builder/items", h.addOrderItem)
		app.Post("/order-builder/items/:row", h.updateOrderItem)
		app.Delete("/order-builder/items/:row", h.removeOrderItem)

		// Reports
		app.Get("/reports/:kind", h.report)
	}
}
