package pages

import (
	"github.com/rohanthewiz/element"

	"invdash/dashboard"
)

// sectionAttrs returns the wrapper attributes of a section. Only the
// dashboard is visible before the first showSection event.
func sectionAttrs(s dashboard.Section) []string {
	class := "section"
	if s == dashboard.SectionDashboard {
		class += " active"
	}
	return []string{"id", string(s), "class", class}
}

func sectionHeader(b *element.Builder, s dashboard.Section, addLabel, modal string) any {
	return b.DivClass("section-header").R(
		b.H2().T(s.Title()),
		b.Wrap(func() {
			if addLabel == "" {
				return
			}
			b.Button("class", "btn btn-primary", "type", "button",
				"onclick", "invdash.openModal('"+modal+"')").T(addLabel)
		}),
	)
}

// listTable renders an empty table whose body and pagination are filled by
// fragments.
func listTable(b *element.Builder, list dashboard.Section, columns []string) any {
	return b.DivClass("table-container").R(
		b.Table("class", "data-table").R(
			b.THead().R(
				b.Tr().R(
					b.Wrap(func() {
						for _, col := range columns {
							b.Th().T(col)
						}
						b.Th().T("Actions")
					}),
				),
			),
			b.TBody("id", TableBodyID(list)).R(),
		),
		b.Div("class", "pagination", "id", PaginationID(list)).R(),
	)
}

type DashboardSection struct{}

func (d DashboardSection) Render(b *element.Builder) any {
	b.Div(sectionAttrs(dashboard.SectionDashboard)...).R(
		sectionHeader(b, dashboard.SectionDashboard, "", ""),
		b.Div("class", "stats-grid", "id", StatsCardsID).R(),
		b.Div("class", "stats-secondary", "id", StatsSecondaryID).R(),
		b.DivClass("card").R(
			b.H3().T("Recent Activity"),
			b.Div("class", "activity-list", "id", ActivityID).R(),
		),
	)
	return nil
}

// ProductsSection has search, category and low-stock filters.
type ProductsSection struct {
	SearchTrigger string
}

func (p ProductsSection) Render(b *element.Builder) any {
	list := dashboard.SectionProducts
	b.Div(sectionAttrs(list)...).R(
		sectionHeader(b, list, "Add Product", string(dashboard.ModalProduct)),
		b.Form("id", FiltersID(list), "class", "filters").R(
			b.Input("type", "search", "name", "search", "class", "form-control",
				"placeholder", "Search products...",
				"hx-get", "/app/products", "hx-trigger", p.SearchTrigger,
				"hx-include", "#"+FiltersID(list), "hx-swap", "none"),
			b.Select("name", "category_id", "id", string(dashboard.OptionsCategoryFilter), "class", "form-control",
				"hx-get", "/app/products", "hx-trigger", "change",
				"hx-include", "#"+FiltersID(list), "hx-swap", "none").R(
				b.Option("value", "").T("All Categories"),
			),
			b.LabelClass("checkbox").R(
				b.Input("type", "checkbox", "name", "low_stock", "value", "true",
					"hx-get", "/app/products", "hx-trigger", "change",
					"hx-include", "#"+FiltersID(list), "hx-swap", "none"),
				b.Span().T("Low stock only"),
			),
		),
		listTable(b, list, dashboard.ProductsTable(nil).Columns),
	)
	return nil
}

type OrdersSection struct{}

func (o OrdersSection) Render(b *element.Builder) any {
	list := dashboard.SectionOrders
	b.Div(sectionAttrs(list)...).R(
		b.DivClass("section-header").R(
			b.H2().T(list.Title()),
			b.Button("class", "btn btn-primary", "type", "button",
				"hx-post", "/app/order-builder", "hx-swap", "none",
				"onclick", "invdash.openModal('"+string(dashboard.ModalOrder)+"')").T("Create Order"),
		),
		b.Form("id", FiltersID(list), "class", "filters").R(
			b.Select("name", "status", "id", string(dashboard.OptionsOrderStatus), "class", "form-control",
				"hx-get", "/app/orders", "hx-trigger", "change", "hx-swap", "none").R(
				b.Option("value", "").T("All Statuses"),
			),
		),
		listTable(b, list, dashboard.OrdersTable(nil).Columns),
	)
	return nil
}

type SuppliersSection struct {
	SearchTrigger string
}

func (s SuppliersSection) Render(b *element.Builder) any {
	list := dashboard.SectionSuppliers
	b.Div(sectionAttrs(list)...).R(
		sectionHeader(b, list, "Add Supplier", string(dashboard.ModalSupplier)),
		b.Form("id", FiltersID(list), "class", "filters").R(
			b.Input("type", "search", "name", "search", "class", "form-control",
				"placeholder", "Search suppliers...",
				"hx-get", "/app/suppliers", "hx-trigger", s.SearchTrigger,
				"hx-include", "#"+FiltersID(list), "hx-swap", "none"),
		),
		listTable(b, list, dashboard.SuppliersTable(nil).Columns),
	)
	return nil
}

// ReportsSection offers one button per report; the chosen report replaces
// the content area.
type ReportsSection struct{}

var reportButtons = map[dashboard.ReportKind]string{
	dashboard.ReportLowInventory:    "Low Inventory",
	dashboard.ReportSalesByCategory: "Sales by Category",
	dashboard.ReportTopProducts:     "Top Products",
	dashboard.ReportValuation:       "Inventory Valuation",
}

func (r ReportsSection) Render(b *element.Builder) any {
	b.Div(sectionAttrs(dashboard.SectionReports)...).R(
		sectionHeader(b, dashboard.SectionReports, "", ""),
		b.DivClass("report-buttons").R(
			b.Wrap(func() {
				for _, kind := range dashboard.ReportKinds {
					b.Button("class", "btn btn-secondary", "type", "button",
						"hx-get", "/app/reports/"+string(kind), "hx-swap", "none").T(reportButtons[kind])
				}
			}),
		),
		b.Div("class", "card", "id", ReportContentID).R(
			b.PClass("empty").T("Select a report to view"),
		),
	)
	return nil
}
