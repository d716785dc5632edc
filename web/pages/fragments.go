package pages

import (
	"html"
	"strconv"

	"github.com/rohanthewiz/element"

	"invdash/dashboard"
)

// ============================================================================
// Out-of-band fragments
//
// Every action response is a list of fragments that htmx swaps into the page
// by id (hx-swap-oob). The main response target is never used.
// ============================================================================

// Swap modes used for out-of-band fragments
const (
	SwapInner  = "innerHTML"
	toastsSwap = "beforeend:#" + ToastContainerID
)

// Container ids shared by the page shell and the fragments
const (
	ToastContainerID   = "toast-container"
	LoadingID          = "loading"
	StatsCardsID       = "stats-cards"
	StatsSecondaryID   = "stats-secondary"
	ActivityID         = "recent-activity"
	ReportContentID    = "report-content"
	OrderItemsID       = "order-items"
	OrderTotalID       = "order-total"
	orderItemsEndpoint = "/app/order-builder/items"
)

// TableBodyID is the tbody of a list section's table.
func TableBodyID(list dashboard.Section) string {
	return string(list) + "-table-body"
}

// PaginationID is the pagination container of a list section.
func PaginationID(list dashboard.Section) string {
	return string(list) + "-pagination"
}

// FiltersID is the filter form of a list section.
func FiltersID(list dashboard.Section) string {
	return string(list) + "-filters"
}

func esc(s string) string {
	return html.EscapeString(s)
}

// OOB wraps inner in a div that htmx swaps into the element with id.
func OOB(id, inner string) string {
	b := element.NewBuilder()
	b.Div("id", id, "hx-swap-oob", SwapInner).T(inner)
	return b.String()
}

// OOBTableBody is OOB for a tbody target. The wrapper must be a tbody too or
// the browser's parser drops the rows.
func OOBTableBody(id, inner string) string {
	b := element.NewBuilder()
	b.TBody("id", id, "hx-swap-oob", SwapInner).T(inner)
	return b.String()
}

// OOBSelect is OOB for a select target; only the options are replaced so
// the control keeps its htmx attributes.
func OOBSelect(id, inner string) string {
	b := element.NewBuilder()
	b.Select("id", id, "hx-swap-oob", SwapInner).T(inner)
	return b.String()
}

// ============================================================================
// Fragment bodies
// ============================================================================

// Toast renders a notification appended to the toast container.
func Toast(n dashboard.Notification) string {
	b := element.NewBuilder()
	b.Div("hx-swap-oob", toastsSwap).R(
		b.DivClass("toast toast-"+string(n.Kind)+" auto-dismiss").R(
			b.SpanClass("toast-message").T(esc(n.Message)),
			b.ButtonClass("toast-close", "type", "button", "onclick", "this.parentElement.remove()").T("×"),
		),
	)
	return b.String()
}

// Loading renders the global loading indicator.
func Loading(on bool) string {
	class := "loading hidden"
	if on {
		class = "loading"
	}
	b := element.NewBuilder()
	b.Div("id", LoadingID, "class", class, "hx-swap-oob", "outerHTML").R(
		b.DivClass("spinner").R(),
	)
	return b.String()
}

func StatCards(cards []dashboard.StatCard) string {
	b := element.NewBuilder()
	for _, c := range cards {
		b.Div("class", "stat-card", "id", c.ID).R(
			b.DivClass("stat-value").T(esc(c.Value)),
			b.DivClass("stat-label").T(esc(c.Label)),
		)
	}
	return b.String()
}

func Activity(v dashboard.ActivityView) string {
	b := element.NewBuilder()
	if len(v.Items) == 0 {
		b.PClass("empty").T(esc(v.Empty))
		return b.String()
	}
	for _, item := range v.Items {
		b.DivClass("activity-item").R(
			b.Span("class", "activity-icon icon-"+item.Icon, "title", esc(item.Type)).T(item.Glyph),
			b.DivClass("activity-body").R(
				b.SpanClass("activity-product").T(esc(item.ProductName)),
				b.Small().T(esc(item.Detail)),
			),
		)
	}
	return b.String()
}

// deleteNouns maps a list to the noun used in its delete confirmation.
var deleteNouns = map[dashboard.Section]string{
	dashboard.SectionProducts:  "product",
	dashboard.SectionSuppliers: "supplier",
	dashboard.SectionOrders:    "order",
}

// TableRows renders a list's rows with a delete action per row.
func TableRows(list dashboard.Section, v dashboard.TableView) string {
	b := element.NewBuilder()
	if len(v.Rows) == 0 {
		b.Tr().R(
			b.Td("colspan", strconv.Itoa(len(v.Columns)+1), "class", "empty").T(esc(v.Empty)),
		)
		return b.String()
	}

	noun, deletable := deleteNouns[list]
	for _, row := range v.Rows {
		b.Tr("data-id", strconv.Itoa(row.ID)).R(
			b.Wrap(func() {
				for _, cell := range row.Cells {
					renderCell(b, cell)
				}
			}),
			b.Td("class", "actions").R(
				b.Wrap(func() {
					if !deletable {
						return
					}
					b.Button("class", "btn btn-danger btn-sm", "type", "button",
						"hx-delete", "/app/"+string(list)+"/"+strconv.Itoa(row.ID)+"?confirmed=true",
						"hx-confirm", "Are you sure you want to delete this "+noun+"?",
						"hx-swap", "none",
					).T("Delete")
				}),
			),
		)
	}
	return b.String()
}

func renderCell(b *element.Builder, cell dashboard.Cell) {
	if cell.Badge == "" {
		b.Td().T(esc(cell.Text))
		return
	}
	b.Td().R(
		b.SpanClass("badge badge-" + esc(cell.Badge)).T(esc(cell.Text)),
	)
}

// Pager renders pagination controls that reload list with its current filters.
func Pager(list dashboard.Section, v dashboard.PaginationView) string {
	b := element.NewBuilder()
	for _, btn := range v.Buttons() {
		class := "page-btn"
		if btn.Active {
			class += " active"
		}
		attrs := []string{
			"class", class, "type", "button",
			"hx-get", "/app/" + string(list) + "?page=" + strconv.Itoa(btn.Page),
			"hx-include", "#" + FiltersID(list),
			"hx-swap", "none",
		}
		if btn.Disabled {
			attrs = append(attrs, "disabled", "disabled")
		}
		b.Button(attrs...).T(esc(btn.Label))
	}
	return b.String()
}

// Options renders select options, marking selected. An empty selected marks
// nothing, leaving the browser on the first option.
func Options(opts []dashboard.Option, selected string) string {
	b := element.NewBuilder()
	for _, o := range opts {
		attrs := []string{"value", esc(o.Value)}
		if selected != "" && o.Value == selected {
			attrs = append(attrs, "selected", "selected")
		}
		b.Option(attrs...).T(esc(o.Label))
	}
	return b.String()
}

func Report(v dashboard.ReportView) string {
	b := element.NewBuilder()
	b.DivClass("report").R(
		b.H3().T(esc(v.Title)),
		b.PClass("report-subtitle").T(esc(v.Subtitle)),
		b.Table("class", "data-table").R(
			b.THead().R(
				b.Tr().R(
					b.Wrap(func() {
						for _, col := range v.Table.Columns {
							b.Th().T(esc(col))
						}
					}),
				),
			),
			b.TBody().R(
				b.Wrap(func() {
					if len(v.Table.Rows) == 0 {
						b.Tr().R(
							b.Td("colspan", strconv.Itoa(len(v.Table.Columns)), "class", "empty").T(esc(v.Table.Empty)),
						)
						return
					}
					for _, row := range v.Table.Rows {
						b.Tr().R(
							b.Wrap(func() {
								for _, cell := range row.Cells {
									renderCell(b, cell)
								}
							}),
						)
					}
				}),
			),
		),
	)
	return b.String()
}

// Line item fields are suffixed with their row index since every row lives in
// the same enclosing order form.
func ItemProductField(row int) string {
	return "product_id_" + strconv.Itoa(row)
}

func ItemQuantityField(row int) string {
	return "quantity_" + strconv.Itoa(row)
}

// OrderItems renders the order form's line items. Each row posts its product
// and quantity back whenever either changes.
func OrderItems(v dashboard.OrderBuilderView) string {
	b := element.NewBuilder()
	for _, row := range v.Rows {
		idx := strconv.Itoa(row.Index)
		rowID := "order-item-" + idx
		b.Div("class", "order-item", "id", rowID).R(
			b.Select("name", ItemProductField(row.Index), "class", "form-control",
				"hx-post", orderItemsEndpoint+"/"+idx,
				"hx-trigger", "change",
				"hx-include", "#"+rowID,
				"hx-swap", "none",
			).R(
				b.T(Options(v.Choices, row.ProductID)),
			),
			b.Input("type", "number", "name", ItemQuantityField(row.Index), "min", "1", "class", "form-control",
				"placeholder", "Qty", "value", row.Quantity,
				"hx-post", orderItemsEndpoint+"/"+idx,
				"hx-trigger", "change",
				"hx-include", "#"+rowID,
				"hx-swap", "none",
			),
			b.SpanClass("unit-price").T(priceOrBlank(row.UnitPrice)),
			b.SpanClass("line-total").T("$"+row.LineTotal),
			b.Button("class", "btn btn-danger btn-sm", "type", "button",
				"hx-delete", orderItemsEndpoint+"/"+idx,
				"hx-swap", "none",
			).T("×"),
		)
	}
	return b.String()
}

func priceOrBlank(p string) string {
	if p == "" {
		return "-"
	}
	return "$" + p
}
