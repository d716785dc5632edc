package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"invdash/dashboard"
)

// formField is a text input, or a choice over a surface option list when
// target is set.
type formField struct {
	name   string
	label  string
	input  textinput.Model
	target dashboard.OptionTarget
	value  string
}

func textField(name, label, placeholder, value string) *formField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 36
	in.SetValue(value)
	return &formField{name: name, label: label, input: in}
}

func choiceField(name, label string, target dashboard.OptionTarget) *formField {
	return &formField{name: name, label: label, target: target}
}

func (f *formField) isChoice() bool { return f.target != "" }

// form is one of the three create dialogs. The order form additionally
// owns two focus slots per order line: product then quantity.
type form struct {
	modal  dashboard.Modal
	title  string
	submit string
	fields []*formField
	focus  int
}

func newProductForm() *form {
	return &form{
		modal:  dashboard.ModalProduct,
		title:  "Add Product",
		submit: "Add Product",
		fields: []*formField{
			textField("product_name", "Product Name", "Required", ""),
			textField("sku", "SKU", "", ""),
			textField("description", "Description", "", ""),
			choiceField("category_id", "Category", dashboard.OptionsProductCategory),
			choiceField("supplier_id", "Supplier", dashboard.OptionsProductSupplier),
			textField("unit_price", "Unit Price", "0.00", ""),
			textField("stock_level", "Stock Level", "", "0"),
			textField("reorder_level", "Reorder Level", "", "10"),
		},
	}
}

func newSupplierForm() *form {
	return &form{
		modal:  dashboard.ModalSupplier,
		title:  "Add Supplier",
		submit: "Add Supplier",
		fields: []*formField{
			textField("supplier_name", "Supplier Name", "Required", ""),
			textField("contact_person", "Contact Person", "", ""),
			textField("email", "Email", "", ""),
			textField("phone", "Phone", "", ""),
			textField("address", "Address", "", ""),
			textField("city", "City", "", ""),
			textField("country", "Country", "", ""),
		},
	}
}

func newOrderForm() *form {
	return &form{
		modal:  dashboard.ModalOrder,
		title:  "Create Order",
		submit: "Create Order",
		fields: []*formField{
			textField("customer_name", "Customer Name", "Required", ""),
			textField("customer_email", "Customer Email", "", ""),
			textField("delivery_date", "Delivery Date", "YYYY-MM-DD", ""),
		},
	}
}

func (f *form) isOrder() bool { return f.modal == dashboard.ModalOrder }

func (f *form) value(name string) string {
	for _, fld := range f.fields {
		if fld.name != name {
			continue
		}
		if fld.isChoice() {
			return fld.value
		}
		return fld.input.Value()
	}
	return ""
}

func (f *form) productForm() dashboard.ProductForm {
	return dashboard.ProductForm{
		Name:         f.value("product_name"),
		SKU:          f.value("sku"),
		Description:  f.value("description"),
		CategoryID:   f.value("category_id"),
		SupplierID:   f.value("supplier_id"),
		UnitPrice:    f.value("unit_price"),
		StockLevel:   f.value("stock_level"),
		ReorderLevel: f.value("reorder_level"),
	}
}

func (f *form) supplierForm() dashboard.SupplierForm {
	return dashboard.SupplierForm{
		Name:          f.value("supplier_name"),
		ContactPerson: f.value("contact_person"),
		Email:         f.value("email"),
		Phone:         f.value("phone"),
		Address:       f.value("address"),
		City:          f.value("city"),
		Country:       f.value("country"),
	}
}

func (f *form) orderForm() dashboard.OrderForm {
	return dashboard.OrderForm{
		CustomerName:  f.value("customer_name"),
		CustomerEmail: f.value("customer_email"),
		DeliveryDate:  f.value("delivery_date"),
	}
}

// slots counts focus positions given the number of order lines.
func (f *form) slots(lines int) int {
	if f.isOrder() {
		return len(f.fields) + 2*lines
	}
	return len(f.fields)
}

// move shifts focus by delta, wrapping around.
func (f *form) move(delta, slots int) {
	if slots == 0 {
		return
	}
	f.focus = ((f.focus+delta)%slots + slots) % slots
	f.syncFocus()
}

// clampFocus keeps focus valid after order lines were removed.
func (f *form) clampFocus(slots int) {
	if f.focus >= slots {
		f.focus = max(0, slots-1)
	}
	f.syncFocus()
}

func (f *form) syncFocus() {
	for i, fld := range f.fields {
		if fld.isChoice() {
			continue
		}
		if i == f.focus {
			fld.input.Focus()
		} else {
			fld.input.Blur()
		}
	}
}

// focused returns the focused field, or nil on an order line slot.
func (f *form) focused() *formField {
	if f.focus < len(f.fields) {
		return f.fields[f.focus]
	}
	return nil
}

// line returns the order line and part (0 product, 1 quantity) under focus.
func (f *form) line() (row, part int) {
	slot := f.focus - len(f.fields)
	return slot / 2, slot % 2
}

// cycle returns the option value delta steps from current, wrapping.
func cycle(opts []dashboard.Option, current string, delta int) string {
	if len(opts) == 0 {
		return current
	}
	idx := 0
	for i, o := range opts {
		if o.Value == current {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(opts) + len(opts)) % len(opts)
	return opts[idx].Value
}

func labelOf(opts []dashboard.Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return "-"
}

// view draws the form. Choice labels and order lines come from the surface.
func (f *form) view(s *Surface) string {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render(f.title))
	sb.WriteString("\n")

	for i, fld := range f.fields {
		label := fld.label
		if i == f.focus {
			label = focusedLabelStyle.Render("› " + label)
		} else {
			label = "  " + label
		}

		var control string
		if fld.isChoice() {
			control = "‹ " + labelOf(s.options[fld.target], fld.value) + " ›"
		} else {
			control = fld.input.View()
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(20).Render(label), control))
		sb.WriteString("\n")
	}

	if f.isOrder() {
		sb.WriteString("\n" + headingStyle.Render("Order Items"))
		sb.WriteString("\n")
		for _, row := range s.builder.Rows {
			product := labelOf(s.builder.Choices, row.ProductID)
			qty := row.Quantity
			if qty == "" {
				qty = "0"
			}

			productCell := "  ‹ " + product + " ›"
			qtyCell := "qty " + qty
			if slot := f.focus - len(f.fields); slot >= 0 && slot/2 == row.Index {
				if slot%2 == 0 {
					productCell = focusedLabelStyle.Render("› ‹ " + product + " ›")
				} else {
					qtyCell = focusedLabelStyle.Render("qty " + qty + "▏")
				}
			}

			price := "-"
			if row.UnitPrice != "" {
				price = "$" + row.UnitPrice
			}
			sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
				lipgloss.NewStyle().Width(40).Render(productCell),
				lipgloss.NewStyle().Width(12).Render(qtyCell),
				lipgloss.NewStyle().Width(12).Render(price),
				"$"+row.LineTotal,
			))
			sb.WriteString("\n")
		}
		sb.WriteString("\nTotal: $" + s.builder.GrandTotal + "\n")
	}

	help := "tab/↓ next • shift+tab/↑ prev • ←/→ choose • ctrl+s " + strings.ToLower(f.submit) + " • esc cancel"
	if f.isOrder() {
		help += " • ctrl+n add item • ctrl+x remove item"
	}
	sb.WriteString("\n" + mutedStyle.Render(help))

	return formStyle.Render(sb.String())
}
