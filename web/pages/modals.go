package pages

import (
	"github.com/rohanthewiz/element"

	"invdash/dashboard"
)

// modal renders the overlay shared by the three create forms. The form is
// closed client-side on a closeModal event naming its id.
func modal(b *element.Builder, id dashboard.Modal, title string, form func()) any {
	return b.Div("class", "modal", "id", string(id)).R(
		b.DivClass("modal-content").R(
			b.DivClass("modal-header").R(
				b.H2().T(title),
				b.ButtonClass("modal-close", "type", "button",
					"onclick", "invdash.closeModal('"+string(id)+"')").T("×"),
			),
			b.Wrap(form),
		),
	)
}

func field(b *element.Builder, label string, input func()) any {
	return b.DivClass("form-group").R(
		b.Label().T(label),
		b.Wrap(input),
	)
}

func textInput(b *element.Builder, label, name, inputType string, extra ...string) any {
	return field(b, label, func() {
		attrs := append([]string{"type", inputType, "name", name, "class", "form-control"}, extra...)
		b.Input(attrs...)
	})
}

func formActions(b *element.Builder, id dashboard.Modal, submit string) any {
	return b.DivClass("form-actions").R(
		b.Button("class", "btn btn-secondary", "type", "button",
			"onclick", "invdash.closeModal('"+string(id)+"')").T("Cancel"),
		b.Button("class", "btn btn-primary", "type", "submit").T(submit),
	)
}

type ProductModal struct{}

func (m ProductModal) Render(b *element.Builder) any {
	id := dashboard.ModalProduct
	modal(b, id, "Add Product", func() {
		b.Form("id", "product-form", "hx-post", "/app/products", "hx-swap", "none").R(
			textInput(b, "Name *", "product_name", "text", "required", "required"),
			textInput(b, "SKU", "sku", "text"),
			field(b, "Description", func() {
				b.TextArea("name", "description", "class", "form-control", "rows", "2").R()
			}),
			field(b, "Category", func() {
				b.Select("name", "category_id", "id", string(dashboard.OptionsProductCategory), "class", "form-control").R(
					b.Option("value", "").T("Select Category"),
				)
			}),
			field(b, "Supplier", func() {
				b.Select("name", "supplier_id", "id", string(dashboard.OptionsProductSupplier), "class", "form-control").R(
					b.Option("value", "").T("Select Supplier"),
				)
			}),
			textInput(b, "Unit Price *", "unit_price", "number", "step", "0.01", "min", "0", "required", "required"),
			textInput(b, "Stock Level", "stock_level", "number", "min", "0", "value", "0"),
			textInput(b, "Reorder Level", "reorder_level", "number", "min", "0", "value", "10"),
			formActions(b, id, "Add Product"),
		)
	})
	return nil
}

type SupplierModal struct{}

func (m SupplierModal) Render(b *element.Builder) any {
	id := dashboard.ModalSupplier
	modal(b, id, "Add Supplier", func() {
		b.Form("id", "supplier-form", "hx-post", "/app/suppliers", "hx-swap", "none").R(
			textInput(b, "Name *", "supplier_name", "text", "required", "required"),
			textInput(b, "Contact Person", "contact_person", "text"),
			textInput(b, "Email", "email", "email"),
			textInput(b, "Phone", "phone", "text"),
			textInput(b, "Address", "address", "text"),
			textInput(b, "City", "city", "text"),
			textInput(b, "Country", "country", "text"),
			formActions(b, id, "Add Supplier"),
		)
	})
	return nil
}

// OrderModal holds the customer fields and the order builder's line items.
type OrderModal struct{}

func (m OrderModal) Render(b *element.Builder) any {
	id := dashboard.ModalOrder
	modal(b, id, "Create Order", func() {
		b.Form("id", "order-form", "hx-post", "/app/orders", "hx-swap", "none").R(
			textInput(b, "Customer Name", "customer_name", "text"),
			textInput(b, "Customer Email", "customer_email", "email"),
			textInput(b, "Delivery Date", "delivery_date", "date"),
			b.DivClass("order-items-header").R(
				b.H3().T("Items"),
				b.Button("class", "btn btn-secondary btn-sm", "type", "button",
					"hx-post", orderItemsEndpoint, "hx-swap", "none").T("Add Item"),
			),
			b.Div("class", "order-items", "id", OrderItemsID).R(),
			b.DivClass("order-total").R(
				b.Span().T("Total: $"),
				b.Span("id", OrderTotalID).T("0.00"),
			),
			formActions(b, id, "Create Order"),
		)
	})
	return nil
}
