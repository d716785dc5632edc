package dashboard

import (
	"strconv"

	"github.com/rohanthewiz/serr"
	"github.com/shopspring/decimal"

	"invdash/models"
)

// EmptyOrderMessage rejects an order submission without a valid line.
const EmptyOrderMessage = "Please add at least one item to the order"

// OrderRow is one line of an order under construction. The unit price always
// comes from the selected product; it is never typed in.
type OrderRow struct {
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal
	priced    bool
}

// Priced reports whether the row's unit price resolved from a product.
func (r OrderRow) Priced() bool {
	return r.priced
}

// LineTotal is quantity times unit price, zero until a product is chosen.
func (r OrderRow) LineTotal() decimal.Decimal {
	if !r.priced {
		return decimal.Zero
	}
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// Valid reports whether the row may be submitted.
func (r OrderRow) Valid() bool {
	return r.ProductID > 0 && r.Quantity > 0 && r.priced
}

// OrderRowView is an order line ready for display.
type OrderRowView struct {
	Index     int
	ProductID string
	Quantity  string
	UnitPrice string
	LineTotal string
}

// OrderBuilderView is the order form's line items and grand total.
type OrderBuilderView struct {
	Rows       []OrderRowView
	Choices    []Option
	GrandTotal string
}

// OrderBuilder holds the line items of the order form. It is the only
// derived state in the dashboard: the grand total is recomputed from the
// rows on every read.
type OrderBuilder struct {
	rows    []OrderRow
	choices []models.Product
	byID    map[int]models.Product
}

// NewOrderBuilder returns a builder with no rows offering choices.
func NewOrderBuilder(choices []models.Product) *OrderBuilder {
	b := &OrderBuilder{}
	b.SetChoices(choices)
	return b
}

// SetChoices replaces the product list. Rows whose product is no longer
// offered lose their selection; the rest pick up the new price.
func (b *OrderBuilder) SetChoices(products []models.Product) {
	b.choices = products
	b.byID = make(map[int]models.Product, len(products))
	for _, p := range products {
		b.byID[p.ID] = p
	}
	for i := range b.rows {
		b.resolve(i, b.rows[i].ProductID)
	}
}

// AddItem appends an empty row and returns its index.
func (b *OrderBuilder) AddItem() int {
	b.rows = append(b.rows, OrderRow{})
	return len(b.rows) - 1
}

func (b *OrderBuilder) RemoveItem(row int) error {
	if err := b.check(row); err != nil {
		return err
	}
	b.rows = append(b.rows[:row], b.rows[row+1:]...)
	return nil
}

// SelectProduct sets a row's product from a raw selector value. An empty or
// unknown id clears the row's product and price.
func (b *OrderBuilder) SelectProduct(row int, rawID string) error {
	if err := b.check(row); err != nil {
		return err
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		id = 0
	}
	b.resolve(row, id)
	return nil
}

// SetQuantity parses a raw quantity. Invalid or negative input counts as 0.
func (b *OrderBuilder) SetQuantity(row int, raw string) error {
	if err := b.check(row); err != nil {
		return err
	}
	qty, err := parseIntOr(raw, 0)
	if err != nil {
		qty = 0
	}
	b.rows[row].Quantity = max(0, qty)
	return nil
}

func (b *OrderBuilder) resolve(row, id int) {
	p, ok := b.byID[id]
	if !ok {
		b.rows[row].ProductID = 0
		b.rows[row].UnitPrice = decimal.Zero
		b.rows[row].priced = false
		return
	}
	b.rows[row].ProductID = p.ID
	b.rows[row].UnitPrice = p.UnitPrice
	b.rows[row].priced = true
}

func (b *OrderBuilder) check(row int) error {
	if row < 0 || row >= len(b.rows) {
		return serr.New("order line " + strconv.Itoa(row) + " does not exist")
	}
	return nil
}

func (b *OrderBuilder) Rows() []OrderRow {
	return append([]OrderRow(nil), b.rows...)
}

// GrandTotal is the sum of every row's line total.
func (b *OrderBuilder) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range b.rows {
		total = total.Add(r.LineTotal())
	}
	return total
}

// Items returns the submittable rows as order payload lines.
func (b *OrderBuilder) Items() []models.OrderItemPayload {
	var items []models.OrderItemPayload
	for _, r := range b.rows {
		if !r.Valid() {
			continue
		}
		items = append(items, models.OrderItemPayload{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice.InexactFloat64(),
		})
	}
	return items
}

// View renders the builder for a surface.
func (b *OrderBuilder) View() OrderBuilderView {
	view := OrderBuilderView{
		Choices:    ProductChoiceOptions(b.choices),
		GrandTotal: b.GrandTotal().StringFixed(2),
	}
	for i, r := range b.rows {
		rv := OrderRowView{Index: i, LineTotal: r.LineTotal().StringFixed(2)}
		if r.ProductID > 0 {
			rv.ProductID = strconv.Itoa(r.ProductID)
		}
		if r.Quantity > 0 {
			rv.Quantity = strconv.Itoa(r.Quantity)
		}
		if r.priced {
			rv.UnitPrice = r.UnitPrice.StringFixed(2)
		}
		view.Rows = append(view.Rows, rv)
	}
	return view
}
