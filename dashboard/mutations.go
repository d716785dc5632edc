package dashboard

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"invdash/models"
)

// Defaults applied when a numeric product field is blank or unparsable
const (
	DefaultStockLevel   = 0
	DefaultReorderLevel = 10
)

// ProductForm holds the raw values of the add-product form.
type ProductForm struct {
	Name         string
	SKU          string
	Description  string
	CategoryID   string
	SupplierID   string
	UnitPrice    string
	StockLevel   string
	ReorderLevel string
}

// SupplierForm holds the raw values of the add-supplier form.
type SupplierForm struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	City          string
	Country       string
}

// OrderForm holds the customer fields of the add-order form. Line items
// come from the session's OrderBuilder.
type OrderForm struct {
	CustomerName  string
	CustomerEmail string
	DeliveryDate  string
}

// ============================================================================
// Form parsing
// ============================================================================

// errOutOfRange marks a number that does not fit in an int.
var errOutOfRange = errors.New("number out of range")

// parseIntOr parses a whole number, truncating a decimal entry, and returns
// fallback when raw is blank or not a number.
func parseIntOr(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, errOutOfRange
	}
	if err != nil || math.IsNaN(f) {
		return fallback, nil
	}
	f = math.Trunc(f)
	if f < math.MinInt || f >= -math.MinInt {
		return 0, errOutOfRange
	}
	return int(f), nil
}

// optionalID turns a selector value into a nullable reference.
func optionalID(raw string) *int {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// ParseProductForm builds a create-product payload. Price is required;
// blank or invalid stock defaults to 0 and reorder level to 10.
func ParseProductForm(f ProductForm) (models.ProductPayload, error) {
	payload := models.ProductPayload{
		Name:        strings.TrimSpace(f.Name),
		SKU:         strings.TrimSpace(f.SKU),
		Description: strings.TrimSpace(f.Description),
		CategoryID:  optionalID(f.CategoryID),
		SupplierID:  optionalID(f.SupplierID),
	}

	var err error
	if payload.StockLevel, err = parseIntOr(f.StockLevel, DefaultStockLevel); err != nil {
		return payload, &models.ValidationError{Message: "Stock level is out of range"}
	}
	if payload.ReorderLevel, err = parseIntOr(f.ReorderLevel, DefaultReorderLevel); err != nil {
		return payload, &models.ValidationError{Message: "Reorder level is out of range"}
	}

	rawPrice := strings.TrimSpace(f.UnitPrice)
	if rawPrice == "" {
		return payload, &models.ValidationError{Message: "Unit price is required"}
	}
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return payload, &models.ValidationError{Message: "Unit price must be a number"}
	}
	payload.UnitPrice = price

	return payload, models.ValidatePayload(payload)
}

// ParseSupplierForm builds a create-supplier payload.
func ParseSupplierForm(f SupplierForm) (models.SupplierPayload, error) {
	payload := models.SupplierPayload{
		Name:          strings.TrimSpace(f.Name),
		ContactPerson: strings.TrimSpace(f.ContactPerson),
		Email:         strings.TrimSpace(f.Email),
		Phone:         strings.TrimSpace(f.Phone),
		Address:       strings.TrimSpace(f.Address),
		City:          strings.TrimSpace(f.City),
		Country:       strings.TrimSpace(f.Country),
	}
	return payload, models.ValidatePayload(payload)
}

// ============================================================================
// Create handlers
// ============================================================================

func (a *App) CreateProduct(f ProductForm) {
	payload, err := ParseProductForm(f)
	if err != nil {
		a.rejectForm(err, "product form rejected")
		return
	}
	a.mutate(mutation{
		owner:   SectionProducts,
		modal:   ModalProduct,
		success: "Product added successfully",
		call: func(ctx context.Context) error {
			return a.api.CreateProduct(ctx, payload)
		},
	})
}

func (a *App) CreateSupplier(f SupplierForm) {
	payload, err := ParseSupplierForm(f)
	if err != nil {
		a.rejectForm(err, "supplier form rejected")
		return
	}
	a.mutate(mutation{
		owner:   SectionSuppliers,
		modal:   ModalSupplier,
		success: "Supplier added successfully",
		call: func(ctx context.Context) error {
			return a.api.CreateSupplier(ctx, payload)
		},
	})
}

// CreateOrder submits the open order builder's valid lines. Without at least
// one valid line nothing is sent.
func (a *App) CreateOrder(f OrderForm) {
	var items []models.OrderItemPayload
	if a.builder != nil {
		items = a.builder.Items()
	}
	if len(items) == 0 {
		a.act.notify(NotifyError, EmptyOrderMessage)
		return
	}

	payload := models.OrderPayload{
		CustomerName:  strings.TrimSpace(f.CustomerName),
		CustomerEmail: strings.TrimSpace(f.CustomerEmail),
		DeliveryDate:  strings.TrimSpace(f.DeliveryDate),
		Items:         items,
	}
	if err := models.ValidatePayload(payload); err != nil {
		a.rejectForm(err, "order form rejected")
		return
	}

	a.mutate(mutation{
		owner:   SectionOrders,
		modal:   ModalOrder,
		success: "Order created successfully",
		call: func(ctx context.Context) error {
			return a.api.CreateOrder(ctx, payload)
		},
		after: a.CloseOrderBuilder,
	})
}

func (a *App) rejectForm(err error, msg string) {
	logger.Debug(msg, "reason", err.Error())
	a.act.notify(NotifyError, models.ErrorMessage(err))
}

// ============================================================================
// Delete handlers
// ============================================================================

func (a *App) DeleteProduct(id int) {
	a.confirmDelete("product", SectionProducts, "Product deleted successfully",
		func(ctx context.Context) error { return a.api.DeleteProduct(ctx, id) })
}

func (a *App) DeleteSupplier(id int) {
	a.confirmDelete("supplier", SectionSuppliers, "Supplier deleted successfully",
		func(ctx context.Context) error { return a.api.DeleteSupplier(ctx, id) })
}

func (a *App) DeleteOrder(id int) {
	a.confirmDelete("order", SectionOrders, "Order deleted successfully",
		func(ctx context.Context) error { return a.api.DeleteOrder(ctx, id) })
}

// confirmDelete asks the surface first; a declined prompt makes no request.
func (a *App) confirmDelete(noun string, owner Section, success string, call func(ctx context.Context) error) {
	if !a.surface.Confirm("Are you sure you want to delete this " + noun + "?") {
		return
	}
	a.mutate(mutation{owner: owner, success: success, call: call})
}

// ============================================================================
// Shared mutation flow
// ============================================================================

type mutation struct {
	owner   Section
	modal   Modal // empty for deletes
	success string
	call    func(ctx context.Context) error
	after   func()
}

// mutate runs m.call and, on success, notifies, closes the modal, refreshes
// the dashboard stats once and the owning list once. A failure shows the
// server's message and refreshes nothing.
func (a *App) mutate(m mutation) {
	a.act.begin()
	a.runner.Go(func(ctx context.Context) func() {
		err := m.call(ctx)
		return func() {
			a.act.end()
			if err != nil {
				logger.LogErr(err, "mutation failed", "section", string(m.owner))
				a.act.notify(NotifyError, models.ErrorMessage(err))
				return
			}

			a.act.notify(NotifySuccess, m.success)
			if m.modal != "" {
				a.surface.CloseModal(m.modal)
			}
			if m.after != nil {
				m.after()
			}
			a.refreshAfterMutation(m.owner)
		}
	})
}

func (a *App) refreshAfterMutation(owner Section) {
	a.stats.Refresh()

	switch owner {
	case SectionProducts:
		if a.state.Active == SectionProducts {
			a.products.Refresh()
		}
	case SectionOrders:
		if a.state.Active == SectionOrders {
			a.orders.Refresh()
		}
	case SectionSuppliers:
		// Always reloaded: it also feeds the product form's supplier
		// dropdown. The table is only drawn when the section is active.
		a.suppliers.Refresh()
	}
}

// ============================================================================
// Order builder
// ============================================================================

// OpenOrderBuilder starts a fresh order with one empty line and fetches the
// whole catalog for the product selectors.
func (a *App) OpenOrderBuilder() {
	a.builder = NewOrderBuilder(a.state.Products)
	a.builder.AddItem()
	a.surface.RenderOrderBuilder(a.builder.View())
	a.catalog.Load(1)
}

// CloseOrderBuilder discards the order under construction.
func (a *App) CloseOrderBuilder() {
	a.builder = nil
}

// Builder returns the open order builder, or nil.
func (a *App) Builder() *OrderBuilder {
	return a.builder
}

func (a *App) AddOrderItem() error {
	return a.editOrder(func(b *OrderBuilder) error {
		b.AddItem()
		return nil
	})
}

func (a *App) RemoveOrderItem(row int) error {
	return a.editOrder(func(b *OrderBuilder) error { return b.RemoveItem(row) })
}

func (a *App) SelectOrderProduct(row int, productID string) error {
	return a.editOrder(func(b *OrderBuilder) error { return b.SelectProduct(row, productID) })
}

func (a *App) SetOrderQuantity(row int, quantity string) error {
	return a.editOrder(func(b *OrderBuilder) error { return b.SetQuantity(row, quantity) })
}

func (a *App) editOrder(edit func(b *OrderBuilder) error) error {
	if a.builder == nil {
		return serr.New("no order is being built")
	}
	if err := edit(a.builder); err != nil {
		return err
	}
	a.surface.RenderOrderBuilder(a.builder.View())
	return nil
}

func (a *App) setBuilderChoices(products []models.Product) {
	if a.builder == nil {
		return
	}
	a.builder.SetChoices(products)
	a.surface.RenderOrderBuilder(a.builder.View())
}
