package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"invdash/models"
)

// ============================================================================
// View Models
//
// Renderers in this file are pure: entities in, view models out. Surfaces
// turn view models into HTML or terminal output and escape all text.
// ============================================================================

// Fallback markers for absent optional fields
const (
	NotAvailable  = "N/A"
	Uncategorized = "Uncategorized"
)

// Empty-list placeholders
const (
	EmptyProducts     = "No products found"
	EmptySuppliers    = "No suppliers found"
	EmptyOrders       = "No orders found"
	EmptyTransactions = "No recent transactions"
	EmptyReport       = "No data for this report"
)

// Cell is one table cell. A non-empty Badge renders the text as a status
// badge with that style class.
type Cell struct {
	Text  string
	Badge string
}

// RowView is a table row bound to an entity id.
type RowView struct {
	ID    int
	Cells []Cell
}

// TableView is a rendered list. When Rows is empty, Empty is shown instead.
type TableView struct {
	Columns []string
	Rows    []RowView
	Empty   string
}

// Option is one entry of a selection control.
type Option struct {
	Value string
	Label string
}

// StatCard is one figure on the dashboard.
type StatCard struct {
	ID    string
	Label string
	Value string
}

// StatsView holds the headline cards and the secondary figures.
type StatsView struct {
	Cards     []StatCard
	Secondary []StatCard
}

// ActivityItem is one stock movement in the activity feed.
type ActivityItem struct {
	Icon        string // icon name used by the web surface
	Glyph       string // single-character icon used by the terminal surface
	Type        string
	ProductName string
	Detail      string
}

// ActivityView is the recent-activity feed.
type ActivityView struct {
	Items []ActivityItem
	Empty string
}

// FormatMoney renders an amount as dollars with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders a server timestamp as "Jan 2, 2006". Missing dates
// render N/A; unparsable ones are shown as sent.
func FormatDate(raw *string) string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return NotAvailable
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return *raw
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func text(s string) Cell {
	return Cell{Text: s}
}

// ============================================================================
// List renderers
// ============================================================================

// ProductsTable renders a page of products with a stock status badge.
func ProductsTable(products []models.Product) TableView {
	view := TableView{
		Columns: []string{"SKU", "Name", "Category", "Price", "Stock", "Status"},
		Empty:   EmptyProducts,
	}
	for _, p := range products {
		badge := Cell{Text: "In Stock", Badge: "in-stock"}
		if p.IsLowStock {
			badge = Cell{Text: "Low Stock", Badge: "low-stock"}
		}
		view.Rows = append(view.Rows, RowView{
			ID: p.ID,
			Cells: []Cell{
				text(orDefault(p.SKU, NotAvailable)),
				text(p.Name),
				text(orDefault(p.CategoryName, Uncategorized)),
				text(FormatMoney(p.UnitPrice)),
				text(strconv.Itoa(p.StockLevel)),
				badge,
			},
		})
	}
	return view
}

// SuppliersTable renders a page of suppliers.
func SuppliersTable(suppliers []models.Supplier) TableView {
	view := TableView{
		Columns: []string{"Name", "Contact", "Email", "Phone", "City"},
		Empty:   EmptySuppliers,
	}
	for _, s := range suppliers {
		view.Rows = append(view.Rows, RowView{
			ID: s.ID,
			Cells: []Cell{
				text(s.Name),
				text(orDefault(s.ContactPerson, NotAvailable)),
				text(orDefault(s.Email, NotAvailable)),
				text(orDefault(s.Phone, NotAvailable)),
				text(orDefault(s.City, NotAvailable)),
			},
		})
	}
	return view
}

// OrdersTable renders a page of orders. The status badge class is the
// lower-cased status, so unknown statuses still get a class.
func OrdersTable(orders []models.Order) TableView {
	view := TableView{
		Columns: []string{"Order", "Customer", "Date", "Total", "Status"},
		Empty:   EmptyOrders,
	}
	for _, o := range orders {
		view.Rows = append(view.Rows, RowView{
			ID: o.ID,
			Cells: []Cell{
				text("#" + strconv.Itoa(o.ID)),
				text(orDefault(o.CustomerName, NotAvailable)),
				text(FormatDate(o.OrderDate)),
				text(FormatMoney(o.TotalAmount)),
				{Text: o.Status, Badge: strings.ToLower(o.Status)},
			},
		})
	}
	return view
}

// ============================================================================
// Dashboard renderers
// ============================================================================

// StatsCards renders the dashboard summary.
func StatsCards(s models.DashboardStats) StatsView {
	return StatsView{
		Cards: []StatCard{
			{ID: "total-products", Label: "Total Products", Value: strconv.Itoa(s.TotalProducts)},
			{ID: "low-stock-count", Label: "Low Stock Items", Value: strconv.Itoa(s.LowStockCount)},
			{ID: "total-orders", Label: "Total Orders", Value: strconv.Itoa(s.TotalOrders)},
			{ID: "total-revenue", Label: "Total Revenue", Value: FormatMoney(s.TotalRevenue)},
		},
		Secondary: []StatCard{
			{ID: "pending-orders", Label: "Pending Orders", Value: strconv.Itoa(s.PendingOrders)},
			{ID: "recent-orders", Label: "Orders (7 days)", Value: strconv.Itoa(s.RecentOrders)},
			{ID: "inventory-value", Label: "Inventory Value", Value: FormatMoney(s.TotalInventoryValue)},
			{ID: "total-categories", Label: "Categories", Value: strconv.Itoa(s.TotalCategories)},
			{ID: "total-suppliers", Label: "Suppliers", Value: strconv.Itoa(s.TotalSuppliers)},
		},
	}
}

// TransactionIcon returns the icon name and glyph for a transaction type.
func TransactionIcon(txnType string) (icon, glyph string) {
	switch txnType {
	case models.TransactionIn:
		return "arrow-up", "↑"
	case models.TransactionOut:
		return "arrow-down", "↓"
	case models.TransactionAdjustment:
		return "edit", "✎"
	default:
		return "exchange-alt", "⇄"
	}
}

// ActivityFeed renders recent stock movements.
func ActivityFeed(txns []models.Transaction) ActivityView {
	view := ActivityView{Empty: EmptyTransactions}
	for _, t := range txns {
		icon, glyph := TransactionIcon(t.Type)
		view.Items = append(view.Items, ActivityItem{
			Icon:        icon,
			Glyph:       glyph,
			Type:        t.Type,
			ProductName: t.ProductName,
			Detail:      t.Type + " - " + strconv.Itoa(t.Quantity) + " units - " + FormatDate(t.Date),
		})
	}
	return view
}

// ============================================================================
// Selection controls
// ============================================================================

func categoryOptions(lead string, cats []models.Category) []Option {
	opts := []Option{{Value: "", Label: lead}}
	for _, c := range cats {
		opts = append(opts, Option{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	return opts
}

// CategoryFilterOptions feeds the product list's category filter.
func CategoryFilterOptions(cats []models.Category) []Option {
	return categoryOptions("All Categories", cats)
}

// ProductCategoryOptions feeds the category dropdown of the product form.
func ProductCategoryOptions(cats []models.Category) []Option {
	return categoryOptions("Select Category", cats)
}

// SupplierOptions feeds the supplier dropdown of the product form.
func SupplierOptions(sups []models.Supplier) []Option {
	opts := []Option{{Value: "", Label: "Select Supplier"}}
	for _, s := range sups {
		opts = append(opts, Option{Value: strconv.Itoa(s.ID), Label: s.Name})
	}
	return opts
}

// StatusOptions feeds the order status filter.
func StatusOptions() []Option {
	opts := []Option{{Value: "", Label: "All Statuses"}}
	for _, s := range models.OrderStatuses {
		opts = append(opts, Option{Value: s, Label: s})
	}
	return opts
}

// ProductChoiceOptions feeds the product selector of each order line.
func ProductChoiceOptions(products []models.Product) []Option {
	opts := []Option{{Value: "", Label: "Select Product"}}
	for _, p := range products {
		opts = append(opts, Option{
			Value: strconv.Itoa(p.ID),
			Label: p.Name + " (Stock: " + strconv.Itoa(p.StockLevel) + ")",
		})
	}
	return opts
}
