package dashboard_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdash/dashboard"
	"invdash/models"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want string
	}{
		{"missing", nil, "N/A"},
		{"blank", strPtr(" "), "N/A"},
		{"rfc3339", strPtr("2024-03-05T10:20:30Z"), "Mar 5, 2024"},
		{"iso without zone", strPtr("2024-03-05T10:20:30.123456"), "Mar 5, 2024"},
		{"date only", strPtr("2024-12-25"), "Dec 25, 2024"},
		{"unparsable", strPtr("last tuesday"), "last tuesday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.FormatDate(tt.raw))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", dashboard.FormatMoney(decimal.Zero))
	assert.Equal(t, "$12.50", dashboard.FormatMoney(decimal.RequireFromString("12.5")))
	assert.Equal(t, "$1234.57", dashboard.FormatMoney(decimal.RequireFromString("1234.567")))
}

func TestProductsTableFallbacks(t *testing.T) {
	table := dashboard.ProductsTable([]models.Product{
		{ID: 3, Name: "Saw", UnitPrice: decimal.RequireFromString("20"), StockLevel: 9},
		{ID: 4, Name: "Drill", SKU: strPtr("D-1"), CategoryName: strPtr("Tools"), UnitPrice: decimal.RequireFromString("99.9"), StockLevel: 1, IsLowStock: true},
	})

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 3, table.Rows[0].ID)
	assert.Equal(t, []dashboard.Cell{
		{Text: "N/A"}, {Text: "Saw"}, {Text: "Uncategorized"}, {Text: "$20.00"}, {Text: "9"},
		{Text: "In Stock", Badge: "in-stock"},
	}, table.Rows[0].Cells)
	assert.Equal(t, "D-1", table.Rows[1].Cells[0].Text)
	assert.Equal(t, "Tools", table.Rows[1].Cells[2].Text)
	assert.Equal(t, "low-stock", table.Rows[1].Cells[5].Badge)
}

func TestEmptyTablesCarryPlaceholder(t *testing.T) {
	assert.Equal(t, dashboard.EmptyProducts, dashboard.ProductsTable(nil).Empty)
	assert.Equal(t, dashboard.EmptySuppliers, dashboard.SuppliersTable(nil).Empty)
	assert.Equal(t, dashboard.EmptyOrders, dashboard.OrdersTable(nil).Empty)
	assert.Empty(t, dashboard.OrdersTable(nil).Rows)
}

func TestSuppliersTableFallbacks(t *testing.T) {
	table := dashboard.SuppliersTable([]models.Supplier{{ID: 9, Name: "Globex", Email: strPtr("sales@globex.test")}})

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []dashboard.Cell{
		{Text: "Globex"}, {Text: "N/A"}, {Text: "sales@globex.test"}, {Text: "N/A"}, {Text: "N/A"},
	}, table.Rows[0].Cells)
}

func TestOrdersTableStatusBadge(t *testing.T) {
	table := dashboard.OrdersTable([]models.Order{
		{ID: 12, CustomerName: strPtr("Ann"), OrderDate: strPtr("2024-01-15"), TotalAmount: decimal.RequireFromString("7.5"), Status: models.OrderStatusShipped},
		{ID: 13, Status: "OnHold"},
	})

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "#12", table.Rows[0].Cells[0].Text)
	assert.Equal(t, "Jan 15, 2024", table.Rows[0].Cells[2].Text)
	assert.Equal(t, "$7.50", table.Rows[0].Cells[3].Text)
	assert.Equal(t, dashboard.Cell{Text: "Shipped", Badge: "shipped"}, table.Rows[0].Cells[4])
	assert.Equal(t, "N/A", table.Rows[1].Cells[1].Text)
	assert.Equal(t, dashboard.Cell{Text: "OnHold", Badge: "onhold"}, table.Rows[1].Cells[4])
}

func TestTransactionIcon(t *testing.T) {
	tests := []struct {
		txn   string
		icon  string
		glyph string
	}{
		{models.TransactionIn, "arrow-up", "↑"},
		{models.TransactionOut, "arrow-down", "↓"},
		{models.TransactionAdjustment, "edit", "✎"},
		{"TRANSFER", "exchange-alt", "⇄"},
	}

	for _, tt := range tests {
		t.Run(tt.txn, func(t *testing.T) {
			icon, glyph := dashboard.TransactionIcon(tt.txn)
			assert.Equal(t, tt.icon, icon)
			assert.Equal(t, tt.glyph, glyph)
		})
	}
}

func TestActivityFeed(t *testing.T) {
	feed := dashboard.ActivityFeed([]models.Transaction{
		{ProductName: "Bolt", Type: models.TransactionIn, Quantity: 50, Date: strPtr("2024-05-01T08:00:00")},
	})

	require.Len(t, feed.Items, 1)
	assert.Equal(t, "IN - 50 units - May 1, 2024", feed.Items[0].Detail)
	assert.Equal(t, "arrow-up", feed.Items[0].Icon)
	assert.Equal(t, dashboard.EmptyTransactions, dashboard.ActivityFeed(nil).Empty)
}

func TestStatsCards(t *testing.T) {
	view := dashboard.StatsCards(models.DashboardStats{
		TotalProducts: 12, LowStockCount: 3, TotalOrders: 40,
		TotalRevenue: decimal.RequireFromString("1500.5"), RecentOrders: 6,
	})

	require.Len(t, view.Cards, 4)
	require.Len(t, view.Secondary, 5)
	assert.Equal(t, dashboard.StatCard{ID: "total-revenue", Label: "Total Revenue", Value: "$1500.50"}, view.Cards[3])
	assert.Equal(t, "6", view.Secondary[1].Value)
	assert.Equal(t, "$0.00", view.Secondary[2].Value)
}

func TestOptionLeads(t *testing.T) {
	cats := []models.Category{{ID: 4, Name: "Paint"}}
	assert.Equal(t, []dashboard.Option{{Value: "", Label: "All Categories"}, {Value: "4", Label: "Paint"}}, dashboard.CategoryFilterOptions(cats))
	assert.Equal(t, "Select Category", dashboard.ProductCategoryOptions(cats)[0].Label)
	assert.Equal(t, "Select Supplier", dashboard.SupplierOptions(nil)[0].Label)

	statuses := dashboard.StatusOptions()
	assert.Equal(t, "All Statuses", statuses[0].Label)
	assert.Equal(t, models.OrderStatuses[0], statuses[1].Value)
}
