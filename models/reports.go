package models

import "github.com/shopspring/decimal"

// DashboardStats is the summary behind the dashboard cards. Revenue and the
// low-stock count are aggregated server-side.
type DashboardStats struct {
	TotalProducts       int             `json:"total_products"`
	LowStockCount       int             `json:"low_stock_count"`
	TotalOrders         int             `json:"total_orders"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	PendingOrders       int             `json:"pending_orders"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	RecentOrders        int             `json:"recent_orders"`
	TotalCategories     int             `json:"total_categories"`
	TotalSuppliers      int             `json:"total_suppliers"`
}

// RecentTransactions wraps GET /reports/recent-transactions.
type RecentTransactions struct {
	Transactions []Transaction `json:"recent_transactions"`
}

// LowInventoryItem is a product at or below its reorder level.
type LowInventoryItem struct {
	ProductID     int             `json:"product_id"`
	ProductName   string          `json:"product_name"`
	SKU           *string         `json:"sku,omitempty"`
	CategoryName  *string         `json:"category_name,omitempty"`
	StockLevel    int             `json:"stock_level"`
	ReorderLevel  int             `json:"reorder_level"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SupplierName  *string         `json:"supplier_name,omitempty"`
	SupplierEmail *string         `json:"supplier_email,omitempty"`
	SupplierPhone *string         `json:"supplier_phone,omitempty"`
	Shortage      int             `json:"shortage_quantity"`
}

// LowInventoryReport wraps GET /reports/low-inventory.
type LowInventoryReport struct {
	Items      []LowInventoryItem `json:"low_inventory_items"`
	TotalItems int                `json:"total_items"`
}

// CategorySales is one row of the sales-by-category report.
type CategorySales struct {
	CategoryName      string          `json:"category_name"`
	ProductsSold      int             `json:"products_sold"`
	TotalQuantitySold int             `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AvgSellingPrice   decimal.Decimal `json:"avg_selling_price"`
	NumberOfOrders    int             `json:"number_of_orders"`
}

// SalesByCategoryReport wraps GET /reports/sales-by-category.
type SalesByCategoryReport struct {
	Rows []CategorySales `json:"sales_by_category"`
}

// TopProduct is one row of the top-selling products report.
type TopProduct struct {
	ProductID      int             `json:"product_id"`
	ProductName    string          `json:"product_name"`
	SKU            *string         `json:"sku,omitempty"`
	CategoryName   *string         `json:"category_name,omitempty"`
	TotalSold      int             `json:"total_sold"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	OrderFrequency int             `json:"order_frequency"`
	CurrentStock   int             `json:"current_stock"`
}

// TopProductsReport wraps GET /reports/top-selling-products.
type TopProductsReport struct {
	Products []TopProduct `json:"top_selling_products"`
}

// CategoryValuation is one row of the inventory valuation report.
type CategoryValuation struct {
	CategoryName string          `json:"category_name"`
	ProductCount int             `json:"product_count"`
	TotalUnits   int             `json:"total_units"`
	TotalValue   decimal.Decimal `json:"total_value"`
	AvgUnitPrice decimal.Decimal `json:"avg_unit_price"`
}

// ValuationReport wraps GET /reports/inventory-valuation.
type ValuationReport struct {
	Rows []CategoryValuation `json:"inventory_valuation"`
}
