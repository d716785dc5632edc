package models

import (
	"github.com/shopspring/decimal"
)

// ============================================================================
// Inventory Entities
//
// Read models mirrored from the inventory API. The client never constructs
// identifiers; it only decodes them. Optional server fields are pointers so
// renderers can tell "absent" from "empty" and print a fallback marker.
// ============================================================================

// Category is read-only reference data used to filter and classify products.
type Category struct {
	ID          int     `json:"category_id"`
	Name        string  `json:"category_name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   *string `json:"created_at,omitempty"`
}

// Supplier is a vendor record. Every contact field is optional on the server.
type Supplier struct {
	ID            int     `json:"supplier_id"`
	Name          string  `json:"supplier_name"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	Country       *string `json:"country,omitempty"`
	CreatedAt     *string `json:"created_at,omitempty"`
}

// Product is a catalog item. IsLowStock is computed by the server; the client
// displays it and never re-derives it.
type Product struct {
	ID           int             `json:"product_id"`
	Name         string          `json:"product_name"`
	SKU          *string         `json:"sku,omitempty"`
	Description  *string         `json:"description,omitempty"`
	CategoryID   *int            `json:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
	SupplierID   *int            `json:"supplier_id,omitempty"`
	SupplierName *string         `json:"supplier_name,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	StockLevel   int             `json:"stock_level"`
	ReorderLevel int             `json:"reorder_level"`
	IsLowStock   bool            `json:"is_low_stock"`
	CreatedAt    *string         `json:"created_at,omitempty"`
	UpdatedAt    *string         `json:"updated_at,omitempty"`
}

// Order statuses the client knows how to filter by. The server owns the
// transitions; unknown values are displayed verbatim.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// OrderStatuses lists the filterable statuses in display order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Order is a customer order with its persisted line items.
type Order struct {
	ID            int             `json:"order_id"`
	CustomerName  *string         `json:"customer_name,omitempty"`
	CustomerEmail *string         `json:"customer_email,omitempty"`
	OrderDate     *string         `json:"order_date,omitempty"`
	DeliveryDate  *string         `json:"delivery_date,omitempty"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         *string         `json:"notes,omitempty"`
	Items         []OrderItem     `json:"items"`
}

// OrderItem is a persisted line item on an existing order.
type OrderItem struct {
	ID          int             `json:"order_item_id"`
	OrderID     int             `json:"order_id"`
	ProductID   int             `json:"product_id"`
	ProductName *string         `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Inventory transaction types
const (
	TransactionIn         = "IN"
	TransactionOut        = "OUT"
	TransactionAdjustment = "ADJUSTMENT"
)

// Transaction is a stock movement shown on the dashboard activity feed.
type Transaction struct {
	ID            int     `json:"transaction_id"`
	ProductName   string  `json:"product_name"`
	SKU           *string `json:"sku,omitempty"`
	Type          string  `json:"transaction_type"`
	Quantity      int     `json:"quantity"`
	ReferenceType *string `json:"reference_type,omitempty"`
	ReferenceID   *int    `json:"reference_id,omitempty"`
	Date          *string `json:"transaction_date,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// Pagination is the envelope metadata shared by every paged list response.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	Pages       int `json:"pages"`
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
}

// ProductPage is one page of GET /products.
type ProductPage struct {
	Pagination
	Products []Product `json:"products"`
}

// SupplierPage is one page of GET /suppliers.
type SupplierPage struct {
	Pagination
	Suppliers []Supplier `json:"suppliers"`
}

// OrderPage is one page of GET /orders.
type OrderPage struct {
	Pagination
	Orders []Order `json:"orders"`
}
