package models

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Queries and Creation Payloads
//
// Queries turn loader filter state into API query parameters. Payloads are
// the bodies of the three create endpoints; their validate tags are checked
// client-side before any request is issued.
// ============================================================================

// DefaultPageSize is the page size every list loader requests.
const DefaultPageSize = 20

// CatalogPageSize fetches the whole product catalog for the order builder.
const CatalogPageSize = 1000

// ProductQuery filters GET /products.
type ProductQuery struct {
	Page       int
	PerPage    int
	Search     string
	CategoryID string
	LowStock   bool
}

// Params builds the query parameters. Empty filters are omitted.
func (q ProductQuery) Params() map[string]string {
	params := pageParams(q.Page, q.PerPage)
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.CategoryID != "" {
		params["category_id"] = q.CategoryID
	}
	if q.LowStock {
		params["low_stock"] = "true"
	}
	return params
}

// SupplierQuery filters GET /suppliers.
type SupplierQuery struct {
	Page    int
	PerPage int
	Search  string
}

func (q SupplierQuery) Params() map[string]string {
	params := pageParams(q.Page, q.PerPage)
	if q.Search != "" {
		params["search"] = q.Search
	}
	return params
}

// OrderQuery filters GET /orders.
type OrderQuery struct {
	Page    int
	PerPage int
	Status  string
}

func (q OrderQuery) Params() map[string]string {
	params := pageParams(q.Page, q.PerPage)
	if q.Status != "" {
		params["status"] = q.Status
	}
	return params
}

func pageParams(page, perPage int) map[string]string {
	params := map[string]string{}
	if page > 0 {
		params["page"] = strconv.Itoa(page)
	}
	if perPage > 0 {
		params["per_page"] = strconv.Itoa(perPage)
	}
	return params
}

// ProductPayload is the body of POST /products.
type ProductPayload struct {
	Name         string  `json:"product_name" validate:"required,max=200"`
	SKU          string  `json:"sku" validate:"max=50"`
	Description  string  `json:"description"`
	CategoryID   *int    `json:"category_id"`
	SupplierID   *int    `json:"supplier_id"`
	UnitPrice    float64 `json:"unit_price" validate:"gte=0"`
	StockLevel   int     `json:"stock_level" validate:"gte=0"`
	ReorderLevel int     `json:"reorder_level" validate:"gte=0"`
}

// SupplierPayload is the body of POST /suppliers.
type SupplierPayload struct {
	Name          string `json:"supplier_name" validate:"required,max=200"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
}

// OrderItemPayload is one line of an order creation request.
type OrderItemPayload struct {
	ProductID int     `json:"product_id" validate:"gt=0"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// OrderPayload is the body of POST /orders.
type OrderPayload struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email" validate:"omitempty,email"`
	DeliveryDate  string             `json:"delivery_date"`
	Items         []OrderItemPayload `json:"items" validate:"required,min=1,dive"`
}

// ============================================================================
// Validation
// ============================================================================

var payloadValidator = validator.New()

// fieldLabels maps payload field names to the labels shown in forms.
var fieldLabels = map[string]string{
	"Name":          "Name",
	"SKU":           "SKU",
	"UnitPrice":     "Unit price",
	"StockLevel":    "Stock level",
	"ReorderLevel":  "Reorder level",
	"Email":         "Email",
	"CustomerEmail": "Customer email",
	"Items":         "Order items",
	"ProductID":     "Product",
	"Quantity":      "Quantity",
}

// ValidationError is a client-side payload rejection. Its message is shown
// to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidatePayload checks a payload's validate tags and flattens the failures
// into a single sentence.
func ValidatePayload(payload any) error {
	err := payloadValidator.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !asValidationErrors(err, &fieldErrs) {
		return serr.Wrap(err, "payload validation failed")
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		msgs = append(msgs, describeFieldError(fieldErr))
	}
	return &ValidationError{Message: strings.Join(msgs, "; ")}
}

func asValidationErrors(err error, out *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if ok {
		*out = fieldErrs
	}
	return ok
}

func describeFieldError(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "max":
		return label + " must be at most " + fe.Param() + " characters"
	case "min":
		return label + " must have at least " + fe.Param() + " entry"
	case "gt":
		return label + " must be greater than " + fe.Param()
	case "gte":
		return label + " must not be negative"
	default:
		return label + " is invalid"
	}
}
