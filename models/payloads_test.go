package models_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdash/models"
)

func TestQueryParams(t *testing.T) {
	assert.Equal(t, map[string]string{"page": "1", "per_page": "20"},
		models.ProductQuery{Page: 1, PerPage: 20}.Params())

	assert.Equal(t, map[string]string{"page": "3", "per_page": "20", "search": "acme"},
		models.SupplierQuery{Page: 3, PerPage: 20, Search: "acme"}.Params())

	assert.Equal(t, map[string]string{"page": "1", "per_page": "20", "status": "Shipped"},
		models.OrderQuery{Page: 1, PerPage: 20, Status: "Shipped"}.Params())

	assert.Equal(t, map[string]string{"per_page": "1000"},
		models.ProductQuery{PerPage: models.CatalogPageSize}.Params())
}

func TestValidatePayload(t *testing.T) {
	require.NoError(t, models.ValidatePayload(models.ProductPayload{Name: "Widget", UnitPrice: 1}))

	err := models.ValidatePayload(models.ProductPayload{UnitPrice: -1})
	var valErr *models.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "Name is required; Unit price must not be negative", valErr.Message)

	err = models.ValidatePayload(models.SupplierPayload{Name: "Acme", Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, "Email must be a valid email address", models.ErrorMessage(err))

	require.NoError(t, models.ValidatePayload(models.SupplierPayload{Name: "Acme"}))

	err = models.ValidatePayload(models.OrderPayload{CustomerName: "Ann"})
	require.Error(t, err)
	assert.Contains(t, models.ErrorMessage(err), "Order items")

	err = models.ValidatePayload(models.OrderPayload{
		Items: []models.OrderItemPayload{{ProductID: 1, Quantity: 0, UnitPrice: 2}},
	})
	require.Error(t, err)
	assert.Contains(t, models.ErrorMessage(err), "Quantity must be greater than 0")
}
