// internal/utils/validator_test.go
package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gadaelectronics/storefront/internal/models"
)

func TestValidateShippingAddress(t *testing.T) {
	valid := models.ShippingAddress{
		Name:         "Jethalal Gada",
		AddressLine1: "Gokuldham Society, B-3",
		City:         "Mumbai",
		State:        "Maharashtra",
		PostalCode:   "400063",
		Country:      "India",
		Phone:        "9876543210",
	}
	assert.NoError(t, ValidateStruct(valid))

	tests := []struct {
		name   string
		mutate func(*models.ShippingAddress)
	}{
		{"missing name", func(a *models.ShippingAddress) { a.Name = "" }},
		{"missing city", func(a *models.ShippingAddress) { a.City = "" }},
		{"short phone", func(a *models.ShippingAddress) { a.Phone = "12345" }},
		{"long phone", func(a *models.ShippingAddress) { a.Phone = "98765432100" }},
		{"alpha phone", func(a *models.ShippingAddress) { a.Phone = "98765abc10" }},
		{"phone with spaces", func(a *models.ShippingAddress) { a.Phone = "98765 4321" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := valid
			tt.mutate(&addr)
			assert.Error(t, ValidateStruct(addr))
		})
	}

	// AddressLine2 stays optional.
	addr := valid
	addr.AddressLine2 = ""
	assert.NoError(t, ValidateStruct(addr))
}

func TestGetValidationErrors(t *testing.T) {
	addr := models.ShippingAddress{Phone: "123"}
	err := ValidateStruct(addr)
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.NotEmpty(t, errs)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "required", byField["name"].Tag)
	assert.Equal(t, "Phone must be a 10-digit number", byField["phone"].Message)
}

// Services wrap validation failures before handlers see them; the per-field
// envelope must survive the wrapping.
func TestGetValidationErrors_WrappedError(t *testing.T) {
	err := ValidateStruct(models.ShippingAddress{Phone: "123"})
	wrapped := fmt.Errorf("validation failed: %w", err)

	errs := GetValidationErrors(wrapped)
	assert.NotEmpty(t, errs)

	assert.Empty(t, GetValidationErrors(errors.New("not a validation error")))
}
