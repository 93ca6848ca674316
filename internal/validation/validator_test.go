package validation

import (
	"testing"

	"breadroute/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Basics(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Required("name", "")
	assert.False(t, v.Valid())
	assert.Len(t, v.Errors, 1)
	assert.Equal(t, "name", v.Errors[0].Field)
}

func TestValidator_EmailAndPhone(t *testing.T) {
	v := New()
	v.Email("email", "driver@example.com")
	v.Phone("phone", "+963912345678")
	assert.True(t, v.Valid())

	v = New()
	v.Email("email", "not-an-email")
	v.Phone("phone", "abc")
	assert.Len(t, v.Errors, 2)
}

func TestValidator_Store(t *testing.T) {
	t.Run("valid store", func(t *testing.T) {
		v := New()
		v.Store(&models.Store{
			Name:           "Corner Bakery",
			OwnerName:      "A. Haddad",
			CreditLimitEUR: 500,
			CommissionRate: 5,
		})
		assert.True(t, v.Valid())
	})

	t.Run("negative credit limit", func(t *testing.T) {
		v := New()
		v.Store(&models.Store{Name: "x", OwnerName: "y", CreditLimitEUR: -1})
		assert.False(t, v.Valid())
	})

	t.Run("commission rate out of range", func(t *testing.T) {
		v := New()
		v.Store(&models.Store{Name: "x", OwnerName: "y", CommissionRate: 150})
		assert.False(t, v.Valid())
	})
}

func TestValidator_RoutePlan(t *testing.T) {
	tests := []struct {
		name  string
		route []uint
		valid bool
	}{
		{"ordered unique stops", []uint{1, 2, 3}, true},
		{"empty", nil, false},
		{"duplicate stop", []uint{1, 2, 1}, false},
		{"zero id", []uint{1, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.RoutePlan(tt.route)
			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}

func TestValidator_PaymentAmount(t *testing.T) {
	v := New()
	v.PaymentAmount(100, models.CurrencyEUR)
	assert.True(t, v.Valid())

	v = New()
	v.PaymentAmount(0, models.CurrencyEUR)
	assert.False(t, v.Valid())

	v = New()
	v.PaymentAmount(100, "USD")
	assert.False(t, v.Valid())

	// SYP amounts are not bounded by the EUR range.
	v = New()
	v.PaymentAmount(1500000, models.CurrencySYP)
	assert.True(t, v.Valid())
}

func TestStruct(t *testing.T) {
	type req struct {
		Currency string  `validate:"required,oneof=EUR SYP"`
		Amount   float64 `validate:"required,gt=0"`
	}

	assert.NoError(t, Struct(req{Currency: "EUR", Amount: 10}))
	assert.Error(t, Struct(req{Currency: "USD", Amount: 10}))
	assert.Error(t, Struct(req{Currency: "EUR"}))
}
