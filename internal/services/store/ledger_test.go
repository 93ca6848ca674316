package store

import (
	"testing"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/services/currency"

	"github.com/stretchr/testify/assert"
)

var testConv = currency.NewConverter(currency.NewFixedProvider(15000))

func TestPerformanceRating(t *testing.T) {
	tests := []struct {
		name           string
		completionRate float64
		paymentRate    float64
		want           float64
	}{
		{"excellent", 100, 95, 5.0},
		{"boundary excellent", 95, 95, 5.0},
		{"good", 90, 85, 4.0},
		{"boundary good", 85, 85, 4.0},
		{"average", 80, 75, 3.0},
		{"boundary average", 75, 75, 3.0},
		{"poor", 70, 65, 2.0},
		{"boundary poor", 65, 65, 2.0},
		{"critical", 50, 40, 1.0},
		{"no activity", 0, 0, 1.0},
		{"just below excellent", 94.9, 94.9, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PerformanceRating(tt.completionRate, tt.paymentRate))
		})
	}
}

func TestCompletionRate(t *testing.T) {
	s := &models.Store{TotalOrders: 0}
	assert.Equal(t, 0.0, CompletionRate(s))

	s = &models.Store{TotalOrders: 10, CompletedOrders: 7}
	assert.InDelta(t, 70.0, CompletionRate(s), 1e-9)
}

func TestPaymentRate(t *testing.T) {
	t.Run("no purchases", func(t *testing.T) {
		s := &models.Store{}
		assert.Equal(t, 0.0, PaymentRate(s, testConv))
	})

	t.Run("partial payment", func(t *testing.T) {
		s := &models.Store{TotalPurchasesEUR: 200, TotalPaymentsEUR: 150}
		assert.InDelta(t, 75.0, PaymentRate(s, testConv), 1e-9)
	})

	t.Run("overpayment capped at 100", func(t *testing.T) {
		s := &models.Store{TotalPurchasesEUR: 100, TotalPaymentsEUR: 150}
		assert.Equal(t, 100.0, PaymentRate(s, testConv))
	})

	t.Run("mixed currencies", func(t *testing.T) {
		// 100 EUR purchased, 50 EUR + 750000 SYP (= 50 EUR) paid.
		s := &models.Store{
			TotalPurchasesEUR: 100,
			TotalPaymentsEUR:  50,
			TotalPaymentsSYP:  750000,
		}
		assert.InDelta(t, 100.0, PaymentRate(s, testConv), 1e-9)
	})
}

func TestApplyOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("completed EUR order", func(t *testing.T) {
		s := &models.Store{CreditLimitEUR: 1000}
		ApplyOrder(s, 100, models.CurrencyEUR, true, testConv, now)

		assert.Equal(t, 1, s.TotalOrders)
		assert.Equal(t, 1, s.CompletedOrders)
		assert.InDelta(t, 100, s.TotalPurchasesEUR, 1e-9)
		assert.InDelta(t, 100, s.CurrentBalanceEUR, 1e-9)
		assert.InDelta(t, 100, s.AverageOrderValue, 1e-9)
		assert.NotNil(t, s.LastOrderDate)
		assert.Equal(t, now, *s.LastOrderDate)
	})

	t.Run("completed SYP order converts to EUR balance", func(t *testing.T) {
		s := &models.Store{CreditLimitEUR: 1000}
		ApplyOrder(s, 150000, models.CurrencySYP, true, testConv, now)

		assert.InDelta(t, 150000, s.TotalPurchasesSYP, 1e-9)
		assert.InDelta(t, 10, s.CurrentBalanceEUR, 1e-9)
	})

	t.Run("placed but not completed", func(t *testing.T) {
		s := &models.Store{}
		ApplyOrder(s, 100, models.CurrencyEUR, false, testConv, now)

		assert.Equal(t, 1, s.TotalOrders)
		assert.Equal(t, 0, s.CompletedOrders)
		assert.Zero(t, s.CurrentBalanceEUR)
		assert.Nil(t, s.LastOrderDate)
	})
}

func TestApplyCancelledOrder(t *testing.T) {
	s := &models.Store{TotalOrders: 4, CompletedOrders: 4}
	ApplyCancelledOrder(s, testConv)

	assert.Equal(t, 5, s.TotalOrders)
	assert.Equal(t, 1, s.CancelledOrders)
	assert.InDelta(t, 80.0, CompletionRate(s), 1e-9)
}

func TestApplyPayment(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("EUR payment reduces balance", func(t *testing.T) {
		s := &models.Store{CurrentBalanceEUR: 100, TotalPurchasesEUR: 100}
		ApplyPayment(s, 60, models.CurrencyEUR, testConv, now)

		assert.InDelta(t, 40, s.CurrentBalanceEUR, 1e-9)
		assert.InDelta(t, 60, s.TotalPaymentsEUR, 1e-9)
		assert.NotNil(t, s.LastPaymentDate)
	})

	t.Run("SYP payment converts before reducing balance", func(t *testing.T) {
		s := &models.Store{CurrentBalanceEUR: 100, TotalPurchasesEUR: 100}
		ApplyPayment(s, 150000, models.CurrencySYP, testConv, now)

		assert.InDelta(t, 90, s.CurrentBalanceEUR, 1e-9)
		assert.InDelta(t, 150000, s.TotalPaymentsSYP, 1e-9)
	})
}

func TestWithinCreditLimit(t *testing.T) {
	s := &models.Store{CreditLimitEUR: 100, CurrentBalanceEUR: 80}

	assert.True(t, WithinCreditLimit(s, 15, models.CurrencyEUR, testConv))
	assert.True(t, WithinCreditLimit(s, 20, models.CurrencyEUR, testConv), "exactly at the limit is allowed")
	assert.False(t, WithinCreditLimit(s, 30, models.CurrencyEUR, testConv))

	// 300000 SYP = 20 EUR at the fixed rate.
	assert.True(t, WithinCreditLimit(s, 300000, models.CurrencySYP, testConv))
	assert.False(t, WithinCreditLimit(s, 300001, models.CurrencySYP, testConv))
}

func TestRecompute_Idempotent(t *testing.T) {
	s := &models.Store{
		TotalOrders:       10,
		CompletedOrders:   10,
		TotalPurchasesEUR: 500,
		TotalPaymentsEUR:  500,
	}

	Recompute(s, testConv)
	first := *s
	Recompute(s, testConv)

	assert.Equal(t, first.AverageOrderValue, s.AverageOrderValue)
	assert.Equal(t, first.PerformanceRating, s.PerformanceRating)
	assert.Equal(t, 5.0, s.PerformanceRating)
}
