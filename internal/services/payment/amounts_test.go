package payment

import (
	"testing"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/services/currency"

	"github.com/stretchr/testify/assert"
)

var testConv = currency.NewConverter(currency.NewFixedProvider(15000))

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		payment models.Payment
		wantEUR float64
		wantSYP float64
	}{
		{
			name:    "SYP authoritative derives EUR",
			payment: models.Payment{Currency: models.CurrencySYP, AmountSYP: 150000},
			wantEUR: 10,
			wantSYP: 150000,
		},
		{
			name:    "EUR authoritative derives SYP",
			payment: models.Payment{Currency: models.CurrencyEUR, AmountEUR: 10},
			wantEUR: 10,
			wantSYP: 150000,
		},
		{
			name:    "already normalized sides untouched",
			payment: models.Payment{Currency: models.CurrencyEUR, AmountEUR: 10, AmountSYP: 145000},
			wantEUR: 10,
			wantSYP: 145000,
		},
		{
			name:    "fractional SYP rounds to cents",
			payment: models.Payment{Currency: models.CurrencySYP, AmountSYP: 100000},
			wantEUR: 6.67,
			wantSYP: 100000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Normalize(&tt.payment, testConv)

			assert.InDelta(t, tt.wantEUR, tt.payment.AmountEUR, 1e-9)
			assert.InDelta(t, tt.wantSYP, tt.payment.AmountSYP, 1e-9)
			assert.InDelta(t, 15000, tt.payment.ExchangeRate, 1e-9)
		})
	}
}

func TestTotalInEUR_UsesAuthoritativeSide(t *testing.T) {
	// A stale EUR mirror must not leak into the total when SYP is
	// authoritative.
	p := &models.Payment{Currency: models.CurrencySYP, AmountSYP: 150000, AmountEUR: 999}
	assert.InDelta(t, 10, TotalInEUR(p, testConv), 1e-9)

	p = &models.Payment{Currency: models.CurrencyEUR, AmountEUR: 25, AmountSYP: 999}
	assert.InDelta(t, 25, TotalInEUR(p, testConv), 1e-9)
}

func TestTotalInSYP(t *testing.T) {
	p := &models.Payment{Currency: models.CurrencyEUR, AmountEUR: 10}
	assert.InDelta(t, 150000, TotalInSYP(p, testConv), 1e-9)

	p = &models.Payment{Currency: models.CurrencySYP, AmountSYP: 45000}
	assert.InDelta(t, 45000, TotalInSYP(p, testConv), 1e-9)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payment models.Payment
		want    bool
	}{
		{
			name:    "pending past cutoff",
			payment: models.Payment{Status: models.PaymentStatusPending, PaymentDate: now.AddDate(0, 0, -31)},
			want:    true,
		},
		{
			name:    "pending within cutoff",
			payment: models.Payment{Status: models.PaymentStatusPending, PaymentDate: now.AddDate(0, 0, -29)},
			want:    false,
		},
		{
			name:    "completed payments never overdue",
			payment: models.Payment{Status: models.PaymentStatusCompleted, PaymentDate: now.AddDate(0, 0, -90)},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(&tt.payment, now, DefaultOverdueDays))
		})
	}
}

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	p := &models.Payment{Status: models.PaymentStatusPending, PaymentDate: now.AddDate(0, 0, -40)}
	assert.Equal(t, 10, DaysOverdue(p, now, DefaultOverdueDays))

	p = &models.Payment{Status: models.PaymentStatusPending, PaymentDate: now.AddDate(0, 0, -10)}
	assert.Equal(t, 0, DaysOverdue(p, now, DefaultOverdueDays))
}
