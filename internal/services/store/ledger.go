package store

import (
	"time"

	"breadroute/internal/models"
	"breadroute/internal/services/currency"
)

// Rating tier thresholds over the mean of completion rate and payment rate.
const (
	ratingTierExcellent = 95
	ratingTierGood      = 85
	ratingTierAverage   = 75
	ratingTierPoor      = 65
)

// ApplyOrder records one order against the store ledger. A completed order
// increases the running balance and the purchase totals; a merely placed
// order only bumps the counters. Callers that care about the credit limit
// must check WithinCreditLimit first; this is a ledger, not a gate.
func ApplyOrder(s *models.Store, value float64, curr string, completed bool, conv currency.Converter, now time.Time) {
	s.TotalOrders++

	if completed {
		s.CompletedOrders++
		switch curr {
		case models.CurrencySYP:
			s.TotalPurchasesSYP += value
			s.CurrentBalanceEUR += conv.ToEUR(0, value)
		default:
			s.TotalPurchasesEUR += value
			s.CurrentBalanceEUR += value
		}
		t := now
		s.LastOrderDate = &t
	}

	Recompute(s, conv)
}

// ApplyCancelledOrder records an order that was cancelled before delivery.
func ApplyCancelledOrder(s *models.Store, conv currency.Converter) {
	s.TotalOrders++
	s.CancelledOrders++
	Recompute(s, conv)
}

// ApplyPayment records a collected payment: the balance drops and the
// payment totals grow in the payment's currency.
func ApplyPayment(s *models.Store, amount float64, curr string, conv currency.Converter, now time.Time) {
	switch curr {
	case models.CurrencySYP:
		s.TotalPaymentsSYP += amount
		s.CurrentBalanceEUR -= conv.ToEUR(0, amount)
	default:
		s.TotalPaymentsEUR += amount
		s.CurrentBalanceEUR -= amount
	}
	t := now
	s.LastPaymentDate = &t

	Recompute(s, conv)
}

// WithinCreditLimit reports whether a new order of the given value would
// keep the store at or under its credit limit. This is a check only; no
// atomicity is provided against concurrent orders.
func WithinCreditLimit(s *models.Store, value float64, curr string, conv currency.Converter) bool {
	var valueEUR float64
	if curr == models.CurrencySYP {
		valueEUR = conv.ToEUR(0, value)
	} else {
		valueEUR = value
	}
	return s.CurrentBalanceEUR+valueEUR <= s.CreditLimitEUR
}

// Recompute refreshes the derived ledger fields: average order value and
// the performance rating.
func Recompute(s *models.Store, conv currency.Converter) {
	purchasesEUR := conv.ToEUR(s.TotalPurchasesEUR, s.TotalPurchasesSYP)
	if s.CompletedOrders > 0 {
		s.AverageOrderValue = purchasesEUR / float64(s.CompletedOrders)
	} else {
		s.AverageOrderValue = 0
	}
	s.PerformanceRating = PerformanceRating(CompletionRate(s), PaymentRate(s, conv))
}

// CompletionRate is completed orders over total orders, as a percentage.
func CompletionRate(s *models.Store) float64 {
	if s.TotalOrders == 0 {
		return 0
	}
	return float64(s.CompletedOrders) / float64(s.TotalOrders) * 100
}

// PaymentRate is payments over purchases in EUR equivalents, as a
// percentage capped at 100.
func PaymentRate(s *models.Store, conv currency.Converter) float64 {
	purchasesEUR := conv.ToEUR(s.TotalPurchasesEUR, s.TotalPurchasesSYP)
	if purchasesEUR == 0 {
		return 0
	}
	rate := conv.ToEUR(s.TotalPaymentsEUR, s.TotalPaymentsSYP) / purchasesEUR * 100
	if rate > 100 {
		return 100
	}
	return rate
}

// PerformanceRating maps the mean of completion rate and payment rate onto
// the five-tier 1..5 scale.
func PerformanceRating(completionRate, paymentRate float64) float64 {
	avg := (completionRate + paymentRate) / 2
	switch {
	case avg >= ratingTierExcellent:
		return 5.0
	case avg >= ratingTierGood:
		return 4.0
	case avg >= ratingTierAverage:
		return 3.0
	case avg >= ratingTierPoor:
		return 2.0
	default:
		return 1.0
	}
}
