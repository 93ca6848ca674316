package payment

import (
	"math"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/services/currency"
)

// DefaultOverdueDays is how long a pending payment may sit on its payment
// date before it counts as overdue.
const DefaultOverdueDays = 30

// Normalize derives the missing currency side of a payment from the
// authoritative one. Exactly one of AmountEUR/AmountSYP is authoritative
// per the Currency field; whenever the other side is zero it is derived
// through the converter, and the rate used is recorded on the payment.
func Normalize(p *models.Payment, conv currency.Converter) {
	rate := conv.SYPPerEUR()
	p.ExchangeRate = rate

	switch p.Currency {
	case models.CurrencySYP:
		if p.AmountEUR == 0 && p.AmountSYP != 0 {
			p.AmountEUR = round2(p.AmountSYP / rate)
		}
	default:
		if p.AmountSYP == 0 && p.AmountEUR != 0 {
			p.AmountSYP = round2(p.AmountEUR * rate)
		}
	}
}

// TotalInEUR folds the payment into EUR. Only the authoritative side is
// counted; the other is a derived mirror of it.
func TotalInEUR(p *models.Payment, conv currency.Converter) float64 {
	if p.Currency == models.CurrencySYP {
		return conv.ToEUR(0, p.AmountSYP)
	}
	return p.AmountEUR
}

// TotalInSYP folds the payment into SYP.
func TotalInSYP(p *models.Payment, conv currency.Converter) float64 {
	if p.Currency == models.CurrencySYP {
		return p.AmountSYP
	}
	return conv.ToSYP(p.AmountEUR, 0)
}

// IsOverdue reports whether a pending payment is older than daysPastDue.
func IsOverdue(p *models.Payment, now time.Time, daysPastDue int) bool {
	if p.Status != models.PaymentStatusPending {
		return false
	}
	return now.After(p.PaymentDate.AddDate(0, 0, daysPastDue))
}

// DaysOverdue returns how many whole days past due the payment is, or 0.
func DaysOverdue(p *models.Payment, now time.Time, daysPastDue int) int {
	if !IsOverdue(p, now, daysPastDue) {
		return 0
	}
	due := p.PaymentDate.AddDate(0, 0, daysPastDue)
	return int(now.Sub(due).Hours() / 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
