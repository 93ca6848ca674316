package trip

import (
	"fmt"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/services/currency"

	"github.com/google/uuid"
)

// Recalculate rebuilds a trip's aggregate counters and rates from its
// child visits. It is the only place those aggregates are derived, so a
// trip's counters always equal the sum over its visits; callers must run
// it inside the same transaction as the visit write that triggered it.
func Recalculate(t *models.Trip, visits []models.Visit, conv currency.Converter) {
	var (
		completed    int
		orders       int
		totalEUR     float64
		totalSYP     float64
		collectedEUR float64
		collectedSYP float64
	)

	for _, v := range visits {
		if v.OrderID != nil || v.OrderValueEUR > 0 || v.OrderValueSYP > 0 {
			orders++
		}
		if v.Status != models.VisitStatusCompleted {
			continue
		}
		completed++

		// Only the visit's authoritative currency side counts; the
		// other column is a derived mirror, not a second amount.
		if v.Currency == models.CurrencySYP {
			totalSYP += v.OrderValueSYP
			collectedSYP += v.PaymentCollectedSYP
		} else {
			totalEUR += v.OrderValueEUR
			collectedEUR += v.PaymentCollectedEUR
		}
	}

	t.CompletedStores = completed
	t.TotalOrders = orders
	t.TotalAmountEUR = totalEUR
	t.TotalAmountSYP = totalSYP
	t.CollectedAmountEUR = collectedEUR
	t.CollectedAmountSYP = collectedSYP

	RecomputeRates(t, conv)
}

// RecomputeRates refreshes the completion and collection percentages from
// the trip's current counters and totals.
func RecomputeRates(t *models.Trip, conv currency.Converter) {
	if t.TotalStores > 0 {
		t.CompletionRate = float64(t.CompletedStores) / float64(t.TotalStores) * 100
	} else {
		t.CompletionRate = 0
	}

	totalEUR := conv.ToEUR(t.TotalAmountEUR, t.TotalAmountSYP)
	if totalEUR > 0 {
		t.CollectionRate = conv.ToEUR(t.CollectedAmountEUR, t.CollectedAmountSYP) / totalEUR * 100
	} else {
		t.CollectionRate = 0
	}
}

// Duration returns the trip's actual duration in minutes, or nil when
// either timestamp is missing.
func Duration(t *models.Trip) *int {
	if t.ActualStartTime == nil || t.ActualEndTime == nil {
		return nil
	}
	minutes := int(t.ActualEndTime.Sub(*t.ActualStartTime).Minutes())
	return &minutes
}

// Efficiency returns minutes spent per completed store, or nil when the
// duration is unknown or no store was completed.
func Efficiency(t *models.Trip) *float64 {
	d := Duration(t)
	if d == nil || t.CompletedStores == 0 {
		return nil
	}
	e := float64(*d) / float64(t.CompletedStores)
	return &e
}

// GenerateTripNumber builds a trip number of the form TRIP-YYYYMMDD-xxxx.
func GenerateTripNumber(date time.Time) string {
	return fmt.Sprintf("TRIP-%s-%s", date.Format("20060102"), uuid.NewString()[:4])
}
