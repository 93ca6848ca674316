package visit

import (
	"breadroute/internal/models"
	"breadroute/internal/services/currency"
)

// TotalValue folds the visit's order value into EUR. Only the
// authoritative side is counted; the other is a derived mirror of it.
func TotalValue(v *models.Visit, conv currency.Converter) float64 {
	if v.Currency == models.CurrencySYP {
		return conv.ToEUR(0, v.OrderValueSYP)
	}
	return v.OrderValueEUR
}

// TotalPayment folds the visit's collected payment into EUR.
func TotalPayment(v *models.Visit, conv currency.Converter) float64 {
	if v.Currency == models.CurrencySYP {
		return conv.ToEUR(0, v.PaymentCollectedSYP)
	}
	return v.PaymentCollectedEUR
}

// PaymentRate is payment over order value as a percentage, 0 when no
// order value was recorded.
func PaymentRate(v *models.Visit, conv currency.Converter) float64 {
	value := TotalValue(v, conv)
	if value == 0 {
		return 0
	}
	return TotalPayment(v, conv) / value * 100
}

// IsDelayed reports whether the driver arrived after the planned time.
func IsDelayed(v *models.Visit) bool {
	if v.PlannedArrivalTime == nil || v.ActualArrivalTime == nil {
		return false
	}
	return v.ActualArrivalTime.After(*v.PlannedArrivalTime)
}

// DelayMinutes returns how many minutes late the arrival was, or 0.
func DelayMinutes(v *models.Visit) int {
	if !IsDelayed(v) {
		return 0
	}
	return int(v.ActualArrivalTime.Sub(*v.PlannedArrivalTime).Minutes())
}

// durationMinutes recomputes the visit duration whenever both actual
// timestamps are present.
func durationMinutes(v *models.Visit) int {
	if v.ActualArrivalTime == nil || v.ActualDepartureTime == nil {
		return 0
	}
	return int(v.ActualDepartureTime.Sub(*v.ActualArrivalTime).Minutes())
}
