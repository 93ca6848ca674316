package validation

import (
	"breadroute/internal/models"
)

// Store validates a store before it enters the ledger.
func (v *Validator) Store(s *models.Store) {
	v.Required("name", s.Name)
	v.Required("owner_name", s.OwnerName)
	v.Check(len(s.Name) <= MaxNameLength, "name", "is too long")
	v.Check(s.CreditLimitEUR >= 0, "credit_limit_eur", "must not be negative")
	v.Range("commission_rate", s.CommissionRate, 0, 100)
	if s.Phone != "" {
		v.Phone("phone", s.Phone)
	}
}

// PaymentAmount validates a payment amount in either currency.
func (v *Validator) PaymentAmount(amount float64, currency string) {
	v.Required("amount", amount)
	v.Check(amount > 0, "amount", "must be positive")
	v.Check(currency == models.CurrencyEUR || currency == models.CurrencySYP,
		"currency", "must be EUR or SYP")
	if currency == models.CurrencyEUR {
		v.Range("amount", amount, MinPaymentAmount, MaxPaymentAmount)
	}
}

// RoutePlan validates a trip's ordered store list.
func (v *Validator) RoutePlan(storeIDs []uint) {
	v.Check(len(storeIDs) > 0, "route_plan", "must contain at least one store")
	v.Check(len(storeIDs) <= MaxRouteStops, "route_plan", "has too many stops")

	seen := make(map[uint]bool, len(storeIDs))
	for _, id := range storeIDs {
		if id == 0 {
			v.AddError("route_plan", "contains an invalid store id")
			return
		}
		if seen[id] {
			v.AddError("route_plan", "contains duplicate stores")
			return
		}
		seen[id] = true
	}
}

// ServiceRating validates a 0-5 visit rating.
func (v *Validator) ServiceRating(rating float64) {
	v.Range("service_rating", rating, MinRating, MaxRating)
}

// Password validates password requirements for account operations.
func (v *Validator) Password(password string) {
	v.Check(len(password) >= MinPasswordLength, "password", "is too short")
	v.Check(len(password) <= MaxPasswordLength, "password", "is too long")
}
