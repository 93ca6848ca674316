// Package currency centralizes EUR/SYP conversion. Every money-bearing
// aggregate needs a single EUR-equivalent figure for rate computations;
// keeping one conversion policy here avoids drift between call sites.
package currency

import (
	"math"

	"breadroute/internal/models"
)

// DefaultSYPPerEUR is the fallback exchange rate (SYP per one EUR).
const DefaultSYPPerEUR = 15000.0

// RateProvider supplies the exchange rate between two currencies.
type RateProvider interface {
	Rate(from, to string) (float64, error)
}

// FixedProvider returns a constant SYP-per-EUR rate.
type FixedProvider struct {
	sypPerEUR float64
}

// NewFixedProvider creates a provider with the given SYP-per-EUR rate.
// A non-positive rate falls back to DefaultSYPPerEUR.
func NewFixedProvider(sypPerEUR float64) *FixedProvider {
	if sypPerEUR <= 0 {
		sypPerEUR = DefaultSYPPerEUR
	}
	return &FixedProvider{sypPerEUR: sypPerEUR}
}

func (p *FixedProvider) Rate(from, to string) (float64, error) {
	switch {
	case from == models.CurrencySYP && to == models.CurrencyEUR:
		return 1 / p.sypPerEUR, nil
	case from == models.CurrencyEUR && to == models.CurrencySYP:
		return p.sypPerEUR, nil
	default:
		return 1, nil
	}
}

// Converter folds a dual-currency amount into a single currency using an
// injected rate provider. Methods never fail: NaN or infinite inputs are
// treated as 0 and provider errors fall back to the default rate.
type Converter struct {
	provider RateProvider
}

func NewConverter(provider RateProvider) Converter {
	if provider == nil {
		provider = NewFixedProvider(DefaultSYPPerEUR)
	}
	return Converter{provider: provider}
}

// ToEUR returns amountEUR plus amountSYP converted to EUR.
func (c Converter) ToEUR(amountEUR, amountSYP float64) float64 {
	return sanitize(amountEUR) + sanitize(amountSYP)/c.sypPerEUR()
}

// ToSYP returns amountSYP plus amountEUR converted to SYP.
func (c Converter) ToSYP(amountEUR, amountSYP float64) float64 {
	return sanitize(amountSYP) + sanitize(amountEUR)*c.sypPerEUR()
}

// SYPPerEUR exposes the current SYP-per-EUR rate, for recording on
// payments at creation time.
func (c Converter) SYPPerEUR() float64 {
	return c.sypPerEUR()
}

func (c Converter) sypPerEUR() float64 {
	rate, err := c.provider.Rate(models.CurrencyEUR, models.CurrencySYP)
	if err != nil || rate <= 0 {
		return DefaultSYPPerEUR
	}
	return rate
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
