package validation

const (
	// Amount limits (EUR equivalents)
	MinPaymentAmount = 0.01
	MaxPaymentAmount = 100000.00

	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxDescriptionLength = 500
	MaxReasonLength      = 500
	MaxNameLength        = 200

	// Route limits
	MaxRouteStops = 50

	// Ratings
	MinRating = 0
	MaxRating = 5
)
