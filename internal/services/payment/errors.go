package payment

import "errors"

// Service errors
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInvalidAmount     = errors.New("invalid payment amount")
	ErrInvalidCurrency   = errors.New("invalid currency")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCommissionPaid    = errors.New("commission already paid")
	ErrNotVerified       = errors.New("payment is not verified")
	ErrMissingVerifier   = errors.New("verifier is required")
)
