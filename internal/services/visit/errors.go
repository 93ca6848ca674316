package visit

import "errors"

// Service errors
var (
	ErrVisitNotFound     = errors.New("visit not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidSeverity   = errors.New("invalid problem severity")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidCurrency   = errors.New("invalid currency")
	ErrInvalidRating     = errors.New("service rating must be between 0 and 5")
)
