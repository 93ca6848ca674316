package trip

import "errors"

// Service errors
var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyRoute        = errors.New("route plan is empty")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNotInProgress     = errors.New("trip is not in progress")
)
