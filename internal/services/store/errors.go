package store

import "errors"

// Service errors
var (
	ErrStoreNotFound      = errors.New("store not found")
	ErrStoreInactive      = errors.New("store is not active")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCurrency    = errors.New("invalid currency")
	ErrInvalidStoreStatus = errors.New("invalid store status")
)
