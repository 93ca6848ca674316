package repositories

import (
	"errors"
	"time"

	"breadroute/internal/models"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrDuplicatePayment   = errors.New("payment number already exists")
	ErrInvalidPaymentData = errors.New("invalid payment data")
)

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	StoreID            *uint
	DistributorID      *uint
	Status             string
	VerificationStatus string
	From               *time.Time
	To                 *time.Time
}

// PaymentRepository defines the interface for payment-related database operations
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByNumber(number string) (*models.Payment, error)
	List(filter PaymentFilter, limit, offset int) ([]models.Payment, int64, error)
	Update(payment *models.Payment) error

	// Pending payments whose payment date is older than the cutoff
	ListOverdue(cutoff time.Time) ([]models.Payment, error)

	CreateStatusChange(change *models.StatusChange) error
	ListStatusChanges(paymentID uint) ([]models.StatusChange, error)

	// Analytics
	CollectedTotals(from, to time.Time) (eur float64, syp float64, err error)
}
