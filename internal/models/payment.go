package models

import (
	"time"

	"gorm.io/gorm"
)

// Supported currencies
const (
	CurrencyEUR = "EUR"
	CurrencySYP = "SYP"
)

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment verification statuses
const (
	VerificationPending     = "pending"
	VerificationVerified    = "verified"
	VerificationRejected    = "rejected"
	VerificationUnderReview = "under_review"
)

// Payment methods
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheck        = "check"
)

// Payment types
const (
	PaymentTypeCollection = "collection"
	PaymentTypeAdvance    = "advance"
	PaymentTypeSettlement = "settlement"
)

// Payment represents a single collected payment. One currency side is
// authoritative per the Currency field; the other is derived through the
// exchange rate recorded at creation time.
type Payment struct {
	gorm.Model
	PaymentNumber string    `gorm:"uniqueIndex;not null"`
	PaymentDate   time.Time `gorm:"not null;index"`

	StoreID       uint  `gorm:"not null;index"`
	DistributorID *uint `gorm:"index"`
	OrderID       *uint

	AmountEUR    float64 `gorm:"default:0"`
	AmountSYP    float64 `gorm:"default:0"`
	Currency     string  `gorm:"default:'EUR'"`
	ExchangeRate float64 `gorm:"default:0"`

	PaymentMethod string `gorm:"default:'cash'"`
	PaymentType   string `gorm:"default:'collection'"`
	Status        string `gorm:"default:'pending';index"`

	VerificationStatus string `gorm:"default:'pending';index"`
	VerifiedBy         *uint
	VerifiedAt         *time.Time
	VerificationNotes  string

	CommissionRate   float64 `gorm:"default:0"`
	CommissionAmount float64 `gorm:"default:0"`
	CommissionPaid   bool    `gorm:"default:false"`
	CommissionPaidAt *time.Time

	CompletedAt *time.Time
	Metadata    JSON `gorm:"type:jsonb"`
	CreatedBy   uint
}
