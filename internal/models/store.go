package models

import (
	"time"

	"gorm.io/gorm"
)

// Store statuses
const (
	StoreStatusActive          = "active"
	StoreStatusInactive        = "inactive"
	StoreStatusSuspended       = "suspended"
	StoreStatusPendingApproval = "pending_approval"
)

// Store types
const (
	StoreTypeRetail      = "retail"
	StoreTypeWholesale   = "wholesale"
	StoreTypeRestaurant  = "restaurant"
	StoreTypeSupermarket = "supermarket"
	StoreTypeHotel       = "hotel"
)

// Store represents a customer store served by the distribution fleet.
// Financial totals are kept per currency; the running balance and credit
// limit are tracked in EUR equivalents.
type Store struct {
	gorm.Model
	Name         string `gorm:"not null;index"`
	OwnerName    string `gorm:"not null"`
	Phone        string
	Address      string
	StoreType    string `gorm:"default:'retail'"`
	Category     string
	SizeCategory string

	CreditLimitEUR    float64 `gorm:"default:0"`
	CurrentBalanceEUR float64 `gorm:"default:0"`
	TotalPurchasesEUR float64 `gorm:"default:0"`
	TotalPurchasesSYP float64 `gorm:"default:0"`
	TotalPaymentsEUR  float64 `gorm:"default:0"`
	TotalPaymentsSYP  float64 `gorm:"default:0"`
	CommissionRate    float64 `gorm:"default:0"`
	PaymentTerms      string  `gorm:"default:'cash_on_delivery'"`

	TotalOrders       int     `gorm:"default:0"`
	CompletedOrders   int     `gorm:"default:0"`
	CancelledOrders   int     `gorm:"default:0"`
	AverageOrderValue float64 `gorm:"default:0"`
	PerformanceRating float64 `gorm:"default:0"`

	Status                string `gorm:"default:'pending_approval';index"`
	AssignedDistributorID *uint  `gorm:"index"`

	Latitude  float64
	Longitude float64

	LastOrderDate   *time.Time
	LastPaymentDate *time.Time
}
