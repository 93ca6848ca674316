package payment

import (
	"time"

	"breadroute/internal/models"
)

// CreateRequest carries everything needed to record a collected payment.
type CreateRequest struct {
	StoreID       uint
	DistributorID *uint
	OrderID       *uint
	Amount        float64
	Currency      string
	PaymentMethod string
	PaymentType   string
	PaymentDate   time.Time
	Metadata      map[string]interface{}
	CreatedBy     uint
}

// ListFilter narrows payment listings at the service layer.
type ListFilter struct {
	StoreID            *uint
	DistributorID      *uint
	Status             string
	VerificationStatus string
	From               *time.Time
	To                 *time.Time
}

// Detail bundles a payment with its derived figures for API responses.
type Detail struct {
	Payment     *models.Payment `json:"payment"`
	TotalEUR    float64         `json:"total_eur"`
	TotalSYP    float64         `json:"total_syp"`
	Overdue     bool            `json:"overdue"`
	DaysOverdue int             `json:"days_overdue"`
}
