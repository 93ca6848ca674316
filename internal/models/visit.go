package models

import (
	"time"

	"gorm.io/gorm"
)

// Visit statuses
const (
	VisitStatusPlanned    = "planned"
	VisitStatusInProgress = "in_progress"
	VisitStatusCompleted  = "completed"
	VisitStatusCancelled  = "cancelled"
	VisitStatusFailed     = "failed"
)

// Problem severities, lowest to highest
const (
	SeverityNone     = "none"
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Store satisfaction levels
const (
	SatisfactionVerySatisfied    = "very_satisfied"
	SatisfactionSatisfied        = "satisfied"
	SatisfactionNeutral          = "neutral"
	SatisfactionDissatisfied     = "dissatisfied"
	SatisfactionVeryDissatisfied = "very_dissatisfied"
)

// Visit represents one stop at a store within a trip.
type Visit struct {
	gorm.Model
	TripID     uint   `gorm:"not null;index"`
	StoreID    uint   `gorm:"not null;index"`
	StoreName  string // denormalized for reporting
	VisitOrder int    `gorm:"not null"` // 1-based position in the route

	PlannedArrivalTime   *time.Time
	ActualArrivalTime    *time.Time
	PlannedDepartureTime *time.Time
	ActualDepartureTime  *time.Time

	Status string `gorm:"default:'planned';index"`

	ArrivalLatitude    float64
	ArrivalLongitude   float64
	DepartureLatitude  float64
	DepartureLongitude float64

	OrderID *uint

	// One currency side of the amounts below is authoritative per the
	// Currency field; the other is a mirror derived at completion time.
	OrderValueEUR       float64 `gorm:"default:0"`
	OrderValueSYP       float64 `gorm:"default:0"`
	PaymentCollectedEUR float64 `gorm:"default:0"`
	PaymentCollectedSYP float64 `gorm:"default:0"`
	Currency            string  `gorm:"default:'EUR'"`
	PaymentMethod       string

	VisitDurationMinutes int `gorm:"default:0"`

	// Derived max severity over this visit's problems
	ProblemSeverity string `gorm:"default:'none'"`

	PhotosTaken       int `gorm:"default:0"`
	SignatureImageURL string
	ReceiptImageURL   string

	ServiceRating     float64 `gorm:"default:0"` // 0-5
	StoreSatisfaction string
}

// VisitProblem is one problem observed during a visit, tagged with a
// severity used to derive the visit's overall problem severity.
type VisitProblem struct {
	gorm.Model
	VisitID     uint   `gorm:"not null;index"`
	Type        string `gorm:"not null"`
	Description string
	Severity    string `gorm:"default:'low'"`
	ReportedBy  uint
}

// DeliveredItem is one line item delivered during a visit.
type DeliveredItem struct {
	gorm.Model
	VisitID      uint   `gorm:"not null;index"`
	ProductName  string `gorm:"not null"`
	Quantity     float64
	Unit         string
	UnitPriceEUR float64
}
