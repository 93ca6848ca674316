package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip statuses
const (
	TripStatusPlanned    = "planned"
	TripStatusInProgress = "in_progress"
	TripStatusCompleted  = "completed"
	TripStatusCancelled  = "cancelled"
	TripStatusSuspended  = "suspended"
)

// Trip represents a distributor's work session covering an ordered route
// of store visits on a given day.
type Trip struct {
	gorm.Model
	TripNumber string    `gorm:"uniqueIndex;not null"`
	TripDate   time.Time `gorm:"not null;index"`

	DistributorID   uint   `gorm:"not null;index"`
	DistributorName string // denormalized for reporting
	VehicleInfo     JSON   `gorm:"type:jsonb"`
	RoutePlan       IDList `gorm:"type:jsonb"` // ordered store IDs

	PlannedStartTime *time.Time
	PlannedEndTime   *time.Time
	ActualStartTime  *time.Time
	ActualEndTime    *time.Time

	TotalOrders     int `gorm:"default:0"`
	TotalStores     int `gorm:"default:0"`
	CompletedStores int `gorm:"default:0"`

	TotalAmountEUR     float64 `gorm:"default:0"`
	TotalAmountSYP     float64 `gorm:"default:0"`
	CollectedAmountEUR float64 `gorm:"default:0"`
	CollectedAmountSYP float64 `gorm:"default:0"`

	FuelCostEUR       float64 `gorm:"default:0"`
	OtherExpensesEUR  float64 `gorm:"default:0"`
	DistanceCoveredKM float64 `gorm:"default:0"`

	Status         string  `gorm:"default:'planned';index"`
	CompletionRate float64 `gorm:"default:0"`
	CollectionRate float64 `gorm:"default:0"`

	StartLatitude  float64
	StartLongitude float64
	EndLatitude    float64
	EndLongitude   float64

	CreatedBy uint
}

// TripProblem is one problem reported during a trip. Kept as child rows
// rather than a growing JSON blob so problems can be queried on their own.
type TripProblem struct {
	gorm.Model
	TripID      uint   `gorm:"not null;index"`
	Description string `gorm:"not null"`
	ReportedBy  uint
	ReportedAt  time.Time
}

// StatusChange is an audit record of one status transition on any of the
// distribution entities. Replaces note-field string concatenation.
type StatusChange struct {
	gorm.Model
	EntityType string `gorm:"not null;index:idx_status_change_entity"` // "payment", "trip", "visit"
	EntityID   uint   `gorm:"not null;index:idx_status_change_entity"`
	FromStatus string
	ToStatus   string `gorm:"not null"`
	Reason     string
	ActorID    uint
}

// Status change entity types
const (
	EntityPayment = "payment"
	EntityTrip    = "trip"
	EntityVisit   = "visit"
)
