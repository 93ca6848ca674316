package trip

import (
	"time"

	"breadroute/internal/models"
)

// CreateRequest describes a trip to be planned.
type CreateRequest struct {
	TripNumber       string // generated when empty
	TripDate         time.Time
	DistributorID    uint
	RoutePlan        []uint // ordered store IDs
	VehicleInfo      map[string]interface{}
	PlannedStartTime *time.Time
	PlannedEndTime   *time.Time
	CreatedBy        uint
}

// GPSPoint is a latitude/longitude pair reported by the driver app.
type GPSPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Expenses are the costs reported at the end of a trip.
type Expenses struct {
	FuelCostEUR       float64 `json:"fuel_cost_eur"`
	OtherExpensesEUR  float64 `json:"other_expenses_eur"`
	DistanceCoveredKM float64 `json:"distance_covered_km"`
}

// Summary bundles a trip with its derived figures and children.
type Summary struct {
	Trip            *models.Trip         `json:"trip"`
	DurationMinutes *int                 `json:"duration_minutes"`
	Efficiency      *float64             `json:"minutes_per_store"`
	Visits          []models.Visit       `json:"visits"`
	Problems        []models.TripProblem `json:"problems"`
}
