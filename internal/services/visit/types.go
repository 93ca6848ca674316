package visit

import (
	"time"

	"breadroute/internal/models"
	"breadroute/internal/services/trip"
)

// CreateRequest adds an unplanned stop to an existing trip.
type CreateRequest struct {
	TripID             uint
	StoreID            uint
	PlannedArrivalTime *time.Time
	PlannedDepartureTime *time.Time
}

// CompleteRequest carries the outcome of a finished visit. Amounts are
// given in one currency; the other side is derived at completion time.
type CompleteRequest struct {
	DepartureLocation *trip.GPSPoint
	OrderID           *uint
	OrderValue        float64
	PaymentCollected  float64
	Currency          string
	PaymentMethod     string
	ServiceRating     float64
	StoreSatisfaction string
	PhotosTaken       int
	SignatureImageURL string
	ReceiptImageURL   string
}

// Detail bundles a visit with its children and derived figures.
type Detail struct {
	Visit           *models.Visit          `json:"visit"`
	Problems        []models.VisitProblem  `json:"problems"`
	DeliveredItems  []models.DeliveredItem `json:"delivered_items"`
	TotalValueEUR   float64                `json:"total_value_eur"`
	TotalPaymentEUR float64                `json:"total_payment_eur"`
	PaymentRate     float64                `json:"payment_rate"`
	Delayed         bool                   `json:"delayed"`
	DelayMinutes    int                    `json:"delay_minutes"`
}
