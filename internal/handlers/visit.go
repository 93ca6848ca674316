package handlers

import (
	"context"
	"errors"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/services/trip"
	"breadroute/internal/services/visit"
	"breadroute/internal/utils/response"
	"breadroute/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type VisitHandler struct {
	visitService visit.Service
}

func NewVisitHandler(visitService visit.Service) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
	}
}

func (h *VisitHandler) Create(c *fiber.Ctx) error {
	var input struct {
		TripID               uint       `json:"trip_id" validate:"required"`
		StoreID              uint       `json:"store_id" validate:"required"`
		PlannedArrivalTime   *time.Time `json:"planned_arrival_time"`
		PlannedDepartureTime *time.Time `json:"planned_departure_time"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	v, err := h.visitService.Create(c.Context(), visit.CreateRequest{
		TripID:               input.TripID,
		StoreID:              input.StoreID,
		PlannedArrivalTime:   input.PlannedArrivalTime,
		PlannedDepartureTime: input.PlannedDepartureTime,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Created(c, "Visit added to trip", v)
}

func (h *VisitHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid visit id")
	}

	detail, err := h.visitService.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Visit retrieved", detail)
}

func (h *VisitHandler) ListByTrip(c *fiber.Ctx) error {
	tripID, err := parseID(c, "tripId")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	visits, err := h.visitService.ListByTrip(c.Context(), tripID)
	if err != nil {
		return response.ServerError(c, "Failed to list visits")
	}
	return response.Success(c, "Trip visits", visits)
}

func (h *VisitHandler) Start(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid visit id")
	}

	var input struct {
		Location *trip.GPSPoint `json:"location"`
	}
	_ = c.BodyParser(&input)

	v, err := h.visitService.Start(c.Context(), id, claims.UserID, input.Location)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Visit started", v)
}

func (h *VisitHandler) Complete(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid visit id")
	}

	var input struct {
		DepartureLocation *trip.GPSPoint `json:"departure_location"`
		OrderID           *uint          `json:"order_id"`
		OrderValue        float64        `json:"order_value" validate:"gte=0"`
		PaymentCollected  float64        `json:"payment_collected" validate:"gte=0"`
		Currency          string         `json:"currency" validate:"required,oneof=EUR SYP"`
		PaymentMethod     string         `json:"payment_method" validate:"omitempty,oneof=cash bank_transfer check"`
		ServiceRating     float64        `json:"service_rating" validate:"omitempty,gte=1,lte=5"`
		StoreSatisfaction string         `json:"store_satisfaction" validate:"omitempty,oneof=very_satisfied satisfied neutral dissatisfied very_dissatisfied"`
		PhotosTaken       int            `json:"photos_taken" validate:"gte=0"`
		SignatureImageURL string         `json:"signature_image_url"`
		ReceiptImageURL   string         `json:"receipt_image_url"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	v, err := h.visitService.Complete(c.Context(), id, claims.UserID, visit.CompleteRequest{
		DepartureLocation: input.DepartureLocation,
		OrderID:           input.OrderID,
		OrderValue:        input.OrderValue,
		PaymentCollected:  input.PaymentCollected,
		Currency:          input.Currency,
		PaymentMethod:     input.PaymentMethod,
		ServiceRating:     input.ServiceRating,
		StoreSatisfaction: input.StoreSatisfaction,
		PhotosTaken:       input.PhotosTaken,
		SignatureImageURL: input.SignatureImageURL,
		ReceiptImageURL:   input.ReceiptImageURL,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Visit completed", v)
}

func (h *VisitHandler) Cancel(c *fiber.Ctx) error {
	return h.reasonAction(c, h.visitService.Cancel, "Visit cancelled")
}

func (h *VisitHandler) Fail(c *fiber.Ctx) error {
	return h.reasonAction(c, h.visitService.Fail, "Visit marked failed")
}

func (h *VisitHandler) AddProblem(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid visit id")
	}

	var input struct {
		ProblemType string `json:"problem_type" validate:"required"`
		Description string `json:"description" validate:"required,min=3"`
		Severity    string `json:"severity" validate:"required,oneof=low medium high critical"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	v, err := h.visitService.AddProblem(c.Context(), id, claims.UserID, input.ProblemType, input.Description, input.Severity)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Created(c, "Problem reported", v)
}

func (h *VisitHandler) AddDeliveredItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid visit id")
	}

	var input struct {
		ProductName  string  `json:"product_name" validate:"required"`
		Quantity     float64 `json:"quantity" validate:"required,gt=0"`
		Unit         string  `json:"unit"`
		UnitPriceEUR float64 `json:"unit_price_eur" validate:"gte=0"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	item := models.DeliveredItem{
		VisitID:      id,
		ProductName:  input.ProductName,
		Quantity:     input.Quantity,
		Unit:         input.Unit,
		UnitPriceEUR: input.UnitPriceEUR,
	}
	if err := h.visitService.AddDeliveredItem(c.Context(), id, item); err != nil {
		return h.mapError(c, err)
	}
	return response.Created(c, "Delivered item recorded", item)
}

func (h *VisitHandler) reasonAction(c *fiber.Ctx, fn func(ctx context.Context, id, actorID uint, reason string) (*models.Visit, error), message string) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid visit id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&input)

	v, err := fn(c.Context(), id, claims.UserID, input.Reason)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, message, v)
}

func (h *VisitHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, visit.ErrVisitNotFound):
		return response.NotFound(c, "Visit not found")
	case errors.Is(err, visit.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, visit.ErrInvalidSeverity):
		return response.BadRequest(c, err.Error())
	default:
		return response.BadRequest(c, err.Error())
	}
}
