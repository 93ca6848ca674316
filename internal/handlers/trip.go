package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/services/trip"
	"breadroute/internal/utils/pagination"
	"breadroute/internal/utils/response"
	"breadroute/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TripHandler struct {
	tripService trip.Service
}

func NewTripHandler(tripService trip.Service) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

func (h *TripHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		TripDate         time.Time              `json:"trip_date" validate:"required"`
		DistributorID    uint                   `json:"distributor_id" validate:"required"`
		RoutePlan        []uint                 `json:"route_plan" validate:"required,min=1"`
		VehicleInfo      map[string]interface{} `json:"vehicle_info"`
		PlannedStartTime *time.Time             `json:"planned_start_time"`
		PlannedEndTime   *time.Time             `json:"planned_end_time"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	v := validation.New()
	v.RoutePlan(input.RoutePlan)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	t, err := h.tripService.Create(c.Context(), trip.CreateRequest{
		TripDate:         input.TripDate,
		DistributorID:    input.DistributorID,
		RoutePlan:        input.RoutePlan,
		VehicleInfo:      input.VehicleInfo,
		PlannedStartTime: input.PlannedStartTime,
		PlannedEndTime:   input.PlannedEndTime,
		CreatedBy:        claims.UserID,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Created(c, "Trip planned", t)
}

func (h *TripHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	t, err := h.tripService.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Trip retrieved", t)
}

func (h *TripHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := pagination.ParseFromRequest(c)

	distributorID := claims.UserID
	if claims.Role != models.RoleDistributor {
		if id, err := strconv.ParseUint(c.Query("distributor_id"), 10, 64); err == nil && id > 0 {
			distributorID = uint(id)
		}
	}

	trips, total, err := h.tripService.ListByDistributor(c.Context(), distributorID, p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "Failed to list trips")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, trips))
}

func (h *TripHandler) ListByDate(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
	}

	trips, err := h.tripService.ListByDate(c.Context(), date)
	if err != nil {
		return response.ServerError(c, "Failed to list trips")
	}
	return response.Success(c, "Trips for date", trips)
}

func (h *TripHandler) Start(c *fiber.Ctx) error {
	return h.locationAction(c, h.tripService.Start, "Trip started")
}

func (h *TripHandler) Complete(c *fiber.Ctx) error {
	return h.locationAction(c, h.tripService.Complete, "Trip completed")
}

func (h *TripHandler) Cancel(c *fiber.Ctx) error {
	return h.reasonAction(c, h.tripService.Cancel, "Trip cancelled")
}

func (h *TripHandler) Suspend(c *fiber.Ctx) error {
	return h.reasonAction(c, h.tripService.Suspend, "Trip suspended")
}

func (h *TripHandler) Resume(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	t, err := h.tripService.Resume(c.Context(), id, claims.UserID)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Trip resumed", t)
}

func (h *TripHandler) AddProblem(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	var input struct {
		Description string `json:"description" validate:"required,min=3"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	problem, err := h.tripService.AddProblem(c.Context(), id, claims.UserID, input.Description)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Created(c, "Problem reported", problem)
}

func (h *TripHandler) UpdateProgress(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	var input struct {
		CompletedStores int     `json:"completed_stores" validate:"gte=0"`
		CollectedEUR    float64 `json:"collected_eur" validate:"gte=0"`
		CollectedSYP    float64 `json:"collected_syp" validate:"gte=0"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	t, err := h.tripService.UpdateProgress(c.Context(), id, input.CompletedStores, input.CollectedEUR, input.CollectedSYP)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Trip progress updated", t)
}

func (h *TripHandler) RecordExpenses(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	var input trip.Expenses
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	t, err := h.tripService.RecordExpenses(c.Context(), id, input)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Expenses recorded", t)
}

func (h *TripHandler) Recalculate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	t, err := h.tripService.RecalculateAggregates(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Trip aggregates recalculated", t)
}

func (h *TripHandler) Summary(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	summary, err := h.tripService.GetSummary(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Trip summary", summary)
}

func (h *TripHandler) locationAction(c *fiber.Ctx, fn func(ctx context.Context, id, actorID uint, location *trip.GPSPoint) (*models.Trip, error), message string) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	var input struct {
		Location *trip.GPSPoint `json:"location"`
	}
	_ = c.BodyParser(&input)

	t, err := fn(c.Context(), id, claims.UserID, input.Location)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, message, t)
}

func (h *TripHandler) reasonAction(c *fiber.Ctx, fn func(ctx context.Context, id, actorID uint, reason string) (*models.Trip, error), message string) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&input)

	t, err := fn(c.Context(), id, claims.UserID, input.Reason)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, message, t)
}

func (h *TripHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, trip.ErrTripNotFound):
		return response.NotFound(c, "Trip not found")
	case errors.Is(err, trip.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	default:
		return response.BadRequest(c, err.Error())
	}
}
