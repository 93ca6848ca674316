package handlers

import (
	"errors"
	"strconv"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/services/payment"
	"breadroute/internal/utils/pagination"
	"breadroute/internal/utils/response"
	"breadroute/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		StoreID       uint                   `json:"store_id" validate:"required"`
		DistributorID *uint                  `json:"distributor_id"`
		OrderID       *uint                  `json:"order_id"`
		Amount        float64                `json:"amount" validate:"required,gt=0"`
		Currency      string                 `json:"currency" validate:"required,oneof=EUR SYP"`
		PaymentMethod string                 `json:"payment_method" validate:"omitempty,oneof=cash bank_transfer check"`
		PaymentType   string                 `json:"payment_type" validate:"omitempty,oneof=collection advance settlement"`
		PaymentDate   *time.Time             `json:"payment_date"`
		Metadata      map[string]interface{} `json:"metadata"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	req := payment.CreateRequest{
		StoreID:       input.StoreID,
		DistributorID: input.DistributorID,
		OrderID:       input.OrderID,
		Amount:        input.Amount,
		Currency:      input.Currency,
		PaymentMethod: input.PaymentMethod,
		PaymentType:   input.PaymentType,
		Metadata:      input.Metadata,
		CreatedBy:     claims.UserID,
	}
	if input.PaymentDate != nil {
		req.PaymentDate = *input.PaymentDate
	}
	// Distributors record their own collections.
	if claims.Role == models.RoleDistributor && req.DistributorID == nil {
		req.DistributorID = &claims.UserID
	}

	p, err := h.paymentService.Create(c.Context(), req)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Created(c, "Payment recorded", p)
}

func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payment id")
	}

	detail, err := h.paymentService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.ServerError(c, "Failed to get payment")
	}
	return response.Success(c, "Payment retrieved", detail)
}

func (h *PaymentHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	filter := payment.ListFilter{
		Status:             c.Query("status"),
		VerificationStatus: c.Query("verification_status"),
	}
	if storeID, err := strconv.ParseUint(c.Query("store_id"), 10, 64); err == nil && storeID > 0 {
		id := uint(storeID)
		filter.StoreID = &id
	}
	if distID, err := strconv.ParseUint(c.Query("distributor_id"), 10, 64); err == nil && distID > 0 {
		id := uint(distID)
		filter.DistributorID = &id
	}

	payments, total, err := h.paymentService.List(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "Failed to list payments")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, payments))
}

func (h *PaymentHandler) ListOverdue(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))

	payments, err := h.paymentService.ListOverdue(c.Context(), days)
	if err != nil {
		return response.ServerError(c, "Failed to list overdue payments")
	}
	return response.Success(c, "Overdue payments", payments)
}

func (h *PaymentHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payment id")
	}

	changes, err := h.paymentService.History(c.Context(), id)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.ServerError(c, "Failed to get payment history")
	}
	return response.Success(c, "Payment history", changes)
}

func (h *PaymentHandler) Complete(c *fiber.Ctx) error {
	return h.statusAction(c, func(id, actorID uint, _ string) (*models.Payment, error) {
		return h.paymentService.Complete(c.Context(), id, actorID)
	}, "Payment completed")
}

func (h *PaymentHandler) Cancel(c *fiber.Ctx) error {
	return h.statusAction(c, func(id, actorID uint, reason string) (*models.Payment, error) {
		return h.paymentService.Cancel(c.Context(), id, actorID, reason)
	}, "Payment cancelled")
}

func (h *PaymentHandler) Fail(c *fiber.Ctx) error {
	return h.statusAction(c, func(id, actorID uint, reason string) (*models.Payment, error) {
		return h.paymentService.Fail(c.Context(), id, actorID, reason)
	}, "Payment marked failed")
}

func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	return h.statusAction(c, func(id, actorID uint, reason string) (*models.Payment, error) {
		return h.paymentService.Refund(c.Context(), id, actorID, reason)
	}, "Payment refunded")
}

func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	return h.statusAction(c, func(id, actorID uint, notes string) (*models.Payment, error) {
		return h.paymentService.Verify(c.Context(), id, actorID, notes)
	}, "Payment verified")
}

func (h *PaymentHandler) Reject(c *fiber.Ctx) error {
	return h.statusAction(c, func(id, actorID uint, reason string) (*models.Payment, error) {
		return h.paymentService.Reject(c.Context(), id, actorID, reason)
	}, "Payment rejected")
}

func (h *PaymentHandler) MarkUnderReview(c *fiber.Ctx) error {
	return h.statusAction(c, func(id, actorID uint, _ string) (*models.Payment, error) {
		return h.paymentService.MarkUnderReview(c.Context(), id, actorID)
	}, "Payment under review")
}

func (h *PaymentHandler) PayCommission(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payment id")
	}

	p, err := h.paymentService.PayCommission(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Commission paid", p)
}

func (h *PaymentHandler) SetAmount(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payment id")
	}

	var input struct {
		Amount   float64 `json:"amount" validate:"required,gt=0"`
		Currency string  `json:"currency" validate:"required,oneof=EUR SYP"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	p, err := h.paymentService.SetAmount(c.Context(), id, input.Amount, input.Currency)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Payment amount updated", p)
}

func (h *PaymentHandler) statusAction(c *fiber.Ctx, fn func(id, actorID uint, reason string) (*models.Payment, error), message string) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payment id")
	}

	var input struct {
		Reason string `json:"reason"`
		Notes  string `json:"notes"`
	}
	_ = c.BodyParser(&input)
	reason := input.Reason
	if reason == "" {
		reason = input.Notes
	}

	p, err := fn(id, claims.UserID, reason)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, message, p)
}

func (h *PaymentHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, payment.ErrPaymentNotFound):
		return response.NotFound(c, "Payment not found")
	case errors.Is(err, payment.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, payment.ErrCommissionPaid), errors.Is(err, payment.ErrNotVerified):
		return response.Conflict(c, err.Error())
	default:
		return response.BadRequest(c, err.Error())
	}
}
