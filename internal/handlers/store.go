package handlers

import (
	"errors"
	"strconv"

	"breadroute/internal/models"
	"breadroute/internal/services/store"
	"breadroute/internal/utils/pagination"
	"breadroute/internal/utils/response"
	"breadroute/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type StoreHandler struct {
	storeService store.Service
}

func NewStoreHandler(storeService store.Service) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var input struct {
		Name           string  `json:"name" validate:"required"`
		OwnerName      string  `json:"owner_name" validate:"required"`
		Phone          string  `json:"phone"`
		Address        string  `json:"address"`
		StoreType      string  `json:"store_type"`
		Category       string  `json:"category"`
		SizeCategory   string  `json:"size_category"`
		CreditLimitEUR float64 `json:"credit_limit_eur" validate:"gte=0"`
		CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=100"`
		PaymentTerms   string  `json:"payment_terms"`
		Latitude       float64 `json:"latitude"`
		Longitude      float64 `json:"longitude"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	st := &models.Store{
		Name:           input.Name,
		OwnerName:      input.OwnerName,
		Phone:          input.Phone,
		Address:        input.Address,
		StoreType:      input.StoreType,
		Category:       input.Category,
		SizeCategory:   input.SizeCategory,
		CreditLimitEUR: input.CreditLimitEUR,
		CommissionRate: input.CommissionRate,
		PaymentTerms:   input.PaymentTerms,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
	}

	v := validation.New()
	v.Store(st)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	if err := h.storeService.CreateStore(c.Context(), st); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Created(c, "Store created", st)
}

func (h *StoreHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid store id")
	}

	st, err := h.storeService.GetStore(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return response.NotFound(c, "Store not found")
		}
		return response.ServerError(c, "Failed to get store")
	}
	return response.Success(c, "Store retrieved", st)
}

func (h *StoreHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	stores, total, err := h.storeService.ListStores(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "Failed to list stores")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, stores))
}

func (h *StoreHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid store id")
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=active inactive suspended pending_approval"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	if err := h.storeService.SetStatus(c.Context(), id, input.Status); err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return response.NotFound(c, "Store not found")
		}
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "Store status updated", nil)
}

func (h *StoreHandler) AssignDistributor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid store id")
	}

	var input struct {
		DistributorID uint `json:"distributor_id" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	if err := h.storeService.AssignDistributor(c.Context(), id, input.DistributorID); err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return response.NotFound(c, "Store not found")
		}
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "Distributor assigned", nil)
}

func (h *StoreHandler) RecordOrder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid store id")
	}

	var input struct {
		Value     float64 `json:"value" validate:"gte=0"`
		Currency  string  `json:"currency" validate:"required,oneof=EUR SYP"`
		Completed bool    `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	st, err := h.storeService.RecordOrder(c.Context(), id, input.Value, input.Currency, input.Completed)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return response.NotFound(c, "Store not found")
		}
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "Order recorded", st)
}

func (h *StoreHandler) CheckCreditLimit(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid store id")
	}

	value, err := strconv.ParseFloat(c.Query("value", "0"), 64)
	if err != nil {
		return response.BadRequest(c, "Invalid value")
	}
	currency := c.Query("currency", models.CurrencyEUR)

	within, err := h.storeService.WithinCreditLimit(c.Context(), id, value, currency)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return response.NotFound(c, "Store not found")
		}
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "Credit limit checked", fiber.Map{
		"within_credit_limit": within,
	})
}

func (h *StoreHandler) FinancialSummary(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid store id")
	}

	summary, err := h.storeService.GetFinancialSummary(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return response.NotFound(c, "Store not found")
		}
		return response.ServerError(c, "Failed to build summary")
	}
	return response.Success(c, "Financial summary", summary)
}

func (h *StoreHandler) PerformanceStats(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid store id")
	}

	stats, err := h.storeService.GetPerformanceStats(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return response.NotFound(c, "Store not found")
		}
		return response.ServerError(c, "Failed to build stats")
	}
	return response.Success(c, "Performance stats", stats)
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
