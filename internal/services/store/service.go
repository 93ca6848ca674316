package store

import (
	"context"
	"fmt"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/repositories"
	"breadroute/internal/services/currency"
)

// Service defines the store ledger operations.
type Service interface {
	CreateStore(ctx context.Context, s *models.Store) error
	GetStore(ctx context.Context, id uint) (*models.Store, error)
	ListStores(ctx context.Context, limit, offset int) ([]models.Store, int64, error)
	UpdateStore(ctx context.Context, s *models.Store) error
	SetStatus(ctx context.Context, id uint, status string) error
	AssignDistributor(ctx context.Context, storeID, distributorID uint) error

	RecordOrder(ctx context.Context, storeID uint, value float64, curr string, completed bool) (*models.Store, error)
	RecordPayment(ctx context.Context, storeID uint, amount float64, curr string) (*models.Store, error)
	WithinCreditLimit(ctx context.Context, storeID uint, value float64, curr string) (bool, error)

	GetFinancialSummary(ctx context.Context, storeID uint) (*FinancialSummary, error)
	GetPerformanceStats(ctx context.Context, storeID uint) (*PerformanceStats, error)
}

// Cache is the subset of the cache service the store service needs.
type Cache interface {
	GetStore(ctx context.Context, id uint) (*models.Store, error)
	CacheStore(ctx context.Context, store *models.Store) error
	InvalidateStore(ctx context.Context, id uint) error
}

type service struct {
	repo      repositories.StoreRepository
	cache     Cache
	converter currency.Converter
	now       func() time.Time
}

// NewService creates a new store service. Cache may be nil.
func NewService(repo repositories.StoreRepository, cache Cache, converter currency.Converter) Service {
	if repo == nil {
		panic("store repository is required")
	}
	return &service{
		repo:      repo,
		cache:     cache,
		converter: converter,
		now:       time.Now,
	}
}

func (s *service) CreateStore(ctx context.Context, st *models.Store) error {
	if st.Status == "" {
		st.Status = models.StoreStatusPendingApproval
	}
	if !validStatus(st.Status) {
		return ErrInvalidStoreStatus
	}
	Recompute(st, s.converter)
	if err := s.repo.Create(st); err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

func (s *service) GetStore(ctx context.Context, id uint) (*models.Store, error) {
	if s.cache != nil {
		if st, err := s.cache.GetStore(ctx, id); err == nil && st != nil {
			return st, nil
		}
	}

	st, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrStoreNotFound {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.CacheStore(ctx, st)
	}
	return st, nil
}

func (s *service) ListStores(ctx context.Context, limit, offset int) ([]models.Store, int64, error) {
	return s.repo.List(limit, offset)
}

func (s *service) UpdateStore(ctx context.Context, st *models.Store) error {
	if err := s.repo.Update(st); err != nil {
		return err
	}
	s.invalidate(ctx, st.ID)
	return nil
}

// SetStatus moves a store to a new lifecycle status. Stores are never hard
// deleted; deactivation and suspension happen here instead.
func (s *service) SetStatus(ctx context.Context, id uint, status string) error {
	if !validStatus(status) {
		return ErrInvalidStoreStatus
	}
	if err := s.repo.UpdateStatus(id, status); err != nil {
		if err == repositories.ErrStoreNotFound {
			return ErrStoreNotFound
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) AssignDistributor(ctx context.Context, storeID, distributorID uint) error {
	st, err := s.GetStore(ctx, storeID)
	if err != nil {
		return err
	}
	st.AssignedDistributorID = &distributorID
	return s.UpdateStore(ctx, st)
}

func (s *service) RecordOrder(ctx context.Context, storeID uint, value float64, curr string, completed bool) (*models.Store, error) {
	if value < 0 {
		return nil, ErrInvalidAmount
	}
	if !validCurrency(curr) {
		return nil, ErrInvalidCurrency
	}

	st, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	ApplyOrder(st, value, curr, completed, s.converter, s.now())

	if err := s.repo.Update(st); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	s.invalidate(ctx, storeID)
	return st, nil
}

func (s *service) RecordPayment(ctx context.Context, storeID uint, amount float64, curr string) (*models.Store, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !validCurrency(curr) {
		return nil, ErrInvalidCurrency
	}

	st, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	ApplyPayment(st, amount, curr, s.converter, s.now())

	if err := s.repo.Update(st); err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}
	s.invalidate(ctx, storeID)
	return st, nil
}

func (s *service) WithinCreditLimit(ctx context.Context, storeID uint, value float64, curr string) (bool, error) {
	if value < 0 {
		return false, ErrInvalidAmount
	}
	if !validCurrency(curr) {
		return false, ErrInvalidCurrency
	}

	st, err := s.GetStore(ctx, storeID)
	if err != nil {
		return false, err
	}
	return WithinCreditLimit(st, value, curr, s.converter), nil
}

func (s *service) GetFinancialSummary(ctx context.Context, storeID uint) (*FinancialSummary, error) {
	st, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	return &FinancialSummary{
		StoreID:           st.ID,
		CreditLimitEUR:    st.CreditLimitEUR,
		CurrentBalanceEUR: st.CurrentBalanceEUR,
		AvailableCredit:   st.CreditLimitEUR - st.CurrentBalanceEUR,
		TotalPurchasesEUR: st.TotalPurchasesEUR,
		TotalPurchasesSYP: st.TotalPurchasesSYP,
		TotalPaymentsEUR:  st.TotalPaymentsEUR,
		TotalPaymentsSYP:  st.TotalPaymentsSYP,
		PurchasesEURTotal: s.converter.ToEUR(st.TotalPurchasesEUR, st.TotalPurchasesSYP),
		PaymentsEURTotal:  s.converter.ToEUR(st.TotalPaymentsEUR, st.TotalPaymentsSYP),
		CommissionRate:    st.CommissionRate,
		PaymentTerms:      st.PaymentTerms,
	}, nil
}

func (s *service) GetPerformanceStats(ctx context.Context, storeID uint) (*PerformanceStats, error) {
	st, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	return &PerformanceStats{
		StoreID:           st.ID,
		TotalOrders:       st.TotalOrders,
		CompletedOrders:   st.CompletedOrders,
		CancelledOrders:   st.CancelledOrders,
		CompletionRate:    CompletionRate(st),
		PaymentRate:       PaymentRate(st, s.converter),
		AverageOrderValue: st.AverageOrderValue,
		PerformanceRating: st.PerformanceRating,
	}, nil
}

func (s *service) invalidate(ctx context.Context, id uint) {
	if s.cache != nil {
		_ = s.cache.InvalidateStore(ctx, id)
	}
}

func validStatus(status string) bool {
	switch status {
	case models.StoreStatusActive, models.StoreStatusInactive,
		models.StoreStatusSuspended, models.StoreStatusPendingApproval:
		return true
	}
	return false
}

func validCurrency(curr string) bool {
	return curr == models.CurrencyEUR || curr == models.CurrencySYP
}
