package payment

import (
	"context"
	"fmt"
	"log"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/repositories"
	"breadroute/internal/services/currency"
	"breadroute/internal/services/store"

	"github.com/google/uuid"
)

// Service defines the payment record operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*models.Payment, error)
	Get(ctx context.Context, id uint) (*Detail, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]models.Payment, int64, error)
	ListOverdue(ctx context.Context, daysPastDue int) ([]models.Payment, error)
	History(ctx context.Context, id uint) ([]models.StatusChange, error)

	Complete(ctx context.Context, id, actorID uint) (*models.Payment, error)
	Cancel(ctx context.Context, id, actorID uint, reason string) (*models.Payment, error)
	Fail(ctx context.Context, id, actorID uint, reason string) (*models.Payment, error)
	Refund(ctx context.Context, id, actorID uint, reason string) (*models.Payment, error)

	Verify(ctx context.Context, id, verifierID uint, notes string) (*models.Payment, error)
	Reject(ctx context.Context, id, verifierID uint, reason string) (*models.Payment, error)
	MarkUnderReview(ctx context.Context, id, verifierID uint) (*models.Payment, error)

	PayCommission(ctx context.Context, id uint) (*models.Payment, error)
	SetAmount(ctx context.Context, id uint, amount float64, curr string) (*models.Payment, error)
}

type service struct {
	repo      repositories.PaymentRepository
	stores    store.Service
	uow       repositories.UnitOfWork
	converter currency.Converter
	now       func() time.Time
}

// NewService creates a new payment service.
func NewService(repo repositories.PaymentRepository, stores store.Service, uow repositories.UnitOfWork, converter currency.Converter) Service {
	if repo == nil {
		panic("payment repository is required")
	}
	if stores == nil {
		panic("store service is required")
	}
	if uow == nil {
		panic("unit of work is required")
	}
	return &service{
		repo:      repo,
		stores:    stores,
		uow:       uow,
		converter: converter,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.Currency != models.CurrencyEUR && req.Currency != models.CurrencySYP {
		return nil, ErrInvalidCurrency
	}

	// The store must exist before money is booked against it.
	st, err := s.stores.GetStore(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("store lookup failed: %w", err)
	}

	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = s.now()
	}

	p := &models.Payment{
		PaymentNumber:      generatePaymentNumber(paymentDate),
		PaymentDate:        paymentDate,
		StoreID:            req.StoreID,
		DistributorID:      req.DistributorID,
		OrderID:            req.OrderID,
		Currency:           req.Currency,
		PaymentMethod:      defaulted(req.PaymentMethod, models.PaymentMethodCash),
		PaymentType:        defaulted(req.PaymentType, models.PaymentTypeCollection),
		Status:             models.PaymentStatusPending,
		VerificationStatus: models.VerificationPending,
		CommissionRate:     st.CommissionRate,
		Metadata:           req.Metadata,
		CreatedBy:          req.CreatedBy,
	}

	if req.Currency == models.CurrencySYP {
		p.AmountSYP = req.Amount
	} else {
		p.AmountEUR = req.Amount
	}
	Normalize(p, s.converter)
	p.CommissionAmount = TotalInEUR(p, s.converter) * p.CommissionRate / 100

	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Detail, error) {
	p, err := s.get(id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &Detail{
		Payment:     p,
		TotalEUR:    TotalInEUR(p, s.converter),
		TotalSYP:    TotalInSYP(p, s.converter),
		Overdue:     IsOverdue(p, now, DefaultOverdueDays),
		DaysOverdue: DaysOverdue(p, now, DefaultOverdueDays),
	}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]models.Payment, int64, error) {
	return s.repo.List(repositories.PaymentFilter{
		StoreID:            filter.StoreID,
		DistributorID:      filter.DistributorID,
		Status:             filter.Status,
		VerificationStatus: filter.VerificationStatus,
		From:               filter.From,
		To:                 filter.To,
	}, limit, offset)
}

func (s *service) ListOverdue(ctx context.Context, daysPastDue int) ([]models.Payment, error) {
	if daysPastDue <= 0 {
		daysPastDue = DefaultOverdueDays
	}
	cutoff := s.now().AddDate(0, 0, -daysPastDue)
	return s.repo.ListOverdue(cutoff)
}

func (s *service) History(ctx context.Context, id uint) ([]models.StatusChange, error) {
	if _, err := s.get(id); err != nil {
		return nil, err
	}
	return s.repo.ListStatusChanges(id)
}

// Complete marks a pending payment as collected and posts it to the store
// ledger in the payment's authoritative currency. Both writes commit or
// roll back together.
func (s *service) Complete(ctx context.Context, id, actorID uint) (*models.Payment, error) {
	p, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(statusTransitions, p.Status, models.PaymentStatusCompleted); err != nil {
		return nil, err
	}

	from := p.Status

	err = s.uow.Do(func(_ repositories.VisitRepository, _ repositories.TripRepository, stores repositories.StoreRepository, payments repositories.PaymentRepository) error {
		p.Status = models.PaymentStatusCompleted
		t := s.now()
		p.CompletedAt = &t
		if err := payments.Update(p); err != nil {
			return err
		}

		st, err := stores.GetByID(p.StoreID)
		if err != nil {
			return err
		}
		amount := p.AmountEUR
		if p.Currency == models.CurrencySYP {
			amount = p.AmountSYP
		}
		store.ApplyPayment(st, amount, p.Currency, s.converter, s.now())
		return stores.Update(st)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete payment: %w", err)
	}

	s.audit(p.ID, from, p.Status, "", actorID)
	return p, nil
}

func (s *service) Cancel(ctx context.Context, id, actorID uint, reason string) (*models.Payment, error) {
	return s.transition(id, actorID, models.PaymentStatusCancelled, reason)
}

func (s *service) Fail(ctx context.Context, id, actorID uint, reason string) (*models.Payment, error) {
	return s.transition(id, actorID, models.PaymentStatusFailed, reason)
}

func (s *service) Refund(ctx context.Context, id, actorID uint, reason string) (*models.Payment, error) {
	return s.transition(id, actorID, models.PaymentStatusRefunded, reason)
}

func (s *service) Verify(ctx context.Context, id, verifierID uint, notes string) (*models.Payment, error) {
	return s.verificationTransition(id, verifierID, models.VerificationVerified, notes)
}

func (s *service) Reject(ctx context.Context, id, verifierID uint, reason string) (*models.Payment, error) {
	return s.verificationTransition(id, verifierID, models.VerificationRejected, reason)
}

func (s *service) MarkUnderReview(ctx context.Context, id, verifierID uint) (*models.Payment, error) {
	return s.verificationTransition(id, verifierID, models.VerificationUnderReview, "")
}

func (s *service) PayCommission(ctx context.Context, id uint) (*models.Payment, error) {
	p, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if p.CommissionPaid {
		return nil, ErrCommissionPaid
	}
	if p.VerificationStatus != models.VerificationVerified {
		return nil, ErrNotVerified
	}

	p.CommissionPaid = true
	t := s.now()
	p.CommissionPaidAt = &t

	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetAmount replaces the authoritative amount and re-derives the other
// currency side at the current rate.
func (s *service) SetAmount(ctx context.Context, id uint, amount float64, curr string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if curr != models.CurrencyEUR && curr != models.CurrencySYP {
		return nil, ErrInvalidCurrency
	}

	p, err := s.get(id)
	if err != nil {
		return nil, err
	}

	p.Currency = curr
	if curr == models.CurrencySYP {
		p.AmountSYP = amount
		p.AmountEUR = 0
	} else {
		p.AmountEUR = amount
		p.AmountSYP = 0
	}
	Normalize(p, s.converter)
	p.CommissionAmount = TotalInEUR(p, s.converter) * p.CommissionRate / 100

	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) get(id uint) (*models.Payment, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrPaymentNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) transition(id, actorID uint, to, reason string) (*models.Payment, error) {
	p, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(statusTransitions, p.Status, to); err != nil {
		return nil, err
	}

	from := p.Status
	p.Status = to
	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
	s.audit(p.ID, from, to, reason, actorID)
	return p, nil
}

func (s *service) verificationTransition(id, verifierID uint, to, notes string) (*models.Payment, error) {
	if verifierID == 0 {
		return nil, ErrMissingVerifier
	}

	p, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(verificationTransitions, p.VerificationStatus, to); err != nil {
		return nil, err
	}

	from := p.VerificationStatus
	p.VerificationStatus = to
	p.VerifiedBy = &verifierID
	t := s.now()
	p.VerifiedAt = &t
	if notes != "" {
		p.VerificationNotes = notes
	}

	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
	s.audit(p.ID, from, to, notes, verifierID)
	return p, nil
}

func (s *service) audit(paymentID uint, from, to, reason string, actorID uint) {
	err := s.repo.CreateStatusChange(&models.StatusChange{
		EntityType: models.EntityPayment,
		EntityID:   paymentID,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		ActorID:    actorID,
	})
	if err != nil {
		log.Printf("Status change for payment %d (%s -> %s) not recorded: %v", paymentID, from, to, err)
	}
}

func generatePaymentNumber(date time.Time) string {
	return fmt.Sprintf("PAY-%s-%s", date.Format("20060102"), uuid.NewString()[:8])
}

func defaulted(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
