package visit

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/repositories"
	"breadroute/internal/services/currency"
	"breadroute/internal/services/store"
	"breadroute/internal/services/trip"
)

// Allowed visit status transitions. There is no path back to planned.
var statusTransitions = map[string][]string{
	models.VisitStatusPlanned:    {models.VisitStatusInProgress, models.VisitStatusCancelled, models.VisitStatusFailed},
	models.VisitStatusInProgress: {models.VisitStatusCompleted, models.VisitStatusCancelled, models.VisitStatusFailed},
	models.VisitStatusCompleted:  {},
	models.VisitStatusCancelled:  {},
	models.VisitStatusFailed:     {},
}

// Service defines the store visit operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*models.Visit, error)
	Get(ctx context.Context, id uint) (*Detail, error)
	ListByTrip(ctx context.Context, tripID uint) ([]models.Visit, error)

	Start(ctx context.Context, id, actorID uint, arrival *trip.GPSPoint) (*models.Visit, error)
	Complete(ctx context.Context, id, actorID uint, req CompleteRequest) (*models.Visit, error)
	Cancel(ctx context.Context, id, actorID uint, reason string) (*models.Visit, error)
	Fail(ctx context.Context, id, actorID uint, reason string) (*models.Visit, error)

	AddProblem(ctx context.Context, id, reporterID uint, problemType, description, severity string) (*models.Visit, error)
	AddDeliveredItem(ctx context.Context, id uint, item models.DeliveredItem) error
}

type service struct {
	repo      repositories.VisitRepository
	uow       repositories.UnitOfWork
	converter currency.Converter
	now       func() time.Time
}

// NewService creates a new visit service.
func NewService(repo repositories.VisitRepository, uow repositories.UnitOfWork, converter currency.Converter) Service {
	if repo == nil {
		panic("visit repository is required")
	}
	if uow == nil {
		panic("unit of work is required")
	}
	return &service{
		repo:      repo,
		uow:       uow,
		converter: converter,
		now:       time.Now,
	}
}

// Create adds an unplanned stop to a trip. The trip's store count grows
// with it, in the same transaction.
func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Visit, error) {
	var v *models.Visit

	err := s.uow.Do(func(visits repositories.VisitRepository, trips repositories.TripRepository, stores repositories.StoreRepository, _ repositories.PaymentRepository) error {
		t, err := trips.GetByID(req.TripID)
		if err != nil {
			return err
		}
		st, err := stores.GetByID(req.StoreID)
		if err != nil {
			return err
		}
		existing, err := visits.ListByTrip(t.ID)
		if err != nil {
			return err
		}

		v = &models.Visit{
			TripID:               t.ID,
			StoreID:              st.ID,
			StoreName:            st.Name,
			VisitOrder:           len(existing) + 1,
			PlannedArrivalTime:   req.PlannedArrivalTime,
			PlannedDepartureTime: req.PlannedDepartureTime,
			Status:               models.VisitStatusPlanned,
		}
		if err := visits.Create(v); err != nil {
			return err
		}

		t.TotalStores = len(existing) + 1
		trip.RecomputeRates(t, s.converter)
		return trips.Update(t)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create visit: %w", err)
	}
	return v, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Detail, error) {
	v, err := s.get(id)
	if err != nil {
		return nil, err
	}

	problems, err := s.repo.ListProblems(v.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListDeliveredItems(v.ID)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Visit:           v,
		Problems:        problems,
		DeliveredItems:  items,
		TotalValueEUR:   TotalValue(v, s.converter),
		TotalPaymentEUR: TotalPayment(v, s.converter),
		PaymentRate:     PaymentRate(v, s.converter),
		Delayed:         IsDelayed(v),
		DelayMinutes:    DelayMinutes(v),
	}, nil
}

func (s *service) ListByTrip(ctx context.Context, tripID uint) ([]models.Visit, error) {
	return s.repo.ListByTrip(tripID)
}

func (s *service) Start(ctx context.Context, id, actorID uint, arrival *trip.GPSPoint) (*models.Visit, error) {
	v, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(v.Status, models.VisitStatusInProgress); err != nil {
		return nil, err
	}

	from := v.Status
	v.Status = models.VisitStatusInProgress
	now := s.now()
	v.ActualArrivalTime = &now
	if arrival != nil {
		v.ArrivalLatitude = arrival.Latitude
		v.ArrivalLongitude = arrival.Longitude
	}

	if err := s.repo.Update(v); err != nil {
		return nil, err
	}
	s.audit(v.ID, from, v.Status, "", actorID)
	return v, nil
}

// Complete finishes the visit and settles its money: the visit row, the
// parent trip's recomputed aggregates and the store ledger all commit in
// one transaction.
func (s *service) Complete(ctx context.Context, id, actorID uint, req CompleteRequest) (*models.Visit, error) {
	if req.OrderValue < 0 || req.PaymentCollected < 0 {
		return nil, ErrInvalidAmount
	}
	if req.Currency != "" && req.Currency != models.CurrencyEUR && req.Currency != models.CurrencySYP {
		return nil, ErrInvalidCurrency
	}
	if req.ServiceRating < 0 || req.ServiceRating > 5 {
		return nil, ErrInvalidRating
	}

	v, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(v.Status, models.VisitStatusCompleted); err != nil {
		return nil, err
	}

	from := v.Status

	err = s.uow.Do(func(visits repositories.VisitRepository, trips repositories.TripRepository, stores repositories.StoreRepository, _ repositories.PaymentRepository) error {
		v.Status = models.VisitStatusCompleted
		now := s.now()
		v.ActualDepartureTime = &now
		if req.DepartureLocation != nil {
			v.DepartureLatitude = req.DepartureLocation.Latitude
			v.DepartureLongitude = req.DepartureLocation.Longitude
		}

		// Both currency sides are kept in step, mirroring payment
		// normalization.
		s.setAmounts(v, req)

		v.OrderID = req.OrderID
		v.PaymentMethod = req.PaymentMethod
		v.ServiceRating = req.ServiceRating
		v.StoreSatisfaction = req.StoreSatisfaction
		v.PhotosTaken = req.PhotosTaken
		v.SignatureImageURL = req.SignatureImageURL
		v.ReceiptImageURL = req.ReceiptImageURL
		v.VisitDurationMinutes = durationMinutes(v)

		if err := visits.Update(v); err != nil {
			return err
		}

		t, err := trips.GetByID(v.TripID)
		if err != nil {
			return err
		}
		children, err := visits.ListByTrip(t.ID)
		if err != nil {
			return err
		}
		trip.Recalculate(t, children, s.converter)
		if err := trips.Update(t); err != nil {
			return err
		}

		st, err := stores.GetByID(v.StoreID)
		if err != nil {
			return err
		}
		curr := req.Currency
		if curr == "" {
			curr = models.CurrencyEUR
		}
		store.ApplyOrder(st, req.OrderValue, curr, true, s.converter, s.now())
		if req.PaymentCollected > 0 {
			store.ApplyPayment(st, req.PaymentCollected, curr, s.converter, s.now())
		}
		return stores.Update(st)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete visit: %w", err)
	}

	s.audit(v.ID, from, v.Status, "", actorID)
	return v, nil
}

func (s *service) Cancel(ctx context.Context, id, actorID uint, reason string) (*models.Visit, error) {
	return s.transition(id, actorID, models.VisitStatusCancelled, reason)
}

func (s *service) Fail(ctx context.Context, id, actorID uint, reason string) (*models.Visit, error) {
	return s.transition(id, actorID, models.VisitStatusFailed, reason)
}

// AddProblem appends a problem and re-derives the visit's overall
// severity from the full problem list.
func (s *service) AddProblem(ctx context.Context, id, reporterID uint, problemType, description, severity string) (*models.Visit, error) {
	if !ValidSeverity(severity) {
		return nil, ErrInvalidSeverity
	}

	v, err := s.get(id)
	if err != nil {
		return nil, err
	}

	problem := &models.VisitProblem{
		VisitID:     v.ID,
		Type:        problemType,
		Description: description,
		Severity:    severity,
		ReportedBy:  reporterID,
	}
	if err := s.repo.AddProblem(problem); err != nil {
		return nil, err
	}

	problems, err := s.repo.ListProblems(v.ID)
	if err != nil {
		return nil, err
	}
	v.ProblemSeverity = MaxSeverity(problems)

	if err := s.repo.Update(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) AddDeliveredItem(ctx context.Context, id uint, item models.DeliveredItem) error {
	v, err := s.get(id)
	if err != nil {
		return err
	}
	item.VisitID = v.ID
	return s.repo.AddDeliveredItem(&item)
}

func (s *service) setAmounts(v *models.Visit, req CompleteRequest) {
	rate := s.converter.SYPPerEUR()
	v.Currency = models.CurrencyEUR
	if req.Currency == models.CurrencySYP {
		v.Currency = models.CurrencySYP
		v.OrderValueSYP = req.OrderValue
		v.OrderValueEUR = round2(req.OrderValue / rate)
		v.PaymentCollectedSYP = req.PaymentCollected
		v.PaymentCollectedEUR = round2(req.PaymentCollected / rate)
	} else {
		v.OrderValueEUR = req.OrderValue
		v.OrderValueSYP = round2(req.OrderValue * rate)
		v.PaymentCollectedEUR = req.PaymentCollected
		v.PaymentCollectedSYP = round2(req.PaymentCollected * rate)
	}
}

func (s *service) get(id uint) (*models.Visit, error) {
	v, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrVisitNotFound {
			return nil, ErrVisitNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *service) transition(id, actorID uint, to, reason string) (*models.Visit, error) {
	v, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(v.Status, to); err != nil {
		return nil, err
	}

	from := v.Status
	v.Status = to
	if err := s.repo.Update(v); err != nil {
		return nil, err
	}
	s.audit(v.ID, from, to, reason, actorID)
	return v, nil
}

func (s *service) audit(visitID uint, from, to, reason string, actorID uint) {
	err := s.repo.CreateStatusChange(&models.StatusChange{
		EntityType: models.EntityVisit,
		EntityID:   visitID,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		ActorID:    actorID,
	})
	if err != nil {
		log.Printf("Status change for visit %d (%s -> %s) not recorded: %v", visitID, from, to, err)
	}
}

func checkTransition(from, to string) error {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
