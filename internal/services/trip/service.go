package trip

import (
	"context"
	"fmt"
	"log"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/repositories"
	"breadroute/internal/services/currency"
)

// Service defines the distribution trip operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*models.Trip, error)
	Get(ctx context.Context, id uint) (*models.Trip, error)
	ListByDistributor(ctx context.Context, distributorID uint, limit, offset int) ([]models.Trip, int64, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Trip, error)

	Start(ctx context.Context, id, actorID uint, location *GPSPoint) (*models.Trip, error)
	Complete(ctx context.Context, id, actorID uint, location *GPSPoint) (*models.Trip, error)
	Cancel(ctx context.Context, id, actorID uint, reason string) (*models.Trip, error)
	Suspend(ctx context.Context, id, actorID uint, reason string) (*models.Trip, error)
	Resume(ctx context.Context, id, actorID uint) (*models.Trip, error)

	AddProblem(ctx context.Context, id, reporterID uint, description string) (*models.TripProblem, error)
	UpdateProgress(ctx context.Context, id uint, completedStores int, collectedEUR, collectedSYP float64) (*models.Trip, error)
	RecordExpenses(ctx context.Context, id uint, expenses Expenses) (*models.Trip, error)
	RecalculateAggregates(ctx context.Context, id uint) (*models.Trip, error)

	GetSummary(ctx context.Context, id uint) (*Summary, error)
}

// Cache is the subset of the cache service the trip service needs.
type Cache interface {
	GetTrip(ctx context.Context, id uint) (*models.Trip, error)
	CacheTrip(ctx context.Context, trip *models.Trip) error
	InvalidateTrip(ctx context.Context, id uint) error
}

type service struct {
	repo      repositories.TripRepository
	visits    repositories.VisitRepository
	users     repositories.UserRepository
	uow       repositories.UnitOfWork
	cache     Cache
	converter currency.Converter
	now       func() time.Time
}

// NewService creates a new trip service. Cache may be nil.
func NewService(
	repo repositories.TripRepository,
	visits repositories.VisitRepository,
	users repositories.UserRepository,
	uow repositories.UnitOfWork,
	cache Cache,
	converter currency.Converter,
) Service {
	if repo == nil {
		panic("trip repository is required")
	}
	if visits == nil {
		panic("visit repository is required")
	}
	if uow == nil {
		panic("unit of work is required")
	}
	return &service{
		repo:      repo,
		visits:    visits,
		users:     users,
		uow:       uow,
		cache:     cache,
		converter: converter,
		now:       time.Now,
	}
}

// Create plans a trip and one visit per route stop inside one transaction.
func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Trip, error) {
	if len(req.RoutePlan) == 0 {
		return nil, ErrEmptyRoute
	}

	tripDate := req.TripDate
	if tripDate.IsZero() {
		tripDate = s.now()
	}

	t := &models.Trip{
		TripNumber:       req.TripNumber,
		TripDate:         tripDate,
		DistributorID:    req.DistributorID,
		VehicleInfo:      req.VehicleInfo,
		RoutePlan:        req.RoutePlan,
		PlannedStartTime: req.PlannedStartTime,
		PlannedEndTime:   req.PlannedEndTime,
		TotalStores:      len(req.RoutePlan),
		Status:           models.TripStatusPlanned,
		CreatedBy:        req.CreatedBy,
	}
	if t.TripNumber == "" {
		t.TripNumber = GenerateTripNumber(tripDate)
	}

	if s.users != nil {
		if distributor, err := s.users.GetByID(req.DistributorID); err == nil {
			t.DistributorName = distributor.Name
		}
	}

	err := s.uow.Do(func(visits repositories.VisitRepository, trips repositories.TripRepository, stores repositories.StoreRepository, _ repositories.PaymentRepository) error {
		if err := trips.Create(t); err != nil {
			return err
		}
		for i, storeID := range req.RoutePlan {
			st, err := stores.GetByID(storeID)
			if err != nil {
				return fmt.Errorf("route stop %d: %w", i+1, err)
			}
			v := &models.Visit{
				TripID:     t.ID,
				StoreID:    storeID,
				StoreName:  st.Name,
				VisitOrder: i + 1,
				Status:     models.VisitStatusPlanned,
			}
			if err := visits.Create(v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return t, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Trip, error) {
	if s.cache != nil {
		if t, err := s.cache.GetTrip(ctx, id); err == nil && t != nil {
			return t, nil
		}
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrTripNotFound {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.CacheTrip(ctx, t)
	}
	return t, nil
}

func (s *service) ListByDistributor(ctx context.Context, distributorID uint, limit, offset int) ([]models.Trip, int64, error) {
	return s.repo.ListByDistributor(distributorID, limit, offset)
}

func (s *service) ListByDate(ctx context.Context, date time.Time) ([]models.Trip, error) {
	return s.repo.ListByDate(date)
}

func (s *service) Start(ctx context.Context, id, actorID uint, location *GPSPoint) (*models.Trip, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(t.Status, models.TripStatusInProgress); err != nil {
		return nil, err
	}

	from := t.Status
	t.Status = models.TripStatusInProgress
	start := s.now()
	t.ActualStartTime = &start
	if location != nil {
		t.StartLatitude = location.Latitude
		t.StartLongitude = location.Longitude
	}

	if err := s.update(ctx, t); err != nil {
		return nil, err
	}
	s.audit(t.ID, from, t.Status, "", actorID)
	return t, nil
}

// Complete closes the trip, stamps the end time and recomputes both rates
// from the child visits inside one transaction.
func (s *service) Complete(ctx context.Context, id, actorID uint, location *GPSPoint) (*models.Trip, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(t.Status, models.TripStatusCompleted); err != nil {
		return nil, err
	}

	from := t.Status

	err = s.uow.Do(func(visits repositories.VisitRepository, trips repositories.TripRepository, _ repositories.StoreRepository, _ repositories.PaymentRepository) error {
		children, err := visits.ListByTrip(t.ID)
		if err != nil {
			return err
		}

		t.Status = models.TripStatusCompleted
		end := s.now()
		t.ActualEndTime = &end
		if location != nil {
			t.EndLatitude = location.Latitude
			t.EndLongitude = location.Longitude
		}
		Recalculate(t, children, s.converter)

		return trips.Update(t)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, t.ID)
	s.audit(t.ID, from, t.Status, "", actorID)
	return t, nil
}

func (s *service) Cancel(ctx context.Context, id, actorID uint, reason string) (*models.Trip, error) {
	return s.transition(ctx, id, actorID, models.TripStatusCancelled, reason)
}

func (s *service) Suspend(ctx context.Context, id, actorID uint, reason string) (*models.Trip, error) {
	return s.transition(ctx, id, actorID, models.TripStatusSuspended, reason)
}

func (s *service) Resume(ctx context.Context, id, actorID uint) (*models.Trip, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TripStatusSuspended {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, models.TripStatusInProgress)
	}

	from := t.Status
	t.Status = models.TripStatusInProgress
	if err := s.update(ctx, t); err != nil {
		return nil, err
	}
	s.audit(t.ID, from, t.Status, "", actorID)
	return t, nil
}

func (s *service) AddProblem(ctx context.Context, id, reporterID uint, description string) (*models.TripProblem, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	problem := &models.TripProblem{
		TripID:      t.ID,
		Description: description,
		ReportedBy:  reporterID,
		ReportedAt:  s.now(),
	}
	if err := s.repo.AddProblem(problem); err != nil {
		return nil, err
	}
	return problem, nil
}

// UpdateProgress applies a manual progress report from the driver app.
// Collected amounts accumulate; the completed-store count is overwritten
// with the reported value. Rates are refreshed either way.
func (s *service) UpdateProgress(ctx context.Context, id uint, completedStores int, collectedEUR, collectedSYP float64) (*models.Trip, error) {
	if completedStores < 0 || collectedEUR < 0 || collectedSYP < 0 {
		return nil, ErrInvalidAmount
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TripStatusInProgress {
		return nil, ErrNotInProgress
	}

	t.CollectedAmountEUR += collectedEUR
	t.CollectedAmountSYP += collectedSYP
	t.CompletedStores = completedStores
	RecomputeRates(t, s.converter)

	if err := s.update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) RecordExpenses(ctx context.Context, id uint, expenses Expenses) (*models.Trip, error) {
	if expenses.FuelCostEUR < 0 || expenses.OtherExpensesEUR < 0 || expenses.DistanceCoveredKM < 0 {
		return nil, ErrInvalidAmount
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t.FuelCostEUR = expenses.FuelCostEUR
	t.OtherExpensesEUR = expenses.OtherExpensesEUR
	t.DistanceCoveredKM = expenses.DistanceCoveredKM

	if err := s.update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// RecalculateAggregates rebuilds the trip's counters from its visits, for
// repairing drift after manual progress reports.
func (s *service) RecalculateAggregates(ctx context.Context, id uint) (*models.Trip, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(func(visits repositories.VisitRepository, trips repositories.TripRepository, _ repositories.StoreRepository, _ repositories.PaymentRepository) error {
		children, err := visits.ListByTrip(t.ID)
		if err != nil {
			return err
		}
		Recalculate(t, children, s.converter)
		return trips.Update(t)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, t.ID)
	return t, nil
}

func (s *service) GetSummary(ctx context.Context, id uint) (*Summary, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	visits, err := s.visits.ListByTrip(t.ID)
	if err != nil {
		return nil, err
	}
	problems, err := s.repo.ListProblems(t.ID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Trip:            t,
		DurationMinutes: Duration(t),
		Efficiency:      Efficiency(t),
		Visits:          visits,
		Problems:        problems,
	}, nil
}

func (s *service) transition(ctx context.Context, id, actorID uint, to, reason string) (*models.Trip, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(t.Status, to); err != nil {
		return nil, err
	}

	from := t.Status
	t.Status = to
	if err := s.update(ctx, t); err != nil {
		return nil, err
	}
	s.audit(t.ID, from, to, reason, actorID)
	return t, nil
}

func (s *service) update(ctx context.Context, t *models.Trip) error {
	if err := s.repo.Update(t); err != nil {
		return err
	}
	s.invalidate(ctx, t.ID)
	return nil
}

func (s *service) invalidate(ctx context.Context, id uint) {
	if s.cache != nil {
		_ = s.cache.InvalidateTrip(ctx, id)
	}
}

func (s *service) audit(tripID uint, from, to, reason string, actorID uint) {
	err := s.repo.CreateStatusChange(&models.StatusChange{
		EntityType: models.EntityTrip,
		EntityID:   tripID,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		ActorID:    actorID,
	})
	if err != nil {
		log.Printf("Status change for trip %d (%s -> %s) not recorded: %v", tripID, from, to, err)
	}
}
