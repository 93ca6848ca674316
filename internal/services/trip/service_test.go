package trip

import (
	"context"
	"testing"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTripRepo struct {
	mock.Mock
}

func (m *MockTripRepo) Create(t *models.Trip) error {
	return m.Called(t).Error(0)
}

func (m *MockTripRepo) GetByID(id uint) (*models.Trip, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripRepo) GetByNumber(number string) (*models.Trip, error) {
	args := m.Called(number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripRepo) ListByDistributor(distributorID uint, limit, offset int) ([]models.Trip, int64, error) {
	args := m.Called(distributorID, limit, offset)
	return args.Get(0).([]models.Trip), args.Get(1).(int64), args.Error(2)
}

func (m *MockTripRepo) ListByDate(date time.Time) ([]models.Trip, error) {
	args := m.Called(date)
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockTripRepo) ListByStatus(status string) ([]models.Trip, error) {
	args := m.Called(status)
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockTripRepo) Update(t *models.Trip) error {
	return m.Called(t).Error(0)
}

func (m *MockTripRepo) AddProblem(problem *models.TripProblem) error {
	return m.Called(problem).Error(0)
}

func (m *MockTripRepo) ListProblems(tripID uint) ([]models.TripProblem, error) {
	args := m.Called(tripID)
	return args.Get(0).([]models.TripProblem), args.Error(1)
}

func (m *MockTripRepo) CreateStatusChange(change *models.StatusChange) error {
	return m.Called(change).Error(0)
}

func (m *MockTripRepo) ListStatusChanges(tripID uint) ([]models.StatusChange, error) {
	args := m.Called(tripID)
	return args.Get(0).([]models.StatusChange), args.Error(1)
}

type MockVisitRepo struct {
	mock.Mock
}

func (m *MockVisitRepo) Create(v *models.Visit) error {
	return m.Called(v).Error(0)
}

func (m *MockVisitRepo) GetByID(id uint) (*models.Visit, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *MockVisitRepo) ListByTrip(tripID uint) ([]models.Visit, error) {
	args := m.Called(tripID)
	return args.Get(0).([]models.Visit), args.Error(1)
}

func (m *MockVisitRepo) ListByStore(storeID uint, limit, offset int) ([]models.Visit, int64, error) {
	args := m.Called(storeID, limit, offset)
	return args.Get(0).([]models.Visit), args.Get(1).(int64), args.Error(2)
}

func (m *MockVisitRepo) Update(v *models.Visit) error {
	return m.Called(v).Error(0)
}

func (m *MockVisitRepo) AddProblem(problem *models.VisitProblem) error {
	return m.Called(problem).Error(0)
}

func (m *MockVisitRepo) ListProblems(visitID uint) ([]models.VisitProblem, error) {
	args := m.Called(visitID)
	return args.Get(0).([]models.VisitProblem), args.Error(1)
}

func (m *MockVisitRepo) AddDeliveredItem(item *models.DeliveredItem) error {
	return m.Called(item).Error(0)
}

func (m *MockVisitRepo) ListDeliveredItems(visitID uint) ([]models.DeliveredItem, error) {
	args := m.Called(visitID)
	return args.Get(0).([]models.DeliveredItem), args.Error(1)
}

func (m *MockVisitRepo) CreateStatusChange(change *models.StatusChange) error {
	return m.Called(change).Error(0)
}

type MockStoreRepo struct {
	mock.Mock
}

func (m *MockStoreRepo) Create(s *models.Store) error {
	return m.Called(s).Error(0)
}

func (m *MockStoreRepo) GetByID(id uint) (*models.Store, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepo) List(limit, offset int) ([]models.Store, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepo) ListByStatus(status string) ([]models.Store, error) {
	args := m.Called(status)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *MockStoreRepo) ListByDistributor(distributorID uint) ([]models.Store, error) {
	args := m.Called(distributorID)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *MockStoreRepo) Update(s *models.Store) error {
	return m.Called(s).Error(0)
}

func (m *MockStoreRepo) UpdateStatus(id uint, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *MockStoreRepo) CountByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepo) TotalOutstandingBalance() (float64, error) {
	args := m.Called()
	return args.Get(0).(float64), args.Error(1)
}

type fakeUnitOfWork struct {
	visits   repositories.VisitRepository
	trips    repositories.TripRepository
	stores   repositories.StoreRepository
	payments repositories.PaymentRepository
}

func (u *fakeUnitOfWork) Do(fn func(repositories.VisitRepository, repositories.TripRepository, repositories.StoreRepository, repositories.PaymentRepository) error) error {
	return fn(u.visits, u.trips, u.stores, u.payments)
}

func newTestService(repo *MockTripRepo, visits *MockVisitRepo, stores *MockStoreRepo) Service {
	uow := &fakeUnitOfWork{visits: visits, trips: repo, stores: stores}
	return NewService(repo, visits, nil, uow, nil, testConv)
}

func TestTripService_Create(t *testing.T) {
	t.Run("plans one visit per route stop", func(t *testing.T) {
		repo := new(MockTripRepo)
		visits := new(MockVisitRepo)
		stores := new(MockStoreRepo)

		repo.On("Create", mock.AnythingOfType("*models.Trip")).Return(nil)
		for _, id := range []uint{10, 20, 30} {
			st := &models.Store{Name: "store"}
			st.ID = id
			stores.On("GetByID", id).Return(st, nil)
		}

		var created []*models.Visit
		visits.On("Create", mock.AnythingOfType("*models.Visit")).Run(func(args mock.Arguments) {
			created = append(created, args.Get(0).(*models.Visit))
		}).Return(nil)

		svc := newTestService(repo, visits, stores)
		tr, err := svc.Create(context.Background(), CreateRequest{
			TripDate:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			DistributorID: 7,
			RoutePlan:     []uint{10, 20, 30},
			CreatedBy:     1,
		})

		assert.NoError(t, err)
		assert.Equal(t, models.TripStatusPlanned, tr.Status)
		assert.Equal(t, 3, tr.TotalStores)
		assert.Contains(t, tr.TripNumber, "TRIP-20250615-")

		assert.Len(t, created, 3)
		for i, v := range created {
			assert.Equal(t, i+1, v.VisitOrder)
			assert.Equal(t, models.VisitStatusPlanned, v.Status)
		}

		repo.AssertExpectations(t)
		visits.AssertExpectations(t)
		stores.AssertExpectations(t)
	})

	t.Run("empty route rejected", func(t *testing.T) {
		svc := newTestService(new(MockTripRepo), new(MockVisitRepo), new(MockStoreRepo))
		_, err := svc.Create(context.Background(), CreateRequest{DistributorID: 7})

		assert.ErrorIs(t, err, ErrEmptyRoute)
	})

	t.Run("unknown store in route aborts the whole plan", func(t *testing.T) {
		repo := new(MockTripRepo)
		visits := new(MockVisitRepo)
		stores := new(MockStoreRepo)

		repo.On("Create", mock.AnythingOfType("*models.Trip")).Return(nil)
		st := &models.Store{}
		st.ID = 10
		stores.On("GetByID", uint(10)).Return(st, nil)
		stores.On("GetByID", uint(99)).Return(nil, repositories.ErrStoreNotFound)
		visits.On("Create", mock.AnythingOfType("*models.Visit")).Return(nil)

		svc := newTestService(repo, visits, stores)
		_, err := svc.Create(context.Background(), CreateRequest{
			DistributorID: 7,
			RoutePlan:     []uint{10, 99},
		})

		assert.ErrorIs(t, err, repositories.ErrStoreNotFound)
	})
}

func TestTripService_StartAndComplete(t *testing.T) {
	repo := new(MockTripRepo)
	visits := new(MockVisitRepo)
	stores := new(MockStoreRepo)

	tr := &models.Trip{Status: models.TripStatusInProgress, TotalStores: 2}
	tr.ID = 5

	repo.On("GetByID", uint(5)).Return(tr, nil)
	repo.On("Update", mock.AnythingOfType("*models.Trip")).Return(nil)
	repo.On("CreateStatusChange", mock.MatchedBy(func(c *models.StatusChange) bool {
		return c.EntityType == models.EntityTrip && c.ToStatus == models.TripStatusCompleted
	})).Return(nil)
	visits.On("ListByTrip", uint(5)).Return([]models.Visit{
		{Status: models.VisitStatusCompleted, OrderValueEUR: 40, PaymentCollectedEUR: 40},
		{Status: models.VisitStatusCompleted, OrderValueEUR: 60, PaymentCollectedEUR: 60},
	}, nil)

	svc := newTestService(repo, visits, stores)
	got, err := svc.Complete(context.Background(), 5, 7, &GPSPoint{Latitude: 33.5, Longitude: 36.3})

	assert.NoError(t, err)
	assert.Equal(t, models.TripStatusCompleted, got.Status)
	assert.NotNil(t, got.ActualEndTime)
	assert.Equal(t, 2, got.CompletedStores)
	assert.InDelta(t, 100.0, got.CompletionRate, 1e-9)
	assert.InDelta(t, 100.0, got.CollectionRate, 1e-9)
	assert.InDelta(t, 33.5, got.EndLatitude, 1e-9)

	repo.AssertExpectations(t)
	visits.AssertExpectations(t)
}

func TestTripService_Start_InvalidFromCompleted(t *testing.T) {
	repo := new(MockTripRepo)
	tr := &models.Trip{Status: models.TripStatusCompleted}
	tr.ID = 5
	repo.On("GetByID", uint(5)).Return(tr, nil)

	svc := newTestService(repo, new(MockVisitRepo), new(MockStoreRepo))
	_, err := svc.Start(context.Background(), 5, 7, nil)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTripService_Resume(t *testing.T) {
	t.Run("suspended trip resumes", func(t *testing.T) {
		repo := new(MockTripRepo)
		tr := &models.Trip{Status: models.TripStatusSuspended}
		tr.ID = 5
		repo.On("GetByID", uint(5)).Return(tr, nil)
		repo.On("Update", mock.AnythingOfType("*models.Trip")).Return(nil)
		repo.On("CreateStatusChange", mock.AnythingOfType("*models.StatusChange")).Return(nil)

		svc := newTestService(repo, new(MockVisitRepo), new(MockStoreRepo))
		got, err := svc.Resume(context.Background(), 5, 7)

		assert.NoError(t, err)
		assert.Equal(t, models.TripStatusInProgress, got.Status)
	})

	t.Run("planned trip cannot resume", func(t *testing.T) {
		repo := new(MockTripRepo)
		tr := &models.Trip{Status: models.TripStatusPlanned}
		tr.ID = 5
		repo.On("GetByID", uint(5)).Return(tr, nil)

		svc := newTestService(repo, new(MockVisitRepo), new(MockStoreRepo))
		_, err := svc.Resume(context.Background(), 5, 7)

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestTripService_UpdateProgress(t *testing.T) {
	t.Run("accumulates collections", func(t *testing.T) {
		repo := new(MockTripRepo)
		tr := &models.Trip{
			Status:             models.TripStatusInProgress,
			TotalStores:        4,
			CollectedAmountEUR: 10,
		}
		tr.ID = 5
		repo.On("GetByID", uint(5)).Return(tr, nil)
		repo.On("Update", mock.AnythingOfType("*models.Trip")).Return(nil)

		svc := newTestService(repo, new(MockVisitRepo), new(MockStoreRepo))
		got, err := svc.UpdateProgress(context.Background(), 5, 2, 15, 0)

		assert.NoError(t, err)
		assert.Equal(t, 2, got.CompletedStores)
		assert.InDelta(t, 25, got.CollectedAmountEUR, 1e-9)
		assert.InDelta(t, 50.0, got.CompletionRate, 1e-9)
	})

	t.Run("requires an in-progress trip", func(t *testing.T) {
		repo := new(MockTripRepo)
		tr := &models.Trip{Status: models.TripStatusPlanned}
		tr.ID = 5
		repo.On("GetByID", uint(5)).Return(tr, nil)

		svc := newTestService(repo, new(MockVisitRepo), new(MockStoreRepo))
		_, err := svc.UpdateProgress(context.Background(), 5, 1, 0, 0)

		assert.ErrorIs(t, err, ErrNotInProgress)
	})
}
