package visit

import (
	"context"
	"testing"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

// fakeUnitOfWork runs the closure against the given mock repos with no
// real transaction underneath.
type fakeUnitOfWork struct {
	visits   repositories.VisitRepository
	trips    repositories.TripRepository
	stores   repositories.StoreRepository
	payments repositories.PaymentRepository
}

func (u *fakeUnitOfWork) Do(fn func(repositories.VisitRepository, repositories.TripRepository, repositories.StoreRepository, repositories.PaymentRepository) error) error {
	return fn(u.visits, u.trips, u.stores, u.payments)
}

func TestVisitService_Complete(t *testing.T) {
	t.Run("settles visit, trip and store together", func(t *testing.T) {
		visits := new(MockVisitRepo)
		trips := new(MockTripRepo)
		stores := new(MockStoreRepo)
		uow := &fakeUnitOfWork{visits: visits, trips: trips, stores: stores}

		arrival := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		v := &models.Visit{
			TripID:            5,
			StoreID:           3,
			Status:            models.VisitStatusInProgress,
			ActualArrivalTime: &arrival,
		}
		v.ID = 1

		visits.On("GetByID", uint(1)).Return(v, nil)
		visits.On("Update", mock.AnythingOfType("*models.Visit")).Return(nil)
		visits.On("ListByTrip", uint(5)).Return([]models.Visit{*v}, nil)
		visits.On("CreateStatusChange", mock.AnythingOfType("*models.StatusChange")).Return(nil)

		tr := &models.Trip{TotalStores: 1, Status: models.TripStatusInProgress}
		tr.ID = 5
		trips.On("GetByID", uint(5)).Return(tr, nil)
		trips.On("Update", mock.AnythingOfType("*models.Trip")).Return(nil)

		st := &models.Store{CreditLimitEUR: 1000}
		stores.On("GetByID", uint(3)).Return(st, nil)
		stores.On("Update", mock.AnythingOfType("*models.Store")).Return(nil)

		svc := NewService(visits, uow, testConv)
		got, err := svc.Complete(context.Background(), 1, 7, CompleteRequest{
			OrderValue:       150000,
			PaymentCollected: 150000,
			Currency:         models.CurrencySYP,
		})

		assert.NoError(t, err)
		assert.Equal(t, models.VisitStatusCompleted, got.Status)
		assert.NotNil(t, got.ActualDepartureTime)

		// Both currency sides are populated.
		assert.InDelta(t, 150000, got.OrderValueSYP, 1e-9)
		assert.InDelta(t, 10, got.OrderValueEUR, 1e-9)
		assert.InDelta(t, 150000, got.PaymentCollectedSYP, 1e-9)
		assert.InDelta(t, 10, got.PaymentCollectedEUR, 1e-9)

		// Store ledger saw the order and the payment.
		assert.Equal(t, 1, st.CompletedOrders)
		assert.InDelta(t, 150000, st.TotalPurchasesSYP, 1e-9)
		assert.InDelta(t, 150000, st.TotalPaymentsSYP, 1e-9)
		assert.InDelta(t, 0, st.CurrentBalanceEUR, 1e-9)

		visits.AssertExpectations(t)
		trips.AssertExpectations(t)
		stores.AssertExpectations(t)
	})

	t.Run("completed order folds to its face value, not twice it", func(t *testing.T) {
		visits := new(MockVisitRepo)
		trips := new(MockTripRepo)
		stores := new(MockStoreRepo)
		uow := &fakeUnitOfWork{visits: visits, trips: trips, stores: stores}

		v := &models.Visit{TripID: 5, StoreID: 3, Status: models.VisitStatusInProgress}
		v.ID = 1

		visits.On("GetByID", uint(1)).Return(v, nil)
		visits.On("Update", mock.AnythingOfType("*models.Visit")).Return(nil)
		visits.On("ListByTrip", uint(5)).Return([]models.Visit{*v}, nil)
		visits.On("CreateStatusChange", mock.AnythingOfType("*models.StatusChange")).Return(nil)

		tr := &models.Trip{TotalStores: 1, Status: models.TripStatusInProgress}
		tr.ID = 5
		trips.On("GetByID", uint(5)).Return(tr, nil)
		trips.On("Update", mock.AnythingOfType("*models.Trip")).Return(nil)

		stores.On("GetByID", uint(3)).Return(&models.Store{}, nil)
		stores.On("Update", mock.AnythingOfType("*models.Store")).Return(nil)

		svc := NewService(visits, uow, testConv)
		got, err := svc.Complete(context.Background(), 1, 7, CompleteRequest{
			OrderValue:       25,
			PaymentCollected: 25,
			Currency:         models.CurrencyEUR,
		})

		assert.NoError(t, err)
		assert.Equal(t, models.CurrencyEUR, got.Currency)

		// The SYP columns are mirrors of the EUR amounts, not extra money.
		assert.InDelta(t, 375000, got.OrderValueSYP, 1e-9)
		assert.InDelta(t, 25, TotalValue(got, testConv), 1e-9)
		assert.InDelta(t, 25, TotalPayment(got, testConv), 1e-9)
	})

	t.Run("planned visit cannot complete directly", func(t *testing.T) {
		visits := new(MockVisitRepo)
		uow := &fakeUnitOfWork{visits: visits, trips: new(MockTripRepo), stores: new(MockStoreRepo)}

		v := &models.Visit{Status: models.VisitStatusPlanned}
		v.ID = 1
		visits.On("GetByID", uint(1)).Return(v, nil)

		svc := NewService(visits, uow, testConv)
		_, err := svc.Complete(context.Background(), 1, 7, CompleteRequest{Currency: models.CurrencyEUR})

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("negative amounts rejected", func(t *testing.T) {
		visits := new(MockVisitRepo)
		uow := &fakeUnitOfWork{visits: visits, trips: new(MockTripRepo), stores: new(MockStoreRepo)}

		svc := NewService(visits, uow, testConv)
		_, err := svc.Complete(context.Background(), 1, 7, CompleteRequest{OrderValue: -1})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.Complete(context.Background(), 1, 7, CompleteRequest{PaymentCollected: -1})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rating out of range rejected", func(t *testing.T) {
		visits := new(MockVisitRepo)
		uow := &fakeUnitOfWork{visits: visits, trips: new(MockTripRepo), stores: new(MockStoreRepo)}

		svc := NewService(visits, uow, testConv)
		_, err := svc.Complete(context.Background(), 1, 7, CompleteRequest{ServiceRating: 6})
		assert.ErrorIs(t, err, ErrInvalidRating)
	})
}

func TestVisitService_Start(t *testing.T) {
	visits := new(MockVisitRepo)
	uow := &fakeUnitOfWork{visits: visits, trips: new(MockTripRepo), stores: new(MockStoreRepo)}

	v := &models.Visit{Status: models.VisitStatusPlanned}
	v.ID = 1
	visits.On("GetByID", uint(1)).Return(v, nil)
	visits.On("Update", mock.AnythingOfType("*models.Visit")).Return(nil)
	visits.On("CreateStatusChange", mock.MatchedBy(func(c *models.StatusChange) bool {
		return c.EntityType == models.EntityVisit &&
			c.FromStatus == models.VisitStatusPlanned &&
			c.ToStatus == models.VisitStatusInProgress
	})).Return(nil)

	svc := NewService(visits, uow, testConv)
	got, err := svc.Start(context.Background(), 1, 7, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.VisitStatusInProgress, got.Status)
	assert.NotNil(t, got.ActualArrivalTime)
	visits.AssertExpectations(t)
}

func TestVisitService_AddProblem(t *testing.T) {
	t.Run("severity re-derived from full list", func(t *testing.T) {
		visits := new(MockVisitRepo)
		uow := &fakeUnitOfWork{visits: visits, trips: new(MockTripRepo), stores: new(MockStoreRepo)}

		v := &models.Visit{Status: models.VisitStatusInProgress, ProblemSeverity: models.SeverityHigh}
		v.ID = 1
		visits.On("GetByID", uint(1)).Return(v, nil)
		visits.On("AddProblem", mock.AnythingOfType("*models.VisitProblem")).Return(nil)
		visits.On("ListProblems", uint(1)).Return([]models.VisitProblem{
			{Severity: models.SeverityHigh},
			{Severity: models.SeverityLow},
		}, nil)
		visits.On("Update", mock.AnythingOfType("*models.Visit")).Return(nil)

		svc := NewService(visits, uow, testConv)
		got, err := svc.AddProblem(context.Background(), 1, 7, "delivery", "crate shortage", models.SeverityLow)

		assert.NoError(t, err)
		// A low-severity report does not lower an already-high visit.
		assert.Equal(t, models.SeverityHigh, got.ProblemSeverity)
		visits.AssertExpectations(t)
	})

	t.Run("unknown severity rejected", func(t *testing.T) {
		visits := new(MockVisitRepo)
		uow := &fakeUnitOfWork{visits: visits, trips: new(MockTripRepo), stores: new(MockStoreRepo)}

		svc := NewService(visits, uow, testConv)
		_, err := svc.AddProblem(context.Background(), 1, 7, "delivery", "desc", "urgent")

		assert.ErrorIs(t, err, ErrInvalidSeverity)
	})
}

func TestVisitService_Create(t *testing.T) {
	visits := new(MockVisitRepo)
	trips := new(MockTripRepo)
	stores := new(MockStoreRepo)
	uow := &fakeUnitOfWork{visits: visits, trips: trips, stores: stores}

	tr := &models.Trip{TotalStores: 2, Status: models.TripStatusInProgress}
	tr.ID = 5
	trips.On("GetByID", uint(5)).Return(tr, nil)
	trips.On("Update", mock.AnythingOfType("*models.Trip")).Return(nil)

	st := &models.Store{Name: "Corner Bakery"}
	st.ID = 3
	stores.On("GetByID", uint(3)).Return(st, nil)

	visits.On("ListByTrip", uint(5)).Return([]models.Visit{{}, {}}, nil)
	visits.On("Create", mock.AnythingOfType("*models.Visit")).Return(nil)

	svc := NewService(visits, uow, testConv)
	got, err := svc.Create(context.Background(), CreateRequest{TripID: 5, StoreID: 3})

	assert.NoError(t, err)
	assert.Equal(t, models.VisitStatusPlanned, got.Status)
	assert.Equal(t, 3, got.VisitOrder)
	assert.Equal(t, "Corner Bakery", got.StoreName)
	assert.Equal(t, 3, tr.TotalStores)

	visits.AssertExpectations(t)
	trips.AssertExpectations(t)
	stores.AssertExpectations(t)
}

func TestVisitService_NotFound(t *testing.T) {
	visits := new(MockVisitRepo)
	uow := &fakeUnitOfWork{visits: visits, trips: new(MockTripRepo), stores: new(MockStoreRepo)}

	visits.On("GetByID", uint(99)).Return(nil, repositories.ErrVisitNotFound)

	svc := NewService(visits, uow, testConv)
	_, err := svc.Start(context.Background(), 99, 7, nil)

	assert.ErrorIs(t, err, ErrVisitNotFound)
}
