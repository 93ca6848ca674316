package store

import (
	"context"
	"testing"

	"breadroute/internal/models"
	"breadroute/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

func TestStoreService_RecordOrder(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		currency  string
		completed bool
		setupMock func(*MockStoreRepo)
		wantErr   error
		check     func(*testing.T, *models.Store)
	}{
		{
			name:      "completed order raises balance",
			value:     100,
			currency:  models.CurrencyEUR,
			completed: true,
			setupMock: func(repo *MockStoreRepo) {
				repo.On("GetByID", uint(1)).Return(&models.Store{CreditLimitEUR: 500}, nil)
				repo.On("Update", mock.AnythingOfType("*models.Store")).Return(nil)
			},
			check: func(t *testing.T, st *models.Store) {
				assert.InDelta(t, 100, st.CurrentBalanceEUR, 1e-9)
				assert.Equal(t, 1, st.CompletedOrders)
			},
		},
		{
			name:     "negative value rejected",
			value:    -10,
			currency: models.CurrencyEUR,
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "unknown currency rejected",
			value:    10,
			currency: "USD",
			wantErr:  ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockStoreRepo)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := NewService(repo, nil, testConv)
			st, err := svc.RecordOrder(context.Background(), 1, tt.value, tt.currency, tt.completed)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				tt.check(t, st)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestStoreService_RecordPayment(t *testing.T) {
	repo := new(MockStoreRepo)
	repo.On("GetByID", uint(1)).Return(&models.Store{
		CurrentBalanceEUR: 50,
		TotalPurchasesEUR: 50,
	}, nil)
	repo.On("Update", mock.AnythingOfType("*models.Store")).Return(nil)

	svc := NewService(repo, nil, testConv)
	st, err := svc.RecordPayment(context.Background(), 1, 300000, models.CurrencySYP)

	assert.NoError(t, err)
	assert.InDelta(t, 30, st.CurrentBalanceEUR, 1e-9)
	assert.InDelta(t, 300000, st.TotalPaymentsSYP, 1e-9)
	repo.AssertExpectations(t)
}

func TestStoreService_WithinCreditLimit(t *testing.T) {
	repo := new(MockStoreRepo)
	repo.On("GetByID", uint(1)).Return(&models.Store{
		CreditLimitEUR:    100,
		CurrentBalanceEUR: 80,
	}, nil)

	svc := NewService(repo, nil, testConv)

	ok, err := svc.WithinCreditLimit(context.Background(), 1, 15, models.CurrencyEUR)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.WithinCreditLimit(context.Background(), 1, 30, models.CurrencyEUR)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreService_SetStatus(t *testing.T) {
	t.Run("valid status", func(t *testing.T) {
		repo := new(MockStoreRepo)
		repo.On("UpdateStatus", uint(1), models.StoreStatusSuspended).Return(nil)

		svc := NewService(repo, nil, testConv)
		assert.NoError(t, svc.SetStatus(context.Background(), 1, models.StoreStatusSuspended))
		repo.AssertExpectations(t)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := NewService(new(MockStoreRepo), nil, testConv)
		assert.ErrorIs(t, svc.SetStatus(context.Background(), 1, "closed"), ErrInvalidStoreStatus)
	})

	t.Run("missing store", func(t *testing.T) {
		repo := new(MockStoreRepo)
		repo.On("UpdateStatus", uint(9), models.StoreStatusActive).Return(repositories.ErrStoreNotFound)

		svc := NewService(repo, nil, testConv)
		assert.ErrorIs(t, svc.SetStatus(context.Background(), 9, models.StoreStatusActive), ErrStoreNotFound)
	})
}

func TestStoreService_GetFinancialSummary(t *testing.T) {
	repo := new(MockStoreRepo)
	st := &models.Store{
		CreditLimitEUR:    200,
		CurrentBalanceEUR: 50,
		TotalPurchasesEUR: 100,
		TotalPurchasesSYP: 150000,
		TotalPaymentsEUR:  60,
		CommissionRate:    5,
	}
	st.ID = 1
	repo.On("GetByID", uint(1)).Return(st, nil)

	svc := NewService(repo, nil, testConv)
	summary, err := svc.GetFinancialSummary(context.Background(), 1)

	assert.NoError(t, err)
	assert.InDelta(t, 150, summary.AvailableCredit, 1e-9)
	assert.InDelta(t, 110, summary.PurchasesEURTotal, 1e-9)
	assert.InDelta(t, 60, summary.PaymentsEURTotal, 1e-9)
}
