package repositories

import (
	"errors"

	"breadroute/internal/models"
)

var (
	ErrStoreNotFound    = errors.New("store not found")
	ErrInvalidStoreData = errors.New("invalid store data")
	ErrDuplicateStore   = errors.New("store already exists")
)

// StoreRepository defines the interface for store-related database operations
type StoreRepository interface {
	Create(store *models.Store) error
	GetByID(id uint) (*models.Store, error)
	List(limit, offset int) ([]models.Store, int64, error)
	ListByStatus(status string) ([]models.Store, error)
	ListByDistributor(distributorID uint) ([]models.Store, error)
	Update(store *models.Store) error
	UpdateStatus(id uint, status string) error

	// Analytics
	CountByStatus(status string) (int64, error)
	TotalOutstandingBalance() (float64, error)
}
