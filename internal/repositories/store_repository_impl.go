package repositories

import (
	"fmt"

	"breadroute/internal/models"

	"gorm.io/gorm"
)

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *models.Store) error {
	if result := r.db.Create(store); result.Error != nil {
		return fmt.Errorf("failed to create store: %w", result.Error)
	}
	return nil
}

func (r *storeRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return &store, nil
}

func (r *storeRepository) List(limit, offset int) ([]models.Store, int64, error) {
	var stores []models.Store
	var total int64

	if err := r.db.Model(&models.Store{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	err := r.db.Order("name").Limit(limit).Offset(offset).Find(&stores).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, total, nil
}

func (r *storeRepository) ListByStatus(status string) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Where("status = ?", status).Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores by status: %w", err)
	}
	return stores, nil
}

func (r *storeRepository) ListByDistributor(distributorID uint) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.Where("assigned_distributor_id = ?", distributorID).Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stores by distributor: %w", err)
	}
	return stores, nil
}

func (r *storeRepository) Update(store *models.Store) error {
	if err := r.db.Save(store).Error; err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}
	return nil
}

func (r *storeRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&models.Store{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update store status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStoreNotFound
	}
	return nil
}

func (r *storeRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Store{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *storeRepository) TotalOutstandingBalance() (float64, error) {
	var total float64
	err := r.db.Model(&models.Store{}).
		Select("COALESCE(SUM(current_balance_eur), 0)").
		Scan(&total).Error
	return total, err
}
