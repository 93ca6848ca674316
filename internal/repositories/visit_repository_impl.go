package repositories

import (
	"fmt"

	"breadroute/internal/models"

	"gorm.io/gorm"
)

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(visit *models.Visit) error {
	if err := r.db.Create(visit).Error; err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

func (r *visitRepository) GetByID(id uint) (*models.Visit, error) {
	var visit models.Visit
	if err := r.db.First(&visit, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return &visit, nil
}

func (r *visitRepository) ListByTrip(tripID uint) ([]models.Visit, error) {
	var visits []models.Visit
	err := r.db.Where("trip_id = ?", tripID).Order("visit_order").Find(&visits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list visits by trip: %w", err)
	}
	return visits, nil
}

func (r *visitRepository) ListByStore(storeID uint, limit, offset int) ([]models.Visit, int64, error) {
	query := r.db.Model(&models.Visit{}).Where("store_id = ?", storeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count visits: %w", err)
	}

	var visits []models.Visit
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&visits).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list visits by store: %w", err)
	}
	return visits, total, nil
}

func (r *visitRepository) Update(visit *models.Visit) error {
	if err := r.db.Save(visit).Error; err != nil {
		return fmt.Errorf("failed to update visit: %w", err)
	}
	return nil
}

func (r *visitRepository) AddProblem(problem *models.VisitProblem) error {
	if err := r.db.Create(problem).Error; err != nil {
		return fmt.Errorf("failed to add visit problem: %w", err)
	}
	return nil
}

func (r *visitRepository) ListProblems(visitID uint) ([]models.VisitProblem, error) {
	var problems []models.VisitProblem
	err := r.db.Where("visit_id = ?", visitID).Order("created_at").Find(&problems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list visit problems: %w", err)
	}
	return problems, nil
}

func (r *visitRepository) AddDeliveredItem(item *models.DeliveredItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to add delivered item: %w", err)
	}
	return nil
}

func (r *visitRepository) ListDeliveredItems(visitID uint) ([]models.DeliveredItem, error) {
	var items []models.DeliveredItem
	err := r.db.Where("visit_id = ?", visitID).Order("created_at").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list delivered items: %w", err)
	}
	return items, nil
}

func (r *visitRepository) CreateStatusChange(change *models.StatusChange) error {
	if err := r.db.Create(change).Error; err != nil {
		return fmt.Errorf("failed to record status change: %w", err)
	}
	return nil
}
