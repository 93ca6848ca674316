package repositories

import (
	"fmt"
	"time"

	"breadroute/internal/models"

	"gorm.io/gorm"
)

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(trip *models.Trip) error {
	if err := r.db.Create(trip).Error; err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *tripRepository) GetByID(id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.First(&trip, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) GetByNumber(number string) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.Where("trip_number = ?", number).First(&trip).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) ListByDistributor(distributorID uint, limit, offset int) ([]models.Trip, int64, error) {
	query := r.db.Model(&models.Trip{}).Where("distributor_id = ?", distributorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	var trips []models.Trip
	err := query.Order("trip_date DESC").Limit(limit).Offset(offset).Find(&trips).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, total, nil
}

func (r *tripRepository) ListByDate(date time.Time) ([]models.Trip, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var trips []models.Trip
	err := r.db.Where("trip_date >= ? AND trip_date < ?", dayStart, dayEnd).Find(&trips).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trips by date: %w", err)
	}
	return trips, nil
}

func (r *tripRepository) ListByStatus(status string) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.Where("status = ?", status).Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("failed to list trips by status: %w", err)
	}
	return trips, nil
}

func (r *tripRepository) Update(trip *models.Trip) error {
	if err := r.db.Save(trip).Error; err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return nil
}

func (r *tripRepository) AddProblem(problem *models.TripProblem) error {
	if err := r.db.Create(problem).Error; err != nil {
		return fmt.Errorf("failed to add trip problem: %w", err)
	}
	return nil
}

func (r *tripRepository) ListProblems(tripID uint) ([]models.TripProblem, error) {
	var problems []models.TripProblem
	err := r.db.Where("trip_id = ?", tripID).Order("created_at").Find(&problems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trip problems: %w", err)
	}
	return problems, nil
}

func (r *tripRepository) CreateStatusChange(change *models.StatusChange) error {
	if err := r.db.Create(change).Error; err != nil {
		return fmt.Errorf("failed to record status change: %w", err)
	}
	return nil
}

func (r *tripRepository) ListStatusChanges(tripID uint) ([]models.StatusChange, error) {
	var changes []models.StatusChange
	err := r.db.
		Where("entity_type = ? AND entity_id = ?", models.EntityTrip, tripID).
		Order("created_at").
		Find(&changes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list status changes: %w", err)
	}
	return changes, nil
}
