package repositories

import (
	"errors"
	"time"

	"breadroute/internal/models"
)

var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrDuplicateTrip = errors.New("trip number already exists")
)

// TripRepository defines the interface for trip-related database operations
type TripRepository interface {
	Create(trip *models.Trip) error
	GetByID(id uint) (*models.Trip, error)
	GetByNumber(number string) (*models.Trip, error)
	ListByDistributor(distributorID uint, limit, offset int) ([]models.Trip, int64, error)
	ListByDate(date time.Time) ([]models.Trip, error)
	ListByStatus(status string) ([]models.Trip, error)
	Update(trip *models.Trip) error

	AddProblem(problem *models.TripProblem) error
	ListProblems(tripID uint) ([]models.TripProblem, error)

	CreateStatusChange(change *models.StatusChange) error
	ListStatusChanges(tripID uint) ([]models.StatusChange, error)
}
