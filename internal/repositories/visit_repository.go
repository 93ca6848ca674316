package repositories

import (
	"errors"

	"breadroute/internal/models"
)

var (
	ErrVisitNotFound    = errors.New("visit not found")
	ErrInvalidVisitData = errors.New("invalid visit data")
)

// VisitRepository defines the interface for visit-related database operations
type VisitRepository interface {
	Create(visit *models.Visit) error
	GetByID(id uint) (*models.Visit, error)
	ListByTrip(tripID uint) ([]models.Visit, error)
	ListByStore(storeID uint, limit, offset int) ([]models.Visit, int64, error)
	Update(visit *models.Visit) error

	AddProblem(problem *models.VisitProblem) error
	ListProblems(visitID uint) ([]models.VisitProblem, error)

	AddDeliveredItem(item *models.DeliveredItem) error
	ListDeliveredItems(visitID uint) ([]models.DeliveredItem, error)

	CreateStatusChange(change *models.StatusChange) error
}
