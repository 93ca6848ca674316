package repositories

import (
	"errors"

	"breadroute/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	ListByRole(role string) ([]models.User, error)
	Update(user *models.User) error
	IncrementTokenVersion(userID uint) error
}
