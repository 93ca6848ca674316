package models

import (
	"time"

	"gorm.io/gorm"
)

// Application roles
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleDistributor = "distributor"
	RoleStoreOwner  = "store_owner"
	RoleAccountant  = "accountant"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Name     string `gorm:"not null"`
	Phone    string `gorm:"uniqueIndex;not null"`
	Role     string `gorm:"default:'distributor'"`
	Status   string `gorm:"default:'active'"`
	// Vehicle details for distributors (plate, model, capacity)
	VehicleInfo         JSON    `gorm:"type:jsonb"`
	TotalTrips          int     `gorm:"default:0"`
	CompletedTrips      int     `gorm:"default:0"`
	PerformanceRating   float64 `gorm:"default:0"`
	LastLoginAt         time.Time
	LastLoginIP         string
	FailedLoginAttempts int `gorm:"default:0"`
	AccountLockoutUntil *time.Time
	TokenVersion        int `gorm:"default:1"`
}
