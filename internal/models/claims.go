package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Store permissions
	PermissionStoreRead  = "store:read"
	PermissionStoreWrite = "store:write"

	// Payment permissions
	PermissionPaymentRead   = "payment:read"
	PermissionPaymentWrite  = "payment:write"
	PermissionPaymentVerify = "payment:verify"

	// Distribution permissions
	PermissionTripRead   = "trip:read"
	PermissionTripWrite  = "trip:write"
	PermissionVisitWrite = "visit:write"

	// User management permissions
	PermissionUserRead       = "user:read"
	PermissionUserWrite      = "user:write"
	PermissionChangePassword = "user:change-password"

	// Reporting permissions
	PermissionReportRead = "report:read"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionStoreRead,
			PermissionStoreWrite,
			PermissionPaymentRead,
			PermissionPaymentWrite,
			PermissionPaymentVerify,
			PermissionTripRead,
			PermissionTripWrite,
			PermissionVisitWrite,
			PermissionUserRead,
			PermissionUserWrite,
			PermissionChangePassword,
			PermissionReportRead,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleManager:
		return []string{
			PermissionStoreRead,
			PermissionStoreWrite,
			PermissionPaymentRead,
			PermissionPaymentWrite,
			PermissionTripRead,
			PermissionTripWrite,
			PermissionVisitWrite,
			PermissionUserRead,
			PermissionChangePassword,
			PermissionReportRead,
		}
	case RoleDistributor:
		return []string{
			PermissionStoreRead,
			PermissionPaymentWrite,
			PermissionTripRead,
			PermissionTripWrite,
			PermissionVisitWrite,
			PermissionChangePassword,
		}
	case RoleAccountant:
		return []string{
			PermissionStoreRead,
			PermissionPaymentRead,
			PermissionPaymentWrite,
			PermissionPaymentVerify,
			PermissionChangePassword,
			PermissionReportRead,
		}
	case RoleStoreOwner:
		return []string{
			PermissionStoreRead,
			PermissionPaymentRead,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
