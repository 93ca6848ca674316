package auth

import (
	"errors"
	"log"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/repositories"
	"breadroute/internal/utils"
	"breadroute/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Service handles authentication and account lifecycle.
type Service interface {
	Register(user *models.User, password string) error
	Login(email, phone, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
	GetUserByID(userID uint) (*models.User, error)
	GetUserTokenVersion(userID uint) (int, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
	}
}

func (s *service) Register(user *models.User, password string) error {
	v := validation.New()
	v.Required("email", user.Email)
	v.Email("email", user.Email)
	v.Required("name", user.Name)
	v.Phone("phone", user.Phone)
	v.Password(password)
	if !v.Valid() {
		return v.Errors[0]
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = models.RoleDistributor
	}
	user.TokenVersion = 1

	return s.userRepo.Create(user)
}

func (s *service) Login(email, phone, password string) (*models.User, string, string, error) {
	user, err := s.getUserByIdentifier(email, phone)
	if err != nil {
		log.Printf("Login failed: user not found for identifier %s", email+phone)
		return nil, "", "", errors.New("invalid credentials")
	}

	if user.AccountLockoutUntil != nil && user.AccountLockoutUntil.After(time.Now()) {
		return nil, "", "", errors.New("account is locked")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= 5 {
			until := time.Now().Add(15 * time.Minute)
			user.AccountLockoutUntil = &until
			user.FailedLoginAttempts = 0
		}
		_ = s.userRepo.Update(user)
		return nil, "", "", errors.New("invalid credentials")
	}

	user.FailedLoginAttempts = 0
	user.AccountLockoutUntil = nil
	user.LastLoginAt = time.Now()
	_ = s.userRepo.Update(user)

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		log.Println("Error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
}

// Logout bumps the token version so every outstanding token is rejected.
func (s *service) Logout(userID uint) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	v := validation.New()
	v.Password(newPassword)
	if !v.Valid() {
		return v.Errors[0]
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("incorrect password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.Password = string(hashed)
	user.TokenVersion++
	return s.userRepo.Update(user)
}

func (s *service) GetUserByID(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

func (s *service) GetUserTokenVersion(userID uint) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}

func (s *service) getUserByIdentifier(email, phone string) (*models.User, error) {
	if email != "" {
		return s.userRepo.GetByEmail(email)
	}
	if phone != "" {
		return s.userRepo.GetByPhone(phone)
	}
	return nil, errors.New("no identifier provided")
}
