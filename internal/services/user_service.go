package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skyward-va/concourse/internal/constants"
	models "skyward-va/concourse/internal/models/gorm"
)

// UserService covers passenger profile reads and the admin role surface.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Get fetches a user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// IsLinked reports whether a Discord account has completed linking.
func (s *UserService) IsLinked(ctx context.Context, userID string) (bool, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Linked, nil
}

// EarlyBirdHolders lists every user holding the early-bird entitlement.
func (s *UserService) EarlyBirdHolders(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Where("has_early_bird = ?", true).
		Order("username asc").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list early bird holders: %w", err)
	}
	return users, nil
}

// UpdateRoles sets the staff and admin flags on a user.
func (s *UserService) UpdateRoles(ctx context.Context, userID string, isStaff, isAdmin bool) (*models.User, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"is_staff": isStaff, "is_admin": isAdmin})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update roles: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, constants.ErrUserNotFound
	}
	return s.Get(ctx, userID)
}
