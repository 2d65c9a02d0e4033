/**
 * @description
 * Profile Service for user account rows.
 * Syncs users from the hosted auth provider's subject claim and applies
 * single-field profile updates. No multi-step transactions.
 *
 * @dependencies
 * - gorm.io/gorm
 * - internal/models
 */

package services

import (
	"context"
	"strings"

	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// SyncUser ensures a user row exists for the auth subject, creating it on first login
func (s *ProfileService) SyncUser(ctx context.Context, authID, email string) (*models.User, error) {
	authID = strings.TrimSpace(authID)
	if authID == "" {
		return nil, gorm.ErrRecordNotFound
	}

	user := &models.User{
		AuthID: authID,
		Email:  email,
	}

	result := s.db.WithContext(ctx).
		Where("auth_id = ?", authID).
		FirstOrCreate(user)

	if result.Error != nil {
		logger.Error("ProfileService: Failed to sync user: %v", result.Error)
		return nil, result.Error
	}

	// Keep email current when the provider reports a change
	if email != "" && user.Email != email {
		user.Email = email
		if err := s.db.WithContext(ctx).Model(user).Update("email", email).Error; err != nil {
			logger.Error("ProfileService: Failed to update email: %v", err)
		}
	}

	return user, nil
}

// GetByAuthID loads the user row for the auth subject
func (s *ProfileService) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("auth_id = ?", authID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the editable profile fields; nil means "leave unchanged"
type ProfileUpdate struct {
	DisplayName *string `json:"display_name"`
	Currency    *string `json:"currency"`
	DefaultView *string `json:"default_view"`
}

// UpdateProfile applies a partial update to the user's display settings
func (s *ProfileService) UpdateProfile(ctx context.Context, authID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.DisplayName != nil {
		changes["display_name"] = *update.DisplayName
	}
	if update.Currency != nil {
		changes["currency"] = strings.ToUpper(*update.Currency)
	}
	if update.DefaultView != nil {
		changes["default_view"] = *update.DefaultView
	}

	if len(changes) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(changes).Error; err != nil {
		logger.Error("ProfileService: Failed to update profile: %v", err)
		return nil, err
	}

	return s.GetByAuthID(ctx, authID)
}
