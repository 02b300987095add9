// Package tokens provides database operations for issued bearer tokens.
// Only token hashes are stored; plaintext tokens never touch the database.
package tokens

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Repository handles all auth-token database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tokens repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new token hash for the user. Existing tokens are left
// untouched; a user may hold several concurrent tokens.
func (r *Repository) Create(userID uint, tokenHash string) (*entities.AuthToken, error) {
	token := &entities.AuthToken{
		UserID:    userID,
		TokenHash: tokenHash,
	}
	if err := r.db.Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// GetByHash retrieves a token row with its user preloaded.
func (r *Repository) GetByHash(tokenHash string) (*entities.AuthToken, error) {
	var token entities.AuthToken
	err := r.db.Preload("User").Where("token_hash = ?", tokenHash).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeAllForUser deletes every token issued to the user, not just the one
// presented with the current request.
func (r *Repository) RevokeAllForUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entities.AuthToken{}).Error
}

// DeleteCreatedBefore removes tokens older than the cutoff and returns the
// number of rows deleted. Used by the cleanup scheduler.
func (r *Repository) DeleteCreatedBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.AuthToken{})
	return result.RowsAffected, result.Error
}

// CountForUser returns the number of live tokens the user holds.
func (r *Repository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.AuthToken{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
