// Package users provides database operations for user accounts.
package users

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new user. The caller is responsible for hashing the
// password before it reaches this layer.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetByEmail retrieves a user by exact email match.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether a user with the given email already exists.
func (r *Repository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
