// Package stores provides database operations for stores and their book
// associations.
package stores

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Repository handles all store database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stores repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves all non-deleted stores with their books eagerly loaded.
func (r *Repository) GetAll() ([]entities.Store, error) {
	var list []entities.Store
	err := r.db.Preload("Books").Find(&list).Error
	return list, err
}

// GetByID retrieves a non-deleted store by its ID with books eagerly loaded.
func (r *Repository) GetByID(id uint) (*entities.Store, error) {
	var store entities.Store
	err := r.db.Preload("Books").First(&store, id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// Create persists a new store.
func (r *Repository) Create(store *entities.Store) error {
	return r.db.Create(store).Error
}

// Update overwrites the mutable fields of an existing store.
func (r *Repository) Update(store *entities.Store) error {
	return r.db.Model(store).Updates(map[string]any{
		"name":    store.Name,
		"address": store.Address,
	}).Error
}

// SoftDelete marks the store as deleted, excluding it from reads and from
// the store listings of related books.
func (r *Repository) SoftDelete(store *entities.Store) error {
	return r.db.Delete(store).Error
}

// LinkBook creates a junction row associating a store with a book. Fixture
// and seeding helper; not exposed over HTTP.
func (r *Repository) LinkBook(storeID, bookID uint) error {
	return r.db.Create(&entities.BookStore{BookID: bookID, StoreID: storeID}).Error
}
