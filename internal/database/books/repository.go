// Package books provides database operations for the book catalogue,
// including the many-to-many association with stores.
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves all non-deleted books with their stores eagerly loaded.
// Soft-deleted stores are excluded from the association by GORM's default
// soft-delete scope.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Stores").Find(&books).Error
	return books, err
}

// GetByID retrieves a non-deleted book by its ID with stores eagerly loaded.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Stores").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create persists a new book.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// Update overwrites the mutable fields of an existing book.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Model(book).Updates(map[string]any{
		"name":  book.Name,
		"isbn":  book.ISBN,
		"value": book.Value,
	}).Error
}

// SoftDelete marks the book as deleted. The row remains in storage with
// deleted_at set and disappears from all reads and association listings.
func (r *Repository) SoftDelete(book *entities.Book) error {
	return r.db.Delete(book).Error
}

// LinkStore creates a junction row associating a book with a store. There is
// no HTTP endpoint for this; it exists for fixtures and seeding.
func (r *Repository) LinkStore(bookID, storeID uint) error {
	return r.db.Create(&entities.BookStore{BookID: bookID, StoreID: storeID}).Error
}
