// Package services implements the application layer between the HTTP
// controllers and the repositories: input validation, orchestration and
// projection of entities to response shapes.
package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/validation"
)

var bookRules = validation.Rules{
	"name":  {Required: true, Kind: validation.KindString},
	"isbn":  {Required: true, Kind: validation.KindDigits, Digits: 13},
	"value": {Required: true, Kind: validation.KindDecimal, Scale: 2},
}

// BookInput is the payload for creating or updating a book.
type BookInput struct {
	Name  string  `json:"name"`
	ISBN  string  `json:"isbn"`
	Value Decimal `json:"value"`
}

// StoreRef is the restricted projection of a store inside a book response.
type StoreRef struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// BookResponse is the API shape of a book, with its stores projected down to
// the restricted field set (never the full record or the junction row).
type BookResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	ISBN      string     `json:"isbn"`
	Value     float64    `json:"value"`
	Stores    []StoreRef `json:"stores"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BookService validates book input and orchestrates the books repository.
type BookService struct {
	repo *books.Repository
}

// NewBookService creates a new book service.
func NewBookService(repo *books.Repository) *BookService {
	return &BookService{repo: repo}
}

// Index returns all non-deleted books with their stores. No pagination or
// filtering; ordering follows storage order.
func (s *BookService) Index() ([]BookResponse, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	list := make([]BookResponse, 0, len(rows))
	for i := range rows {
		list = append(list, projectBook(&rows[i]))
	}
	return list, nil
}

// Show returns a single non-deleted book with its stores.
func (s *BookService) Show(id uint) (*BookResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Book"}
		}
		return nil, fmt.Errorf("failed to load book: %w", err)
	}

	resp := projectBook(row)
	return &resp, nil
}

// Create validates the input and persists a new book. Freshly created books
// have no store associations.
func (s *BookService) Create(in BookInput) (*BookResponse, error) {
	value, verr := validateBook(in)
	if verr != nil {
		return nil, verr
	}

	book := &entities.Book{
		Name:  in.Name,
		ISBN:  in.ISBN,
		Value: value,
	}
	if err := s.repo.Create(book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	resp := projectBook(book)
	return &resp, nil
}

// Update validates the input first and only then checks existence, matching
// the documented operation order. Soft-deleted books are not found.
func (s *BookService) Update(id uint, in BookInput) (*BookResponse, error) {
	value, verr := validateBook(in)
	if verr != nil {
		return nil, verr
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Book"}
		}
		return nil, fmt.Errorf("failed to load book: %w", err)
	}

	row.Name = in.Name
	row.ISBN = in.ISBN
	row.Value = value
	if err := s.repo.Update(row); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	resp := projectBook(row)
	return &resp, nil
}

// Destroy soft-deletes the book. The row stays in storage with deleted_at
// set and disappears from index, show and association listings.
func (s *BookService) Destroy(id uint) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Book"}
		}
		return fmt.Errorf("failed to load book: %w", err)
	}

	if err := s.repo.SoftDelete(row); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}

// validateBook runs the rule table and parses the validated value.
func validateBook(in BookInput) (float64, error) {
	errs := validation.Check(map[string]string{
		"name":  in.Name,
		"isbn":  in.ISBN,
		"value": in.Value.String(),
	}, bookRules)
	if errs.Any() {
		return 0, &validation.Error{Fields: errs}
	}

	value, err := strconv.ParseFloat(in.Value.String(), 64)
	if err != nil {
		// Unreachable after the decimal rule passed, but guard anyway.
		return 0, &validation.Error{Fields: validation.Errors{
			"value": {"The value field must have 2 decimal places."},
		}}
	}
	return value, nil
}

func projectBook(book *entities.Book) BookResponse {
	stores := make([]StoreRef, 0, len(book.Stores))
	for _, store := range book.Stores {
		stores = append(stores, StoreRef{
			ID:      store.ID,
			Name:    store.Name,
			Address: store.Address,
		})
	}

	return BookResponse{
		ID:        book.ID,
		Name:      book.Name,
		ISBN:      book.ISBN,
		Value:     book.Value,
		Stores:    stores,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}
