package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database/stores"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/validation"
)

var storeRules = validation.Rules{
	"name":    {Required: true, Kind: validation.KindString},
	"address": {Required: true, Kind: validation.KindString},
}

// StoreInput is the payload for creating or updating a store.
type StoreInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// BookRef is the restricted projection of a book inside a store response.
type BookRef struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	ISBN  string  `json:"isbn"`
	Value float64 `json:"value"`
}

// StoreResponse is the API shape of a store, with its books projected down
// to the restricted field set.
type StoreResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Books     []BookRef `json:"books"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreService validates store input and orchestrates the stores repository.
type StoreService struct {
	repo *stores.Repository
}

// NewStoreService creates a new store service.
func NewStoreService(repo *stores.Repository) *StoreService {
	return &StoreService{repo: repo}
}

// Index returns all non-deleted stores with their books.
func (s *StoreService) Index() ([]StoreResponse, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	list := make([]StoreResponse, 0, len(rows))
	for i := range rows {
		list = append(list, projectStore(&rows[i]))
	}
	return list, nil
}

// Show returns a single non-deleted store with its books.
func (s *StoreService) Show(id uint) (*StoreResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Store"}
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	resp := projectStore(row)
	return &resp, nil
}

// Create validates the input and persists a new store.
func (s *StoreService) Create(in StoreInput) (*StoreResponse, error) {
	if verr := validateStore(in); verr != nil {
		return nil, verr
	}

	store := &entities.Store{
		Name:    in.Name,
		Address: in.Address,
	}
	if err := s.repo.Create(store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	resp := projectStore(store)
	return &resp, nil
}

// Update validates the input first and only then checks existence.
// Soft-deleted stores are not found.
func (s *StoreService) Update(id uint, in StoreInput) (*StoreResponse, error) {
	if verr := validateStore(in); verr != nil {
		return nil, verr
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Store"}
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	row.Name = in.Name
	row.Address = in.Address
	if err := s.repo.Update(row); err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	resp := projectStore(row)
	return &resp, nil
}

// Destroy soft-deletes the store.
func (s *StoreService) Destroy(id uint) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Store"}
		}
		return fmt.Errorf("failed to load store: %w", err)
	}

	if err := s.repo.SoftDelete(row); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return nil
}

func validateStore(in StoreInput) error {
	errs := validation.Check(map[string]string{
		"name":    in.Name,
		"address": in.Address,
	}, storeRules)
	if errs.Any() {
		return &validation.Error{Fields: errs}
	}
	return nil
}

func projectStore(store *entities.Store) StoreResponse {
	books := make([]BookRef, 0, len(store.Books))
	for _, book := range store.Books {
		books = append(books, BookRef{
			ID:    book.ID,
			Name:  book.Name,
			ISBN:  book.ISBN,
			Value: book.Value,
		})
	}

	return StoreResponse{
		ID:        store.ID,
		Name:      store.Name,
		Address:   store.Address,
		Books:     books,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}
