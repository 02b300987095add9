package services

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/validation"
)

func setupBookService(t *testing.T) (*BookService, *books.Repository, *gorm.DB, func()) {
	t.Helper()
	dbPath := "./test_book_service_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := books.NewRepository(db.DB)
	service := NewBookService(repo)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return service, repo, db.DB, cleanup
}

func validBookInput() BookInput {
	return BookInput{Name: "Book One", ISBN: "1234567890123", Value: "100.00"}
}

func TestBookService_Create(t *testing.T) {
	t.Run("persists and returns the book without associations", func(t *testing.T) {
		service, _, _, cleanup := setupBookService(t)
		defer cleanup()

		book, err := service.Create(BookInput{Name: "X", ISBN: "1234567890123", Value: "9.99"})

		require.NoError(t, err)
		assert.NotZero(t, book.ID)
		assert.Equal(t, "X", book.Name)
		assert.Equal(t, "1234567890123", book.ISBN)
		assert.Equal(t, 9.99, book.Value)
		assert.Empty(t, book.Stores)
		assert.NotNil(t, book.Stores) // serializes as [] rather than null
	})

	t.Run("collects every invalid field without writing", func(t *testing.T) {
		service, repo, _, cleanup := setupBookService(t)
		defer cleanup()

		_, err := service.Create(BookInput{Name: "", ISBN: "12345", Value: "bzzzzz"})

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
		assert.Contains(t, verr.Fields, "isbn")
		assert.Contains(t, verr.Fields, "value")

		all, err := repo.GetAll()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("duplicate ISBNs are allowed", func(t *testing.T) {
		service, _, _, cleanup := setupBookService(t)
		defer cleanup()

		_, err := service.Create(validBookInput())
		require.NoError(t, err)
		_, err = service.Create(validBookInput())
		assert.NoError(t, err)
	})
}

func TestBookService_ShowRoundTrip(t *testing.T) {
	service, _, _, cleanup := setupBookService(t)
	defer cleanup()

	created, err := service.Create(validBookInput())
	require.NoError(t, err)

	shown, err := service.Show(created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.Name, shown.Name)
	assert.Equal(t, created.ISBN, shown.ISBN)
	assert.Equal(t, created.Value, shown.Value)
	assert.Empty(t, shown.Stores)
}

func TestBookService_Show_NotFound(t *testing.T) {
	service, _, _, cleanup := setupBookService(t)
	defer cleanup()

	_, err := service.Show(9999)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Book not found", nf.Error())
}

func TestBookService_Index_ProjectsStores(t *testing.T) {
	service, repo, db, cleanup := setupBookService(t)
	defer cleanup()

	created, err := service.Create(validBookInput())
	require.NoError(t, err)

	store := entities.Store{Name: "Store One", Address: "123 Main Street"}
	require.NoError(t, db.Create(&store).Error)
	require.NoError(t, repo.LinkStore(created.ID, store.ID))

	list, err := service.Index()

	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Stores, 1)
	assert.Equal(t, StoreRef{ID: store.ID, Name: "Store One", Address: "123 Main Street"}, list[0].Stores[0])
}

func TestBookService_Update(t *testing.T) {
	t.Run("mutates matched fields", func(t *testing.T) {
		service, _, _, cleanup := setupBookService(t)
		defer cleanup()

		created, err := service.Create(validBookInput())
		require.NoError(t, err)

		updated, err := service.Update(created.ID, BookInput{Name: "Renamed", ISBN: "9999999999999", Value: "49.99"})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, "9999999999999", updated.ISBN)
		assert.Equal(t, 49.99, updated.Value)
	})

	t.Run("validation failure leaves the book unchanged", func(t *testing.T) {
		service, _, _, cleanup := setupBookService(t)
		defer cleanup()

		created, err := service.Create(validBookInput())
		require.NoError(t, err)

		_, err = service.Update(created.ID, BookInput{Name: "Renamed", ISBN: "123", Value: "49.99"})

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "isbn")

		shown, err := service.Show(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Book One", shown.Name)
		assert.Equal(t, "1234567890123", shown.ISBN)
	})

	t.Run("validation runs before the existence check", func(t *testing.T) {
		service, _, _, cleanup := setupBookService(t)
		defer cleanup()

		_, err := service.Update(9999, BookInput{Name: "", ISBN: "123", Value: "x"})

		var verr *validation.Error
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("missing id returns not found", func(t *testing.T) {
		service, _, _, cleanup := setupBookService(t)
		defer cleanup()

		_, err := service.Update(9999, validBookInput())

		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func TestBookService_Destroy(t *testing.T) {
	t.Run("soft deletes and hides the book", func(t *testing.T) {
		service, _, db, cleanup := setupBookService(t)
		defer cleanup()

		created, err := service.Create(validBookInput())
		require.NoError(t, err)

		require.NoError(t, service.Destroy(created.ID))

		_, err = service.Show(created.ID)
		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf)

		list, err := service.Index()
		require.NoError(t, err)
		assert.Empty(t, list)

		var raw entities.Book
		require.NoError(t, db.Unscoped().First(&raw, created.ID).Error)
		assert.True(t, raw.DeletedAt.Valid)
	})

	t.Run("second destroy returns not found", func(t *testing.T) {
		service, _, _, cleanup := setupBookService(t)
		defer cleanup()

		created, err := service.Create(validBookInput())
		require.NoError(t, err)

		require.NoError(t, service.Destroy(created.ID))

		err = service.Destroy(created.ID)
		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}
