package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/entities"
)

func TestStoresController_Index(t *testing.T) {
	t.Run("empty catalogue returns an empty list", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		w := api.request(t, "GET", "/api/stores", "", token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("includes associated books with the restricted field set", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		store := entities.Store{Name: "Store One", Address: "123 Main Street"}
		require.NoError(t, api.stores.Create(&store))
		book := entities.Book{Name: "Book One", ISBN: "1234567890123", Value: 100.00}
		require.NoError(t, api.books.Create(&book))
		require.NoError(t, api.stores.LinkBook(store.ID, book.ID))

		w := api.request(t, "GET", "/api/stores", "", token)
		require.Equal(t, http.StatusOK, w.Code)

		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "Store One", list[0]["name"])

		booksField := list[0]["books"].([]any)
		require.Len(t, booksField, 1)
		linked := booksField[0].(map[string]any)
		assert.Equal(t, "Book One", linked["name"])
		assert.Equal(t, "1234567890123", linked["isbn"])
		assert.Equal(t, 100.00, linked["value"])
		assert.NotContains(t, linked, "created_at")
		assert.NotContains(t, linked, "stores")
	})

	t.Run("excludes soft-deleted stores", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		store := entities.Store{Name: "Gone", Address: "Nowhere"}
		require.NoError(t, api.stores.Create(&store))
		require.NoError(t, api.stores.SoftDelete(&store))

		w := api.request(t, "GET", "/api/stores", "", token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestStoresController_Show(t *testing.T) {
	t.Run("returns the store with empty books when unlinked", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		w := api.request(t, "POST", "/api/stores",
			`{"name":"Store One","address":"123 Main Street"}`, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		created := decodeJSON(t, w)
		id := created["id"].(float64)
		assert.NotZero(t, id)

		w = api.request(t, "GET", fmt.Sprintf("/api/stores/%.0f", id), "", token)
		require.Equal(t, http.StatusOK, w.Code)

		shown := decodeJSON(t, w)
		assert.Equal(t, "Store One", shown["name"])
		assert.Equal(t, "123 Main Street", shown["address"])
		assert.Equal(t, []any{}, shown["books"])
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		w := api.request(t, "GET", "/api/stores/99999", "", token)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Store not found"}`, w.Body.String())
	})

	t.Run("soft-deleted id returns 404", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		store := entities.Store{Name: "Gone", Address: "Nowhere"}
		require.NoError(t, api.stores.Create(&store))
		require.NoError(t, api.stores.SoftDelete(&store))

		w := api.request(t, "GET", fmt.Sprintf("/api/stores/%d", store.ID), "", token)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStoresController_Create(t *testing.T) {
	t.Run("valid payload persists the store", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		w := api.request(t, "POST", "/api/stores",
			`{"name":"Create Store Test","address":"456 Side Street"}`, token)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		created := decodeJSON(t, w)
		assert.NotZero(t, created["id"])
		assert.Equal(t, "Create Store Test", created["name"])
		assert.Equal(t, "456 Side Street", created["address"])

		all, err := api.stores.GetAll()
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("invalid payload returns 422 with field errors", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		w := api.request(t, "POST", "/api/stores", `{"name":"","address":""}`, token)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		response := decodeJSON(t, w)
		errs := response["errors"].(map[string]any)
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "address")

		all, err := api.stores.GetAll()
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestStoresController_Update(t *testing.T) {
	t.Run("valid payload mutates the store", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		store := entities.Store{Name: "Store One", Address: "123 Main Street"}
		require.NoError(t, api.stores.Create(&store))

		w := api.request(t, "PUT", fmt.Sprintf("/api/stores/%d", store.ID),
			`{"name":"Updated","address":"789 New Road"}`, token)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decodeJSON(t, w)
		assert.Equal(t, "Updated", updated["name"])
		assert.Equal(t, "789 New Road", updated["address"])
	})

	t.Run("missing address returns 422 and leaves the store unchanged", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		store := entities.Store{Name: "Store One", Address: "123 Main Street"}
		require.NoError(t, api.stores.Create(&store))

		w := api.request(t, "PUT", fmt.Sprintf("/api/stores/%d", store.ID),
			`{"name":"Updated","address":""}`, token)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		response := decodeJSON(t, w)
		errs := response["errors"].(map[string]any)
		assert.Contains(t, errs, "address")

		unchanged, err := api.stores.GetByID(store.ID)
		require.NoError(t, err)
		assert.Equal(t, "Store One", unchanged.Name)
		assert.Equal(t, "123 Main Street", unchanged.Address)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		w := api.request(t, "PUT", "/api/stores/99999",
			`{"name":"Updated","address":"789 New Road"}`, token)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Store not found"}`, w.Body.String())
	})
}

func TestStoresController_Destroy(t *testing.T) {
	t.Run("soft deletes and reports success", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		store := entities.Store{Name: "Store One", Address: "123 Main Street"}
		require.NoError(t, api.stores.Create(&store))

		w := api.request(t, "DELETE", fmt.Sprintf("/api/stores/%d", store.ID), "", token)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Store deleted"}`, w.Body.String())

		w = api.request(t, "GET", fmt.Sprintf("/api/stores/%d", store.ID), "", token)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var raw entities.Store
		require.NoError(t, api.db.DB.Unscoped().First(&raw, store.ID).Error)
		assert.True(t, raw.DeletedAt.Valid)
	})

	t.Run("deleting a linked store keeps the book visible", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		store := entities.Store{Name: "Store One", Address: "123 Main Street"}
		require.NoError(t, api.stores.Create(&store))
		book := entities.Book{Name: "Book One", ISBN: "1234567890123", Value: 100.00}
		require.NoError(t, api.books.Create(&book))
		require.NoError(t, api.stores.LinkBook(store.ID, book.ID))

		w := api.request(t, "DELETE", fmt.Sprintf("/api/stores/%d", store.ID), "", token)
		require.Equal(t, http.StatusOK, w.Code)

		// The book survives, its store list no longer shows the deleted store
		w = api.request(t, "GET", fmt.Sprintf("/api/books/%d", book.ID), "", token)
		require.Equal(t, http.StatusOK, w.Code)
		shown := decodeJSON(t, w)
		assert.Equal(t, []any{}, shown["stores"])
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()
		token := api.registerTestUser(t)

		w := api.request(t, "DELETE", "/api/stores/99999", "", token)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Store not found"}`, w.Body.String())
	})
}
