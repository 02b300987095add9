package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/services"
)

// BooksController handles the book CRUD endpoints.
type BooksController struct {
	service *services.BookService
}

// NewBooksController creates a new books controller.
func NewBooksController(service *services.BookService) *BooksController {
	return &BooksController{service: service}
}

// Index handles GET /api/books.
func (controller *BooksController) Index(c *gin.Context) {
	list, err := controller.service.Index()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Show handles GET /api/books/:id.
func (controller *BooksController) Show(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		return
	}

	book, err := controller.service.Show(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create handles POST /api/books.
func (controller *BooksController) Create(c *gin.Context) {
	var in services.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	book, err := controller.service.Create(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update handles PUT /api/books/:id.
func (controller *BooksController) Update(c *gin.Context) {
	var in services.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		return
	}

	book, err := controller.service.Update(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Destroy handles DELETE /api/books/:id.
func (controller *BooksController) Destroy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		return
	}

	if err := controller.service.Destroy(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}

// pathID parses the :id path parameter. A non-numeric id is indistinguishable
// from a missing resource as far as the API is concerned.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
