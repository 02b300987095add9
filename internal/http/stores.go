package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/services"
)

// StoresController handles the store CRUD endpoints.
type StoresController struct {
	service *services.StoreService
}

// NewStoresController creates a new stores controller.
func NewStoresController(service *services.StoreService) *StoresController {
	return &StoresController{service: service}
}

// Index handles GET /api/stores.
func (controller *StoresController) Index(c *gin.Context) {
	list, err := controller.service.Index()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Show handles GET /api/stores/:id.
func (controller *StoresController) Show(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Store not found"})
		return
	}

	store, err := controller.service.Show(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// Create handles POST /api/stores.
func (controller *StoresController) Create(c *gin.Context) {
	var in services.StoreInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	store, err := controller.service.Create(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// Update handles PUT /api/stores/:id.
func (controller *StoresController) Update(c *gin.Context) {
	var in services.StoreInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Store not found"})
		return
	}

	store, err := controller.service.Update(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// Destroy handles DELETE /api/stores/:id.
func (controller *StoresController) Destroy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Store not found"})
		return
	}

	if err := controller.service.Destroy(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}
