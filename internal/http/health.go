package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/database"
)

// HealthController reports service and database health.
type HealthController struct {
	db      *database.Database
	version string
}

// NewHealthController creates a new health controller.
func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status handles GET /health.
func (controller *HealthController) Status(c *gin.Context) {
	sqlDB, err := controller.db.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"version": controller.version,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": controller.version,
	})
}
