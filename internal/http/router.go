package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/services"
)

// RouterConfig carries the dependencies the router needs.
type RouterConfig struct {
	Database     *database.Database
	AuthService  *auth.Service
	BookService  *services.BookService
	StoreService *services.StoreService
	Version      string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Every /api path except register and login sits behind the bearer-token
// middleware.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	middleware := auth.NewMiddleware(cfg.AuthService)
	router.Use(middleware.Handler())

	authController := NewAuthController(cfg.AuthService)
	booksController := NewBooksController(cfg.BookService)
	storesController := NewStoresController(cfg.StoreService)
	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Auth endpoints
	router.POST("/api/user/register", authController.Register)
	router.POST("/api/user/login", authController.Login)
	router.DELETE("/api/user/logout", authController.Logout)

	// Book endpoints
	router.GET("/api/books", booksController.Index)
	router.GET("/api/books/:id", booksController.Show)
	router.POST("/api/books", booksController.Create)
	router.PUT("/api/books/:id", booksController.Update)
	router.DELETE("/api/books/:id", booksController.Destroy)

	// Store endpoints
	router.GET("/api/stores", storesController.Index)
	router.GET("/api/stores/:id", storesController.Show)
	router.POST("/api/stores", storesController.Create)
	router.PUT("/api/stores/:id", storesController.Update)
	router.DELETE("/api/stores/:id", storesController.Destroy)

	return router
}
