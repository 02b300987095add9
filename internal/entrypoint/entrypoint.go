package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/stores"
	"github.com/mrlokans/bookstore/internal/database/tokens"
	"github.com/mrlokans/bookstore/internal/database/users"
	http_controllers "github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/scheduler"
	"github.com/mrlokans/bookstore/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts it down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookstore API v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	userRepo := users.NewRepository(db.DB)
	tokenRepo := tokens.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	storeRepo := stores.NewRepository(db.DB)

	authService := auth.NewService(userRepo, tokenRepo, cfg.Auth)
	bookService := services.NewBookService(bookRepo)
	storeService := services.NewStoreService(storeRepo)

	cleanup := scheduler.NewTokenCleanupScheduler(tokenRepo, *cfg)
	if err := cleanup.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start token cleanup scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:     db,
		AuthService:  authService,
		BookService:  bookService,
		StoreService: storeService,
		Version:      version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		cleanup.Stop()
	})
}
