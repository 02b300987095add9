package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstore/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// The book<->store junction carries its own id and timestamps, so it must
	// be registered before migration or GORM generates a bare two-column table.
	if err := db.SetupJoinTable(&entities.Book{}, "Stores", &entities.BookStore{}); err != nil {
		return nil, fmt.Errorf("failed to set up book_store join table: %w", err)
	}
	if err := db.SetupJoinTable(&entities.Store{}, "Books", &entities.BookStore{}); err != nil {
		return nil, fmt.Errorf("failed to set up book_store join table: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.AuthToken{},
		&entities.Book{},
		&entities.Store{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
