package entities

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:255" json:"name"`
	Email        string      `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string      `gorm:"size:255" json:"-"` // bcrypt hash, hidden from JSON
	Tokens       []AuthToken `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// AuthToken is one issued bearer credential. A user may hold several at once;
// logout removes all of them. Only the SHA-256 hash of the token is stored.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;size:64" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:512" json:"name"`
	ISBN      string         `gorm:"index;size:13" json:"isbn"`
	Value     float64        `json:"value"`
	Stores    []Store        `gorm:"many2many:book_store;" json:"stores,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Store struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255" json:"name"`
	Address   string         `gorm:"size:512" json:"address"`
	Books     []Book         `gorm:"many2many:book_store;" json:"books,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BookStore is the book<->store junction table. It carries its own id and
// timestamps, so it is registered as a custom join table in the database
// package rather than letting GORM generate a bare two-column table.
type BookStore struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"index" json:"book_id"`
	StoreID   uint      `gorm:"index" json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the singular table name used by the original schema.
func (BookStore) TableName() string {
	return "book_store"
}
