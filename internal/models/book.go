package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrIncompleteBook is returned by Book.Validate for rows missing identity fields
var ErrIncompleteBook = errors.New("book row is missing required fields")

// Book is a row of the books table. The table is owned by the library
// application; this service only reads it (and creates it for local development).
type Book struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Author          string    `gorm:"size:255;not null" json:"author"`
	Genre           string    `gorm:"type:text;not null" json:"genre"` // may hold several comma-separated genres
	Rating          int       `gorm:"not null" json:"rating"`
	CoverURL        string    `gorm:"column:cover_url;type:text;not null" json:"coverUrl"`
	CoverColor      string    `gorm:"column:cover_color;size:7;not null" json:"coverColor"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	TotalCopies     int       `gorm:"not null;default:1" json:"totalCopies"`
	AvailableCopies int       `gorm:"not null;default:0" json:"availableCopies"`
	VideoURL        *string   `gorm:"column:video_url;type:text" json:"videoUrl"`
	Summary         *string   `gorm:"type:text" json:"summary"`
	CreatedAt       time.Time `gorm:"index" json:"createdAt"`
}

// TableName pins the table name used by the library application
func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns an id when seeding; production rows already carry one
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// Validate rejects rows that cannot be shown to a reader
func (b *Book) Validate() error {
	if strings.TrimSpace(b.ID) == "" || strings.TrimSpace(b.Title) == "" {
		return ErrIncompleteBook
	}
	return nil
}

// IsAvailable reports whether at least one copy can be borrowed
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}
