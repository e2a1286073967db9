package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/metrics"
	"github.com/bookwise/recommender/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookRepository is read-only access to the books table
type BookRepository interface {
	// GetBook returns ErrBookNotFound when no row has the given id
	GetBook(ctx context.Context, id string) (*models.Book, error)
	// GetBooksExcept returns every other book, newest first with id as tie-break
	GetBooksExcept(ctx context.Context, id string) ([]*models.Book, error)

	ListGenres(ctx context.Context) ([]string, error)
	SearchBooks(ctx context.Context, filter BookFilter) ([]*models.Book, error)
}

// bookRepository implements BookRepository with GORM
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// withConnection runs fn on one pooled connection which is handed back to the
// pool on every return path, and records query metrics.
func (r *bookRepository) withConnection(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Connection(fn)
	metrics.RecordDatabaseQuery(op, time.Since(start), err)
	return err
}

// GetBook gets a book by ID
func (r *bookRepository) GetBook(ctx context.Context, id string) (*models.Book, error) {
	// Ids are UUIDs; anything else cannot match a row and would only make
	// Postgres reject the query.
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrBookNotFound
	}

	var book models.Book
	err = r.withConnection(ctx, "get_book", func(tx *gorm.DB) error {
		return tx.Where("id = ?", parsed.String()).Take(&book).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, storeError("get book", err)
	}

	if err := book.Validate(); err != nil {
		logger.Log.Warn("Source book row is incomplete", logger.WithBookID(id), zap.Error(err))
	}
	return &book, nil
}

// GetBooksExcept gets all books other than the given one
func (r *bookRepository) GetBooksExcept(ctx context.Context, id string) ([]*models.Book, error) {
	var books []*models.Book
	err := r.withConnection(ctx, "get_books_except", func(tx *gorm.DB) error {
		return tx.Where("id <> ?", id).
			Order("created_at DESC").
			Order("id ASC").
			Find(&books).Error
	})
	if err != nil {
		return nil, storeError("list books", err)
	}

	return dropIncomplete(books), nil
}

// ListGenres returns the distinct genre values in the catalogue, sorted
func (r *bookRepository) ListGenres(ctx context.Context) ([]string, error) {
	var genres []string
	err := r.withConnection(ctx, "list_genres", func(tx *gorm.DB) error {
		return tx.Model(&models.Book{}).
			Distinct("genre").
			Order("genre ASC").
			Pluck("genre", &genres).Error
	})
	if err != nil {
		return nil, storeError("list genres", err)
	}
	return genres, nil
}

// SearchBooks runs a filtered catalogue query
func (r *bookRepository) SearchBooks(ctx context.Context, filter BookFilter) ([]*models.Book, error) {
	filter = filter.Normalize()

	var books []*models.Book
	err := r.withConnection(ctx, "search_books", func(tx *gorm.DB) error {
		query := tx.Model(&models.Book{})

		if filter.Genre != "" {
			query = query.Where("genre = ?", filter.Genre)
		}
		if filter.Search != "" {
			pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
			query = query.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(author) LIKE ? ESCAPE '!')", pattern, pattern)
		}
		if filter.FirstLetter != "" {
			query = query.Where("LOWER(title) LIKE ? ESCAPE '!'", escapeLike(strings.ToLower(filter.FirstLetter))+"%")
		}

		switch {
		case filter.MinRating != nil && filter.MaxRating != nil && *filter.MinRating == *filter.MaxRating:
			query = query.Where("rating = ?", *filter.MinRating)
		default:
			if filter.MinRating != nil {
				query = query.Where("rating >= ?", *filter.MinRating)
			}
			if filter.MaxRating != nil {
				query = query.Where("rating <= ?", *filter.MaxRating)
			}
		}

		switch filter.Availability {
		case AvailabilityAvailable:
			query = query.Where("available_copies >= 1")
		case AvailabilityUnavailable:
			query = query.Where("available_copies = 0")
		}

		return query.Order(filter.orderClause()).Find(&books).Error
	})
	if err != nil {
		return nil, storeError("search books", err)
	}

	return dropIncomplete(books), nil
}

// dropIncomplete filters out rows that fail validation, logging each one
func dropIncomplete(books []*models.Book) []*models.Book {
	valid := books[:0]
	for _, b := range books {
		if err := b.Validate(); err != nil {
			logger.Log.Warn("Skipping incomplete book row", logger.WithBookID(b.ID), zap.Error(err))
			continue
		}
		valid = append(valid, b)
	}
	return valid
}
