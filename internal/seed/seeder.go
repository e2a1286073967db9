package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/models"
	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const batchSize = 100

// Seeder handles database seeding operations
type Seeder struct {
	db     *gorm.DB
	faker  *gofakeit.Faker
	genres []string
}

// NewSeeder creates a new seeder instance. Genres are the lowercase labels
// books are drawn from; a zero seed gives different data on every run.
func NewSeeder(db *gorm.DB, genres []string, seed uint64) *Seeder {
	if len(genres) == 0 {
		genres = []string{"fiction"}
	}
	return &Seeder{
		db:     db,
		faker:  gofakeit.New(seed),
		genres: genres,
	}
}

// SeedDev fills a development database with count random books
func (s *Seeder) SeedDev(ctx context.Context, count int) ([]models.Book, error) {
	logger.Log.Info("Creating books...", zap.Int("count", count))

	books := make([]models.Book, 0, count)
	for i := 0; i < count; i++ {
		books = append(books, s.fakeBook())
	}

	if err := s.insert(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

// SeedTest creates a small fixed catalogue with known genre relationships.
// Titles that already exist are left alone.
func (s *Seeder) SeedTest(ctx context.Context) ([]models.Book, error) {
	specs := []struct {
		title  string
		author string
		genre  string
	}{
		{"The Final Whistle", "Alice Smith", "Sport"},
		{"Ninety Minutes", "Bob Johnson", "Football"},
		{"Match Point", "Charlie Brown", "Tennis"},
		{"Canvas Dreams", "Diana Prince", "Art"},
		{"The Silent Staircase", "Eve Wilson", "Mystery, Thriller"},
		{"Night Terrors", "Frank Moore", "Horror"},
		{"Red Giants", "Grace Lee", "Astronomy"},
	}

	db := s.db.WithContext(ctx)
	var books []models.Book
	for i, spec := range specs {
		var existing models.Book
		err := db.Where("title = ?", spec.title).Take(&existing).Error
		if err == nil {
			books = append(books, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up %q: %w", spec.title, err)
		}

		book := s.fakeBook()
		book.Title = spec.title
		book.Author = spec.author
		book.Genre = spec.genre
		// Stable fetch order: first spec is newest
		book.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Duration(i) * time.Hour)

		if err := db.Create(&book).Error; err != nil {
			return nil, fmt.Errorf("failed to create test book %q: %w", spec.title, err)
		}
		books = append(books, book)
	}

	logger.Log.Info("Test books ready", zap.Int("count", len(books)))
	return books, nil
}

// Clean removes all books (use with caution!)
func (s *Seeder) Clean(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM books").Error; err != nil {
		return fmt.Errorf("failed to clean books: %w", err)
	}
	return nil
}

func (s *Seeder) insert(ctx context.Context, books []models.Book) error {
	if len(books) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&books, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert books: %w", err)
	}
	logger.Log.Info("Books created", zap.Int("count", len(books)))
	return nil
}

// fakeBook builds a random book; about one in five gets two genres
func (s *Seeder) fakeBook() models.Book {
	f := s.faker

	genre := displayGenre(f.RandomString(s.genres))
	if len(s.genres) > 1 && f.IntRange(1, 5) == 1 {
		second := displayGenre(f.RandomString(s.genres))
		if second != genre {
			genre = genre + ", " + second
		}
	}

	total := f.IntRange(1, 10)
	book := models.Book{
		Title:           f.BookTitle(),
		Author:          f.BookAuthor(),
		Genre:           genre,
		Rating:          f.IntRange(1, 5),
		CoverURL:        fmt.Sprintf("https://picsum.photos/seed/%s/400/600", f.LetterN(10)),
		CoverColor:      f.HexColor(),
		Description:     f.HipsterSentence() + " " + f.HipsterSentence(),
		TotalCopies:     total,
		AvailableCopies: f.IntRange(0, total),
		CreatedAt:       f.DateRange(time.Now().AddDate(-2, 0, 0), time.Now()).UTC(),
	}

	if f.Bool() {
		summary := f.HipsterSentence()
		book.Summary = &summary
	}
	if f.IntRange(1, 4) == 1 {
		video := fmt.Sprintf("https://videos.example.com/%s.mp4", f.UUID())
		book.VideoURL = &video
	}
	return book
}

// displayGenre turns a table label into a catalogue label: "science fiction" -> "Science Fiction"
func displayGenre(label string) string {
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
