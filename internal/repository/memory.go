package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bookwise/recommender/internal/models"
)

// MemoryBookRepository is an in-process BookRepository for tests and demos.
// It applies the same ordering rules as the GORM implementation.
type MemoryBookRepository struct {
	mu    sync.RWMutex
	books []*models.Book
	err   error
}

// NewMemoryBookRepository creates a repository holding the given books
func NewMemoryBookRepository(books ...*models.Book) *MemoryBookRepository {
	r := &MemoryBookRepository{}
	r.Add(books...)
	return r
}

// Add stores books, keeping fetch order (created_at DESC, id ASC)
func (r *MemoryBookRepository) Add(books ...*models.Book) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books = append(r.books, books...)
	sort.SliceStable(r.books, func(i, j int) bool {
		a, b := r.books[i], r.books[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// FailWith makes every subsequent call return err wrapped as ErrStoreUnavailable.
// Passing nil restores normal behaviour.
func (r *MemoryBookRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *MemoryBookRepository) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return storeError(op, err)
	}
	if r.err != nil {
		return storeError(op, r.err)
	}
	return nil
}

func (r *MemoryBookRepository) GetBook(ctx context.Context, id string) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.check(ctx, "get book"); err != nil {
		return nil, err
	}
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBookNotFound
}

func (r *MemoryBookRepository) GetBooksExcept(ctx context.Context, id string) ([]*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.check(ctx, "list books"); err != nil {
		return nil, err
	}
	books := make([]*models.Book, 0, len(r.books))
	for _, b := range r.books {
		if b.ID != id {
			books = append(books, b)
		}
	}
	return dropIncomplete(books), nil
}

func (r *MemoryBookRepository) ListGenres(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.check(ctx, "list genres"); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	genres := []string{}
	for _, b := range r.books {
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		genres = append(genres, b.Genre)
	}
	sort.Strings(genres)
	return genres, nil
}

func (r *MemoryBookRepository) SearchBooks(ctx context.Context, filter BookFilter) ([]*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.check(ctx, "search books"); err != nil {
		return nil, err
	}
	filter = filter.Normalize()

	books := []*models.Book{}
	for _, b := range r.books {
		if filter.matches(b) {
			books = append(books, b)
		}
	}

	less := filter.less()
	sort.SliceStable(books, func(i, j int) bool {
		return less(books[i], books[j])
	})
	return dropIncomplete(books), nil
}

func (f BookFilter) matches(b *models.Book) bool {
	if f.Genre != "" && b.Genre != f.Genre {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) {
			return false
		}
	}
	if f.FirstLetter != "" && !strings.HasPrefix(strings.ToLower(b.Title), strings.ToLower(f.FirstLetter)) {
		return false
	}
	if f.MinRating != nil && b.Rating < *f.MinRating {
		return false
	}
	if f.MaxRating != nil && b.Rating > *f.MaxRating {
		return false
	}
	switch f.Availability {
	case AvailabilityAvailable:
		return b.AvailableCopies >= 1
	case AvailabilityUnavailable:
		return b.AvailableCopies == 0
	}
	return true
}

// less mirrors orderClause for in-memory sorting
func (f BookFilter) less() func(a, b *models.Book) bool {
	desc := f.SortOrder == "desc"
	cmp := func(a, b *models.Book) int {
		switch f.SortBy {
		case "title":
			return strings.Compare(a.Title, b.Title)
		case "author":
			return strings.Compare(a.Author, b.Author)
		case "rating":
			return a.Rating - b.Rating
		case "availableCopies":
			return a.AvailableCopies - b.AvailableCopies
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	return func(a, b *models.Book) bool {
		c := cmp(a, b)
		if c == 0 {
			return a.ID < b.ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	}
}
