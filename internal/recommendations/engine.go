package recommendations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/metrics"
	"github.com/bookwise/recommender/internal/models"
	"github.com/bookwise/recommender/internal/repository"
	"github.com/bookwise/recommender/internal/similarity"
	"go.uber.org/zap"
)

// Recommendation outcomes, used as metric labels
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// ScoredBook is a candidate book with its similarity to the source book
type ScoredBook struct {
	Book  *models.Book
	Score float64
	Match similarity.Match
}

// Result is the ranked output of one recommendation request
type Result struct {
	Source          *models.Book
	Recommendations []ScoredBook
	Candidates      int
}

// Engine ranks books by genre similarity to a source book.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	repo         repository.BookRepository
	scorer       *similarity.Scorer
	defaultLimit int
	maxLimit     int
}

// NewEngine creates a recommendation engine. Non-positive limits fall back
// to 5 results by default and no upper bound.
func NewEngine(repo repository.BookRepository, scorer *similarity.Scorer, defaultLimit, maxLimit int) *Engine {
	if defaultLimit <= 0 {
		defaultLimit = 5
	}
	if maxLimit > 0 && defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &Engine{
		repo:         repo,
		scorer:       scorer,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Scorer returns the similarity scorer used for ranking
func (e *Engine) Scorer() *similarity.Scorer {
	return e.scorer
}

// DefaultLimit is the number of results returned when none is requested
func (e *Engine) DefaultLimit() int {
	return e.defaultLimit
}

// ParseLimit converts a raw query value into a usable limit. Missing,
// malformed and non-positive values become the default; large values are
// clamped to the configured maximum.
func (e *Engine) ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return e.defaultLimit
	}
	return e.clamp(n)
}

func (e *Engine) clamp(limit int) int {
	if limit <= 0 {
		return e.defaultLimit
	}
	if e.maxLimit > 0 && limit > e.maxLimit {
		return e.maxLimit
	}
	return limit
}

// Recommend returns up to limit books ordered by descending similarity to
// the book with the given id. Books with equal scores keep the repository's
// fetch order. Returns repository.ErrBookNotFound for unknown ids.
func (e *Engine) Recommend(ctx context.Context, bookID string, limit int) (*Result, error) {
	start := time.Now()
	limit = e.clamp(limit)

	source, err := e.repo.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			metrics.RecordRecommendation(OutcomeNotFound, 0, time.Since(start))
			return nil, err
		}
		metrics.RecordRecommendation(OutcomeError, 0, time.Since(start))
		return nil, fmt.Errorf("failed to load source book: %w", err)
	}

	candidates, err := e.repo.GetBooksExcept(ctx, source.ID)
	if err != nil {
		metrics.RecordRecommendation(OutcomeError, 0, time.Since(start))
		return nil, fmt.Errorf("failed to load candidate books: %w", err)
	}

	ranked := e.Rank(source, candidates)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	metrics.RecordRecommendation(OutcomeSuccess, len(candidates), time.Since(start))
	logger.Log.Debug("Recommendations computed",
		logger.WithBookID(source.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(ranked)),
		zap.Duration("duration", time.Since(start)),
	)

	return &Result{
		Source:          source,
		Recommendations: ranked,
		Candidates:      len(candidates),
	}, nil
}

// Rank scores every candidate against the source genre and sorts them by
// descending score. The sort is stable, so ties keep candidate order.
func (e *Engine) Rank(source *models.Book, candidates []*models.Book) []ScoredBook {
	ranked := make([]ScoredBook, 0, len(candidates))
	for _, c := range candidates {
		match := e.scorer.Explain(source.Genre, c.Genre)
		metrics.RecordSimilarityMatch(string(match.Kind))
		ranked = append(ranked, ScoredBook{Book: c, Score: match.Score, Match: match})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
