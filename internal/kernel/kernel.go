// Package kernel holds the recommender's wired dependencies and their
// shutdown hooks.
package kernel

import (
	"context"
	"errors"
	"sync"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/recommendations"
	"github.com/bookwise/recommender/internal/repository"
	"github.com/bookwise/recommender/internal/similarity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Kernel holds all application dependencies and provides type-safe access
type Kernel struct {
	config *config.Config
	db     *gorm.DB
	logger *zap.Logger

	scorer *similarity.Scorer
	books  repository.BookRepository
	engine *recommendations.Engine

	// Lifecycle hooks
	cleanupFuncs []func(context.Context) error
	mu           sync.RWMutex
}

// New creates a new empty kernel.
// Services should be registered using Set* methods.
func New() *Kernel {
	return &Kernel{}
}

// SetConfig registers the loaded configuration
func (k *Kernel) SetConfig(cfg *config.Config) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.config = cfg
	return k
}

// Config returns the configuration
func (k *Kernel) Config() *config.Config {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.config
}

// SetDB registers the database connection
func (k *Kernel) SetDB(db *gorm.DB) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.db = db
	return k
}

// DB returns the database connection
func (k *Kernel) DB() *gorm.DB {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.db
}

// SetLogger registers the logger
func (k *Kernel) SetLogger(l *zap.Logger) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.logger = l
	return k
}

// Logger returns the logger instance, falling back to the global logger
func (k *Kernel) Logger() *zap.Logger {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.loggerLocked()
}

func (k *Kernel) loggerLocked() *zap.Logger {
	if k.logger == nil {
		return logger.Log
	}
	return k.logger
}

// SetScorer registers the genre similarity scorer
func (k *Kernel) SetScorer(s *similarity.Scorer) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.scorer = s
	return k
}

// Scorer returns the genre similarity scorer
func (k *Kernel) Scorer() *similarity.Scorer {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.scorer
}

// SetBooks registers the book repository
func (k *Kernel) SetBooks(repo repository.BookRepository) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.books = repo
	return k
}

// Books returns the book repository
func (k *Kernel) Books() repository.BookRepository {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.books
}

// SetEngine registers the recommendation engine
func (k *Kernel) SetEngine(e *recommendations.Engine) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.engine = e
	return k
}

// Engine returns the recommendation engine
func (k *Kernel) Engine() *recommendations.Engine {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.engine
}

// OnCleanup registers a cleanup function to be called during shutdown.
// Cleanup functions are called in LIFO order (last registered, first cleaned up).
func (k *Kernel) OnCleanup(fn func(context.Context) error) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cleanupFuncs = append(k.cleanupFuncs, fn)
	return k
}

// Cleanup runs every registered cleanup function in reverse order of
// registration. A failing function does not stop the rest; all failures are
// returned joined.
func (k *Kernel) Cleanup(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	var errs []error
	for i := len(k.cleanupFuncs) - 1; i >= 0; i-- {
		if err := k.cleanupFuncs[i](ctx); err != nil {
			k.loggerLocked().Error("Cleanup function failed", zap.Int("index", i), zap.Error(err))
			errs = append(errs, err)
		}
	}
	k.cleanupFuncs = nil

	return errors.Join(errs...)
}

// Validate checks that all required dependencies are registered.
// This should be called after initialization and before starting the server.
func (k *Kernel) Validate() error {
	k.mu.RLock()
	defer k.mu.RUnlock()

	missingDeps := []string{}
	if k.config == nil {
		missingDeps = append(missingDeps, "configuration")
	}
	if k.books == nil {
		missingDeps = append(missingDeps, "book repository")
	}
	if k.scorer == nil {
		missingDeps = append(missingDeps, "similarity scorer")
	}
	if k.engine == nil {
		missingDeps = append(missingDeps, "recommendation engine")
	}

	if len(missingDeps) > 0 {
		return &MissingDependenciesError{Missing: missingDeps}
	}
	return nil
}
