package kernel

import (
	"context"
	"fmt"
	"time"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/database"
	"github.com/bookwise/recommender/internal/handlers"
	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/metrics"
	"github.com/bookwise/recommender/internal/recommendations"
	"github.com/bookwise/recommender/internal/repository"
	"github.com/bookwise/recommender/internal/similarity"
	"github.com/bookwise/recommender/internal/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startupPingTimeout = 3 * time.Second

// OpenDatabase opens the configured store, registering the GORM tracing
// plugin when telemetry is on, and schedules the pool to close on Cleanup
func (k *Kernel) OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	opts := database.Options{LogLevel: cfg.Log.Level}
	if cfg.Telemetry.Enabled {
		opts.Plugins = append(opts.Plugins, telemetry.GORMTracingPlugin())
	}

	db, err := database.Open(cfg.Database, opts)
	if err != nil {
		return nil, err
	}

	k.SetDB(db)
	k.OnCleanup(func(context.Context) error {
		return database.Close(db)
	})
	return db, nil
}

// Boot wires the full recommendation stack from configuration. The caller
// owns the returned kernel and must call Cleanup.
func Boot(cfg *config.Config) (*Kernel, error) {
	k := New().SetConfig(cfg).SetLogger(logger.Log)

	db, err := k.OpenDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), startupPingTimeout)
	if err := database.Ping(pingCtx, db); err != nil {
		k.Logger().Warn("Database unreachable at startup, serving with health reporting disconnected",
			zap.Error(err),
		)
	}
	cancel()

	table := similarity.LoadTableOrDefault(cfg.GenreRelationshipsPath, k.Logger())
	metrics.SetSimilarityTableRelations(table.Len())
	k.Logger().Info("Genre similarity table loaded",
		zap.String("source", table.Source()),
		zap.Int("relations", table.Len()),
	)

	k.Wire(repository.NewBookRepository(db), similarity.NewScorer(table))

	if err := k.Validate(); err != nil {
		_ = k.Cleanup(context.Background())
		return nil, err
	}
	return k, nil
}

// Wire registers the repository and scorer and builds the engine on top of
// them using the kernel's configuration
func (k *Kernel) Wire(books repository.BookRepository, scorer *similarity.Scorer) *Kernel {
	defaultLimit, maxLimit := 0, 0
	if cfg := k.Config(); cfg != nil {
		defaultLimit, maxLimit = cfg.DefaultRecommendations, cfg.MaxRecommendations
	}

	return k.SetBooks(books).
		SetScorer(scorer).
		SetEngine(recommendations.NewEngine(books, scorer, defaultLimit, maxLimit))
}

// Handlers builds the HTTP handlers over the wired dependencies
func (k *Kernel) Handlers() *handlers.Handlers {
	h := handlers.NewHandlers(k.Engine(), k.Books(), k.Config())
	if db := k.DB(); db != nil {
		h.SetPinger(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		})
	}
	return h
}
