package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqlitePrefix = "sqlite://"

// Options tweak how Open builds the GORM handle
type Options struct {
	LogLevel string
	Plugins  []gorm.Plugin
}

// Open creates and configures the database connection pool.
// DSNs starting with sqlite:// open a local SQLite file (development only);
// anything else is handed to the Postgres driver. Open does not dial the
// server; use Ping to check connectivity.
func Open(cfg config.DatabaseConfig, opts Options) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	gormLogger := logger.NewGormLogger(logger.GormLevel(opts.LogLevel), cfg.SlowThreshold)

	db, err := gorm.Open(dialector(cfg.URL), &gorm.Config{
		Logger:               gormLogger,
		DisableAutomaticPing: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, plugin := range opts.Plugins {
		if err := db.Use(plugin); err != nil {
			return nil, fmt.Errorf("failed to register gorm plugin %s: %w", plugin.Name(), err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	logger.Log.Info("Database connection pool ready",
		zap.String("dialect", db.Dialector.Name()),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return db, nil
}

func dialector(url string) gorm.Dialector {
	if strings.HasPrefix(url, sqlitePrefix) {
		return sqlite.Open(strings.TrimPrefix(url, sqlitePrefix))
	}
	return postgres.Open(url)
}

// Migrate creates the books table and its indexes. Production tables are
// created by the library application; this exists for local and test databases.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := db.AutoMigrate(&models.Book{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Log.Info("Database migrations completed")
	return nil
}

// createIndexes creates the indexes the catalogue queries rely on
func createIndexes(db *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_books_genre ON books (genre)",
		"CREATE INDEX IF NOT EXISTS idx_books_title_lower ON books (LOWER(title))",
		"CREATE INDEX IF NOT EXISTS idx_books_author_lower ON books (LOWER(author))",
		"CREATE INDEX IF NOT EXISTS idx_books_rating ON books (rating)",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Ping checks database connectivity by checking a connection out of the pool
// and handing it straight back.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.PingContext(ctx)
}
