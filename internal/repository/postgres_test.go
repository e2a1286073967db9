package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/database"
	"github.com/bookwise/recommender/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// PostgresBookRepositoryTestSuite runs the repository against a real
// Postgres server. It skips when none is reachable.
type PostgresBookRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo BookRepository
	ctx  context.Context
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (suite *PostgresBookRepositoryTestSuite) SetupSuite() {
	host := getEnvOrDefault("POSTGRES_HOST", "localhost")
	port := getEnvOrDefault("POSTGRES_PORT", "5432")
	user := getEnvOrDefault("POSTGRES_USER", "postgres")
	password := getEnvOrDefault("POSTGRES_PASSWORD", "")
	dbname := getEnvOrDefault("POSTGRES_DB", "bookwise_test")

	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable connect_timeout=3", host, port, user, dbname)
	if password != "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=3", host, port, user, password, dbname)
	}

	db, err := database.Open(config.DatabaseConfig{URL: dsn, MaxOpenConns: 4}, database.Options{LogLevel: "error"})
	if err != nil {
		suite.T().Skipf("Skipping Postgres tests: database not available (%v)", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := database.Ping(ctx, db); err != nil {
		_ = database.Close(db)
		suite.T().Skipf("Skipping Postgres tests: database not available (%v)", err)
		return
	}

	require.NoError(suite.T(), database.Migrate(db))
	suite.db = db
	suite.repo = NewBookRepository(db)
	suite.ctx = context.Background()
}

func (suite *PostgresBookRepositoryTestSuite) TearDownSuite() {
	if suite.db == nil {
		return
	}
	suite.db.Exec("DELETE FROM books")
	_ = database.Close(suite.db)
}

func (suite *PostgresBookRepositoryTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM books")
}

func (suite *PostgresBookRepositoryTestSuite) create(title, genre string, created time.Time) *models.Book {
	b := &models.Book{
		Title:           title,
		Author:          "Author of " + title,
		Genre:           genre,
		Rating:          4,
		CoverURL:        "https://covers.example.com/cover.jpg",
		CoverColor:      "#334455",
		Description:     "About " + title,
		TotalCopies:     2,
		AvailableCopies: 1,
		CreatedAt:       created,
	}
	require.NoError(suite.T(), suite.db.Create(b).Error)
	return b
}

func (suite *PostgresBookRepositoryTestSuite) TestGetBook() {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	b := suite.create("Rebecca", "Gothic, Mystery", created)

	got, err := suite.repo.GetBook(suite.ctx, b.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Rebecca", got.Title)
	assert.True(suite.T(), created.Equal(got.CreatedAt))

	_, err = suite.repo.GetBook(suite.ctx, uuid.NewString())
	assert.ErrorIs(suite.T(), err, ErrBookNotFound)

	// A malformed id must not reach Postgres' uuid parser
	_, err = suite.repo.GetBook(suite.ctx, "42")
	assert.ErrorIs(suite.T(), err, ErrBookNotFound)
}

func (suite *PostgresBookRepositoryTestSuite) TestGetBooksExceptOrder() {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	source := suite.create("Source", "Fantasy", base)
	older := suite.create("Older", "Fantasy", base.Add(-time.Hour))
	newer := suite.create("Newer", "Fantasy", base.Add(time.Hour))

	books, err := suite.repo.GetBooksExcept(suite.ctx, source.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), books, 2)
	assert.Equal(suite.T(), newer.ID, books[0].ID)
	assert.Equal(suite.T(), older.ID, books[1].ID)
}

func (suite *PostgresBookRepositoryTestSuite) TestListGenresAndSearch() {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	suite.create("Neuromancer", "Cyberpunk", base)
	suite.create("Snow Crash", "Cyberpunk", base.Add(time.Minute))
	suite.create("Emma", "Romance", base.Add(2*time.Minute))

	genres, err := suite.repo.ListGenres(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Cyberpunk", "Romance"}, genres)

	books, err := suite.repo.SearchBooks(suite.ctx, BookFilter{Search: "CRASH"})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), books, 1)
	assert.Equal(suite.T(), "Snow Crash", books[0].Title)
}

func TestPostgresBookRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Postgres suite in short mode")
	}
	suite.Run(t, new(PostgresBookRepositoryTestSuite))
}
