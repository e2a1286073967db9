// Package recommender provides the Bookwise genre-similarity recommendation API.

// The server entry point is cmd/server; cmd/bookwise bundles the server with
// database and offline tooling. Packages are organized as follows:

// - internal/handlers: HTTP handlers for recommendations, health and the catalogue
// - internal/recommendations: candidate scoring and ranking
// - internal/similarity: genre relationship table and similarity scoring
// - internal/repository: book queries over GORM (Postgres or SQLite)
// - internal/models: the books table schema
// - internal/database: connection pool and development migrations
// - internal/kernel: dependency wiring and cleanup
// - internal/server: router assembly and graceful shutdown
// - internal/middleware: request ids, logging, metrics and tracing
// - internal/client: HTTP client for a running server
// - internal/seed: fake catalogue data for development

// See the individual package documentation for details.
package recommender
