package handlers

import (
	"context"
	"time"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/recommendations"
	"github.com/bookwise/recommender/internal/repository"
)

// Pinger checks connectivity to the backing store
type Pinger func(ctx context.Context) error

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	engine         *recommendations.Engine
	books          repository.BookRepository
	pinger         Pinger
	port           string
	environment    string
	requestTimeout time.Duration
	pingTimeout    time.Duration
}

// NewHandlers creates a new handlers instance
func NewHandlers(engine *recommendations.Engine, books repository.BookRepository, cfg *config.Config) *Handlers {
	h := &Handlers{
		engine:         engine,
		books:          books,
		requestTimeout: 10 * time.Second,
		pingTimeout:    2 * time.Second,
	}
	if cfg != nil {
		h.port = cfg.Port
		h.environment = cfg.Environment
		if cfg.RequestTimeout > 0 {
			h.requestTimeout = cfg.RequestTimeout
		}
	}
	return h
}

// SetPinger sets the database connectivity check used by the health endpoint
func (h *Handlers) SetPinger(p Pinger) {
	h.pinger = p
}

// requestContext bounds a handler's store calls by the request timeout
func (h *Handlers) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.requestTimeout)
}
