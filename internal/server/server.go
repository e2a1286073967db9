// Package server assembles the HTTP router and runs it until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/handlers"
	"github.com/bookwise/recommender/internal/kernel"
	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/middleware"
	"github.com/bookwise/recommender/internal/telemetry"
	"github.com/bookwise/recommender/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long in-flight requests get after a signal
const ShutdownTimeout = 30 * time.Second

// NewRouter builds the gin engine with the middleware chain and API routes
func NewRouter(cfg *config.Config, h *handlers.Handlers) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(gin.CustomRecovery(recoverJSON))
	r.Use(middleware.GinLoggerMiddleware("/metrics"))
	r.Use(middleware.MetricsMiddleware())
	if cfg.Telemetry.Enabled {
		r.Use(middleware.TracingMiddleware(telemetry.ServiceName)...)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.RegisterRoutes(r)

	return r
}

func recoverJSON(c *gin.Context, recovered any) {
	logger.Log.Error("Handler panicked",
		logger.WithRequestID(util.GetRequestID(c)),
		zap.Any("panic", recovered),
	)
	util.RespondInternalError(c, "Internal server error")
	c.Abort()
}

// NewHTTPServer binds the router to every interface on the configured port
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Run boots the recommendation stack, serves until SIGINT or SIGTERM and
// then drains requests and releases resources
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, cfg)
}

// Serve is Run with the shutdown trigger supplied by the caller
func Serve(ctx context.Context, cfg *config.Config) error {
	tp, err := telemetry.InitTracer(telemetry.ConfigFrom(cfg))
	if err != nil {
		logger.WarnWithFields("Tracing disabled, failed to initialize tracer", err)
		cfg.Telemetry.Enabled = false
	}

	k, err := kernel.Boot(cfg)
	if err != nil {
		_ = telemetry.Shutdown(context.Background(), tp)
		return err
	}
	k.OnCleanup(func(ctx context.Context) error {
		return telemetry.Shutdown(ctx, tp)
	})

	srv := NewHTTPServer(cfg, NewRouter(cfg, k.Handlers()))

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Log.Info("Shutting down server...")
	case serveErr = <-errCh:
		if serveErr != nil {
			serveErr = fmt.Errorf("server failed: %w", serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithFields("Server forced to shutdown", err)
	}
	if err := k.Cleanup(shutdownCtx); err != nil {
		logger.ErrorWithFields("Cleanup failed", err)
	}

	logger.Log.Info("Server exited")
	return serveErr
}
