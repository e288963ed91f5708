package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/casevault/filesift/internal/config"
	"github.com/casevault/filesift/internal/db"
	redisdb "github.com/casevault/filesift/internal/db/redis"
	logpkg "github.com/casevault/filesift/internal/logger"
	"github.com/casevault/filesift/internal/metrics"
	catalogrepo "github.com/casevault/filesift/internal/repository/catalog"
	occurrencerepo "github.com/casevault/filesift/internal/repository/occurrence"
	chiTransport "github.com/casevault/filesift/internal/transport/chi"
	healthuc "github.com/casevault/filesift/internal/usecase/health"
	searchuc "github.com/casevault/filesift/internal/usecase/search"
	"github.com/casevault/filesift/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting filesift API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.Strings("occurrence_addrs", cfg.Occurrence.Addrs),
	)

	// Case catalog (SQLite)
	catalog, err := catalogrepo.New(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to open case catalog", zap.Error(err))
	}
	defer func() { _ = catalog.Close() }()

	ctx := context.Background()

	// Occurrence store (Redis) is optional. Without it frequency filters are
	// rejected as misconfigured but every other filter still works.
	var occStore db.Store
	var occRepo *occurrencerepo.Repo
	if len(cfg.Occurrence.Addrs) > 0 {
		occStore, err = redisdb.NewStore(redisdb.Config{
			Addrs:    cfg.Occurrence.Addrs,
			Password: cfg.Occurrence.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create occurrence store", zap.Error(err))
		}
		defer occStore.Close()

		if err := occStore.WaitForReady(ctx, time.Duration(cfg.Occurrence.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Occurrence store not ready", zap.Error(err))
		}

		occRepo = occurrencerepo.New(occStore)
		if err := occRepo.EnsureFrequencyType(ctx); err != nil {
			logger.Fatal("Failed to register frequency attribute type", zap.Error(err))
		}
		logger.Info("Connected to occurrence store")
	} else {
		logger.Info("Occurrence store not configured, frequency filtering disabled")
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Use case services
	searchSvc := searchuc.New(catalog, logger)
	var occPinger healthuc.OccurrencePinger
	if occRepo != nil {
		searchSvc = searchSvc.WithOccurrences(occRepo)
		occPinger = occStore
	}
	healthSvc := healthuc.New(catalog, occPinger)

	// Create chi server
	var occWriter chiTransport.OccurrenceWriter
	if occRepo != nil {
		occWriter = occRepo
	}
	server := chiTransport.NewServer(
		searchSvc, catalog, occWriter, healthSvc, logger, cfg.Search.EnrichmentWorkers,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
