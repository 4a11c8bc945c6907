// Package server provides the HTTP API for the portfolio generator.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/folioflow/internal/config"
	"github.com/jonathan/folioflow/internal/extraction"
	"github.com/jonathan/folioflow/internal/llm"
	"github.com/jonathan/folioflow/internal/portfolio"
	"github.com/jonathan/folioflow/internal/reconcile"
	"github.com/jonathan/folioflow/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         config.Config
	log         *zap.SugaredLogger
	llmClient   llm.Client
	extractor   *extraction.Extractor
	reconciler  *reconcile.Reconciler
	store       *portfolio.Store
	rateLimiter *ratelimit.Limiter
}

// New creates a new server instance. The LLM client may be nil; endpoints
// that need the model then report the missing credential instead of failing
// at startup.
func New(cfg config.Config, log *zap.SugaredLogger, llmClient llm.Client) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	s := &Server{
		cfg:       cfg,
		log:       log,
		llmClient: llmClient,
		extractor: extraction.New(extraction.Options{
			ColumnMarginRatio:  cfg.Extraction.ColumnMarginRatio,
			MinColumnFragments: cfg.Extraction.MinColumnFragments,
			RowTolerance:       cfg.Extraction.RowTolerance,
			LinkYTolerance:     cfg.Extraction.LinkYTolerance,
			LinkContextSize:    cfg.Extraction.LinkContextSize,
		}, log),
		reconciler: reconcile.New(),
		store: portfolio.NewStore(portfolio.StoreOptions{
			Capacity: cfg.History.Capacity,
			Debounce: time.Duration(cfg.History.DebounceMS) * time.Millisecond,
		}),
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/parse-resume", s.handleParseResume)
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/import", s.handleImport)
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("POST /api/export/pdf", s.handleExportPDF)
	mux.HandleFunc("POST /api/photo", s.handlePhoto)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for model calls and PDF printing
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the full middleware chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			s.log.Warnw("llm client close failed", "error", err)
		}
	}

	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	origin := s.cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging tags each request with an id and logs it on completion.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
		s.log.Infow("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warnw("encoding JSON response failed", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.Warnw("rate limit exceeded",
		"limit", info.Limit,
		"remaining", info.Remaining,
		"reset", info.ResetTime.Format(time.RFC3339),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
