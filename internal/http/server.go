// Package http exposes the transaction log as a JSON API. The server is
// meant for a single user on localhost; rendering is left to clients.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	applog "bilancio/internal/log"
	"bilancio/internal/services"
	"bilancio/internal/taxonomy"
)

// Options tunes request-independent server behavior.
type Options struct {
	AlertHorizonDays int
	AlertMaxCount    int
}

type Server struct {
	http.Server
	ledger      *services.Ledger
	taxonomy    taxonomy.Taxonomy
	opts        Options
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, ledger *services.Ledger, tax taxonomy.Taxonomy, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ledger:      ledger,
		taxonomy:    tax,
		opts:        opts,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.withRequestContext(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withRequestContext(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions/{id}", s.withRequestContext(s.handleGetTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withRequestContext(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withRequestContext(s.handleDeleteTransaction))
	mux.HandleFunc("POST /api/transactions/{id}/paid", s.withRequestContext(s.handleTogglePaid))

	mux.HandleFunc("GET /api/dashboard", s.withRequestContext(s.handleDashboard))
	mux.HandleFunc("GET /api/reports/annual", s.withRequestContext(s.handleAnnualReport))
	mux.HandleFunc("GET /api/reports/flow", s.withRequestContext(s.handleMonthlyFlow))

	mux.HandleFunc("GET /api/recurring/pending", s.withRequestContext(s.handlePendingRecurring))
	mux.HandleFunc("POST /api/recurring/apply", s.withRequestContext(s.handleApplyRecurring))

	mux.HandleFunc("GET /api/alerts", s.withRequestContext(s.handleAlerts))
	mux.HandleFunc("GET /api/categories", s.withRequestContext(s.handleCategories))

	logger := applog.New(applog.Config{Component: applog.ComponentHTTP})
	handler := applog.RequestIDMiddleware(requestID)(mux)
	s.Server = http.Server{
		Addr:    addr,
		Handler: applog.Middleware(logger)(handler),
	}

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// requestID honors an inbound X-Request-ID so a client can correlate
// its own logs with the server's, and generates one otherwise.
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

// withRequestContext adds rate limiting and request logging.
func (s *Server) withRequestContext(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		logger := applog.FromContext(ctx)

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		logger.InfoContext(ctx, "Request started",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldQuery, r.URL.RawQuery,
			applog.FieldClientIP, clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		logger.InfoContext(ctx, "Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
