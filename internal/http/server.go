// Package http serves the JSON API: purchase and category CRUD plus one
// endpoint per analytics product.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"pedidos/internal/cache"
	"pedidos/internal/log"
	"pedidos/internal/store"
)

// Publisher enqueues backup events for mutated purchases. Nil disables
// publishing; the worker's reconciliation pass still picks mutations up.
type Publisher interface {
	PublishPurchaseSync(ctx context.Context, id string, version int64) error
}

type Server struct {
	http.Server
	store       store.Store
	publisher   Publisher
	rateLimiter *rateLimiter
	logger      *log.Logger

	// Derived statistics are cached as marshaled responses; any mutation
	// purges the whole cache since every product depends on the full set.
	statsCache  *cache.LRUCache[[]byte]
	stopCacheGC chan struct{}

	shutdownOnce sync.Once
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

// NewServer configures routes and returns a ready-to-run http.Server.
func NewServer(addr string, st store.Store, pub Publisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       st,
		publisher:   pub,
		rateLimiter: newRateLimiter(),
		logger: log.New(log.Config{
			Handler:   slog.Default().Handler(),
			Component: log.ComponentHTTP,
		}),
		statsCache:  cache.NewLRUCache[[]byte](100, time.Minute),
		stopCacheGC: make(chan struct{}),
	}
	go s.runCacheCleanup(5 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /api/purchases", s.withAPIMiddleware(s.handleListPurchases))
	mux.HandleFunc("POST /api/purchases", s.withAPIMiddleware(s.handleCreatePurchase))
	mux.HandleFunc("PUT /api/purchases/{id}", s.withAPIMiddleware(s.handleUpdatePurchase))
	mux.HandleFunc("DELETE /api/purchases/{id}", s.withAPIMiddleware(s.handleDeletePurchase))

	mux.HandleFunc("GET /api/categories", s.withAPIMiddleware(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withAPIMiddleware(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.withAPIMiddleware(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.withAPIMiddleware(s.handleDeleteCategory))

	mux.HandleFunc("GET /api/stats/weekly", s.withAPIMiddleware(s.cached(s.handleWeeklyStats)))
	mux.HandleFunc("GET /api/stats/monthly", s.withAPIMiddleware(s.cached(s.handleMonthlyStats)))
	mux.HandleFunc("GET /api/stats/categories", s.withAPIMiddleware(s.cached(s.handleCategoryBreakdown)))
	mux.HandleFunc("GET /api/stats/periods", s.withAPIMiddleware(s.cached(s.handleTimeOfDayBreakdown)))
	mux.HandleFunc("GET /api/stats/weekdays", s.withAPIMiddleware(s.cached(s.handleWeekdayBreakdown)))
	mux.HandleFunc("GET /api/stats/months", s.withAPIMiddleware(s.cached(s.handleMonthlySeries)))
	mux.HandleFunc("GET /api/stats/weeks", s.withAPIMiddleware(s.cached(s.handleWeeksOfMonth)))
	mux.HandleFunc("GET /api/stats/tickets", s.withAPIMiddleware(s.cached(s.handleTicketsByCategory)))
	mux.HandleFunc("GET /api/stats/label", s.withAPIMiddleware(s.handlePeriodLabel))
	mux.HandleFunc("GET /api/insights", s.withAPIMiddleware(s.cached(s.handleInsights)))

	return s
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		close(s.stopCacheGC)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withAPIMiddleware adds security headers, rate limiting on mutations, and
// request logging.
func (s *Server) withAPIMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		reqLogger := s.logger.With(log.FieldRequestID, requestID, log.FieldClientIP, clientIP)
		ctx := log.WithContext(r.Context(), reqLogger)
		r = r.WithContext(ctx)

		reqLogger.Info("Request started",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			reqLogger.Warn("Rate limit exceeded", log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		reqLogger.Info("Request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
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

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// cached serves GET responses from the stats cache, keyed by path, query
// and calendar day so date rollovers never serve yesterday's buckets.
func (s *Server) cached(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path + "?" + r.URL.RawQuery + "@" + time.Now().Format("2006-01-02")
		if body, ok := s.statsCache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write(body)
			return
		}

		rec := &recordingWriter{responseWriter: responseWriter{ResponseWriter: w, statusCode: http.StatusOK}}
		next(rec, r)

		if rec.statusCode == http.StatusOK && len(rec.body) > 0 {
			s.statsCache.Set(key, rec.body)
		}
	}
}

// invalidateStats drops every cached stats response. Cheap relative to the
// mutation rate of a personal tracker.
func (s *Server) invalidateStats() {
	s.statsCache.Purge()
}

// runCacheCleanup evicts expired stats responses on the given interval
// until Shutdown.
func (s *Server) runCacheCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.statsCache.CleanupExpired()
		case <-s.stopCacheGC:
			return
		}
	}
}

type recordingWriter struct {
	responseWriter
	body []byte
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body = append(rw.body, b...)
	return rw.responseWriter.Write(b)
}
