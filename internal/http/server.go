// Package http exposes the ledger over a JSON API.
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

	"condoledger/internal/core"
	"condoledger/internal/extract"
)

// LedgerAPI is the mutation and snapshot surface the handlers drive.
// Implemented by services.LedgerService.
type LedgerAPI interface {
	Snapshot(ctx context.Context) (core.Ledger, error)
	CreateExpense(ctx context.Context, e core.Expense, confirmDuplicate bool) (core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	DuplicateExpense(ctx context.Context, id string) (core.Expense, error)
	CreateIncome(ctx context.Context, i core.Income) (core.Income, error)
	UpdateIncome(ctx context.Context, i core.Income) (core.Income, error)
	DeleteIncome(ctx context.Context, id string) error
	CreateAccount(ctx context.Context, a core.BankAccount) (core.BankAccount, error)
	UpdateAccount(ctx context.Context, a core.BankAccount) (core.BankAccount, error)
	DeleteAccount(ctx context.Context, id string) error
	RestoreBackup(ctx context.Context, l core.Ledger) error
}

// Importer is the two-phase import surface. Implemented by
// services.ImportService.
type Importer interface {
	ExtractCandidates(ctx context.Context, req extract.Request) ([]core.ReviewedCandidate, core.BatchReport, error)
	CommitReviewed(ctx context.Context, reviewed []core.ReviewedCandidate) (int, error)
}

type Server struct {
	http.Server
	condoName   string
	ledger      LedgerAPI
	importer    Importer
	rateLimiter *rateLimiter

	// Dashboard responses are cheap to rebuild but requested constantly;
	// any mutation clears the cache.
	dashboardCache *lruCache[dashboardResponse]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
	now              func() time.Time
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr, condoName string, ledger LedgerAPI, importer Importer) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		condoName:        condoName,
		ledger:           ledger,
		importer:         importer,
		rateLimiter:      newRateLimiter(),
		dashboardCache:   newLRUCache[dashboardResponse](50, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
		now:              time.Now,
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /api/expenses", s.withMiddleware(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.withMiddleware(s.handleCreateExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.withMiddleware(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withMiddleware(s.handleDeleteExpense))
	mux.HandleFunc("POST /api/expenses/{id}/duplicate", s.withMiddleware(s.handleDuplicateExpense))

	mux.HandleFunc("GET /api/incomes", s.withMiddleware(s.handleListIncomes))
	mux.HandleFunc("POST /api/incomes", s.withMiddleware(s.handleCreateIncome))
	mux.HandleFunc("PUT /api/incomes/{id}", s.withMiddleware(s.handleUpdateIncome))
	mux.HandleFunc("DELETE /api/incomes/{id}", s.withMiddleware(s.handleDeleteIncome))

	mux.HandleFunc("GET /api/accounts", s.withMiddleware(s.handleListAccounts))
	mux.HandleFunc("POST /api/accounts", s.withMiddleware(s.handleCreateAccount))
	mux.HandleFunc("PUT /api/accounts/{id}", s.withMiddleware(s.handleUpdateAccount))
	mux.HandleFunc("DELETE /api/accounts/{id}", s.withMiddleware(s.handleDeleteAccount))

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))

	mux.HandleFunc("GET /api/export/expenses.csv", s.withMiddleware(s.handleExportExpensesCSV))
	mux.HandleFunc("GET /api/export/incomes.csv", s.withMiddleware(s.handleExportIncomesCSV))
	mux.HandleFunc("GET /api/export/expenses.xml", s.withMiddleware(s.handleExportExpensesXML))
	mux.HandleFunc("GET /api/export/incomes.xml", s.withMiddleware(s.handleExportIncomesXML))
	mux.HandleFunc("GET /api/export/expenses.pdf", s.withMiddleware(s.handleExportExpensesPDF))
	mux.HandleFunc("GET /api/export/incomes.pdf", s.withMiddleware(s.handleExportIncomesPDF))
	mux.HandleFunc("GET /api/backup", s.withMiddleware(s.handleBackup))
	mux.HandleFunc("POST /api/restore", s.withMiddleware(s.handleRestore))

	mux.HandleFunc("POST /api/import/extract", s.withMiddleware(s.handleImportExtract))
	mux.HandleFunc("POST /api/import/commit", s.withMiddleware(s.handleImportCommit))

	return s
}

// startCacheCleanup evicts expired dashboard entries periodically.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.dashboardCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds security headers, rate limiting, and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
