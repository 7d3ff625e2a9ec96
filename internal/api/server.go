// Package api exposes the ledger over a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server serves the ledger API.
type Server struct {
	ledger      *ledger.Service
	reports     *report.Generator
	logger      logging.Logger
	recentLimit int
}

// NewServer creates a Server. recentLimit bounds the recent transactions
// shown in the summary report.
func NewServer(svc *ledger.Service, reports *report.Generator, logger logging.Logger, recentLimit int) *Server {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Server{ledger: svc, reports: reports, logger: logger, recentLimit: recentLimit}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.addCategory)
			r.Delete("/{id}", s.deleteCategory)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.listTransactions)
			r.Post("/", s.addTransaction)
			r.Get("/{id}", s.getTransaction)
			r.Put("/{id}", s.updateTransaction)
			r.Delete("/{id}", s.deleteTransaction)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.listTemplates)
			r.Post("/", s.addTemplate)
			r.Put("/{id}", s.updateTemplate)
			r.Delete("/{id}", s.deleteTemplate)
			r.Post("/{id}/use", s.useTemplate)
		})

		r.Route("/loans", func(r chi.Router) {
			r.Get("/", s.listLoans)
			r.Post("/", s.addLoan)
			r.Get("/{id}", s.getLoan)
			r.Put("/{id}", s.updateLoan)
			r.Delete("/{id}", s.deleteLoan)
			r.Get("/{id}/payments", s.listPayments)
			r.Post("/{id}/payments", s.makePayment)
		})

		r.Get("/revenue-streams", s.revenueStreams)
		r.Get("/revenue-streams/available", s.availableRevenueStreams)
		r.Get("/summary", s.summary)
		r.Get("/report.pdf", s.pdfReport)
		r.Get("/report", s.reportByFormat)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logging.Field{Key: "addr", Value: addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
