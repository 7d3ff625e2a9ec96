// Package ledger exposes the operations the CLI and the HTTP API perform on
// a stored ledger. Every mutation loads the current snapshot, applies the
// change and saves the snapshot back while holding the service lock, so
// concurrent callers of one Service never interleave their writes.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"
	"fjacquet/misi/internal/store"

	"github.com/google/uuid"
)

// Service is the application layer over a Store.
type Service struct {
	store  store.Store
	logger logging.Logger
	now    func() time.Time
	newID  func() string

	mu sync.RWMutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the time source used for default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the generator for new record ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService creates a Service over st.
func NewService(st store.Store, logger logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	s := &Service{
		store:  st,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// snapshot loads the ledger for reading.
func (s *Service) snapshot(ctx context.Context) (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return snap, nil
}

// mutate runs fn against a freshly loaded snapshot and saves the result.
// Nothing is saved when fn fails.
func (s *Service) mutate(ctx context.Context, fn func(*models.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	if err := fn(snap); err != nil {
		return err
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

func (s *Service) dateOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

func sortTransactionsByDateDesc(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
}
