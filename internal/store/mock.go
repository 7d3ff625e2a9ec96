package store

import (
	"context"
	"sync"

	"fjacquet/misi/internal/models"
)

// MockStore is an in-memory Store for tests. Snapshots are cloned on the
// way in and out so callers never share slices with the store.
type MockStore struct {
	mu       sync.Mutex
	snapshot *models.Snapshot

	// Error injection for testing failure paths
	LoadError  error
	SaveError  error
	CloseError error

	Saves  int
	Closed bool
}

// NewMockStore returns a MockStore holding a copy of snapshot, or an empty
// ledger when snapshot is nil.
func NewMockStore(snapshot *models.Snapshot) *MockStore {
	return &MockStore{snapshot: snapshot.Clone()}
}

func (m *MockStore) Load(ctx context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.snapshot.Clone(), nil
}

func (m *MockStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	m.snapshot = snapshot.Clone()
	m.Saves++
	return nil
}

func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.CloseError
}

// Snapshot returns a copy of the stored ledger.
func (m *MockStore) Snapshot() *models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot.Clone()
}
