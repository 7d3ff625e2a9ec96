// Package store persists ledger snapshots. Two backends are provided: a
// single YAML document on disk and a SQLite database.
package store

import (
	"context"
	"fmt"

	"fjacquet/misi/internal/config"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"
)

// Store loads and saves the whole ledger. Save replaces everything that was
// stored before; implementations apply it atomically.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snapshot *models.Snapshot) error
	Close() error
}

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (Store, error) {
	path := cfg.StorePath()
	switch cfg.Store.Backend {
	case config.BackendYAML:
		return NewYAMLStore(path, cfg.Store.SeedDefaults, logger), nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, path, cfg.Store.SeedDefaults, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

func initialSnapshot(seed bool) *models.Snapshot {
	if seed {
		return models.DefaultSnapshot()
	}
	return &models.Snapshot{}
}
