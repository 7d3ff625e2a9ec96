package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"

	"gopkg.in/yaml.v3"
)

// YAMLStore keeps the ledger in one YAML file.
type YAMLStore struct {
	path   string
	seed   bool
	logger logging.Logger
}

// NewYAMLStore returns a store backed by path. The file is created on the
// first Save. When seed is true, a missing file loads as the default
// categories and templates.
func NewYAMLStore(path string, seed bool, logger logging.Logger) *YAMLStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &YAMLStore{path: path, seed: seed, logger: logger}
}

// Path returns the file the store reads and writes.
func (s *YAMLStore) Path() string {
	return s.path
}

func (s *YAMLStore) Load(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Debug("Ledger file not found, starting from initial data",
			logging.Field{Key: logging.FieldPath, Value: s.path})
		return initialSnapshot(s.seed), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading ledger file: %w", err)
	}

	var snapshot models.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("error parsing ledger file %s: %w", s.path, err)
	}

	s.logger.Debug("Loaded ledger",
		logging.Field{Key: logging.FieldPath, Value: s.path},
		logging.Field{Key: logging.FieldCount, Value: len(snapshot.Transactions)})
	return &snapshot, nil
}

// Save writes snapshot to a temporary file next to the ledger and renames
// it over the ledger, so readers never observe a partial write.
func (s *YAMLStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error marshaling ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temporary ledger file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing ledger: %w", err)
	}
	if err := tmp.Chmod(models.PermissionDataFile); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error setting ledger permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing ledger: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("error replacing ledger file: %w", err)
	}

	s.logger.Debug("Saved ledger",
		logging.Field{Key: logging.FieldPath, Value: s.path},
		logging.Field{Key: logging.FieldCount, Value: len(snapshot.Transactions)})
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *YAMLStore) Close() error {
	return nil
}
