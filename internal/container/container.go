// Package container provides dependency injection for the misi application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/misi/internal/api"
	"fjacquet/misi/internal/config"
	"fjacquet/misi/internal/export"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/report"
	"fjacquet/misi/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	store   store.Store
	ledger  *ledger.Service
	csv     *export.CSV
	reports *report.Generator
	server  *api.Server
}

// NewContainer creates and wires all application dependencies. The store
// is opened immediately; callers must Close the container.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return NewContainerWithLogger(ctx, cfg, logger)
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	svc := ledger.NewService(st, logger)
	csvCodec := export.NewCSV(cfg.Delimiter(), cfg.Display.DateFormat, logger)
	reports := report.NewGenerator(logger, cfg.Display.Currency, cfg.Display.DateFormat)
	server := api.NewServer(svc, reports, logger, cfg.Report.RecentLimit)

	logger.Info("Container initialized successfully",
		logging.Field{Key: logging.FieldStore, Value: cfg.Store.Backend},
		logging.Field{Key: logging.FieldPath, Value: cfg.StorePath()})

	return &Container{
		logger:  logger,
		config:  cfg,
		store:   st,
		ledger:  svc,
		csv:     csvCodec,
		reports: reports,
		server:  server,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the ledger store.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetLedger returns the ledger service every command goes through.
func (c *Container) GetLedger() *ledger.Service {
	return c.ledger
}

// GetCSV returns the CSV import/export codec.
func (c *Container) GetCSV() *export.CSV {
	return c.csv
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}

// GetServer returns the HTTP API server.
func (c *Container) GetServer() *api.Server {
	return c.server
}

// Close releases the store.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	c.logger.Info("Container closed")
	return nil
}
