package common

import (
	"bytes"
	"context"
	"testing"

	"fjacquet/misi/cmd/root"
	"fjacquet/misi/internal/config"
	"fjacquet/misi/internal/container"
	"fjacquet/misi/internal/logging"

	"github.com/spf13/cobra"
)

// Env is what a command handler works with.
type Env struct {
	Ctx       context.Context
	Container *container.Container
	Printer   *Printer
}

// Setup resolves the container for cmd and a printer on its output.
func Setup(cmd *cobra.Command) (*Env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := root.GetContainer(ctx)
	if err != nil {
		return nil, err
	}
	display := c.GetConfig().Display
	return &Env{
		Ctx:       ctx,
		Container: c,
		Printer:   NewPrinter(cmd.OutOrStdout(), display.Currency, display.DateFormat),
	}, nil
}

// TestConfig returns a valid configuration storing its data under dir.
func TestConfig(dir string) *config.Config {
	return &config.Config{
		Log:  config.LogConfig{Level: "info", Format: "text"},
		Data: config.DataConfig{Directory: dir},
		Store: config.StoreConfig{
			Backend:      config.BackendYAML,
			YAMLFile:     "misi.yaml",
			SQLitePath:   "misi.db",
			SeedDefaults: true,
		},
		CSV:     config.CSVConfig{Delimiter: ","},
		Display: config.DisplayConfig{Currency: "USD", DateFormat: "2006-01-02"},
		Server:  config.ServerConfig{Addr: "127.0.0.1:0", ReadTimeoutSeconds: 5},
		Report:  config.ReportConfig{RecentLimit: 5},
	}
}

// UseTestContainer installs a container over a temporary ledger as the
// root container for the duration of the test.
func UseTestContainer(t testing.TB) *container.Container {
	t.Helper()
	cfg := TestConfig(t.TempDir())
	c, err := container.NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	if err != nil {
		t.Fatalf("failed to build container: %v", err)
	}
	previous, previousConfig := root.AppContainer, root.AppConfig
	root.AppContainer, root.AppConfig = c, cfg
	t.Cleanup(func() {
		_ = c.Close()
		root.AppContainer, root.AppConfig = previous, previousConfig
	})
	return c
}

// Execute runs cmd with args and returns everything it printed.
func Execute(cmd *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
