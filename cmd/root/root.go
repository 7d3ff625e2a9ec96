// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"fjacquet/misi/internal/config"
	"fjacquet/misi/internal/container"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by every command. Non-empty values
// override the loaded configuration.
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	DataDir    string
	Backend    string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer is built on first use by GetContainer
	AppContainer *container.Container

	// SharedFlags holds the persistent flags of the root command
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "misi",
		Short: "A personal finance ledger for revenue streams, expenses and loans.",
		Long: `misi records income and expenses, allocates every expense to the revenue
stream that pays for it, and tracks borrowed and lent loans with amortized
payments. Data is kept in a YAML file or a SQLite database.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if AppContainer != nil {
				return nil
			}
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			AppConfig = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			CloseContainer()
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default is $HOME/.misi/config.yaml)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.DataDir, "data-dir", "", "Directory holding the ledger data")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Backend, "backend", "", "Store backend (yaml, sqlite)")
}

// LoadConfig loads the configuration and applies the shared flags on top.
func LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if SharedFlags.ConfigFile != "" {
		cfg, err = config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	} else {
		cfg, err = config.InitializeConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if SharedFlags.DataDir != "" {
		cfg.Data.Directory = SharedFlags.DataDir
	}
	if SharedFlags.Backend != "" {
		cfg.Store.Backend = SharedFlags.Backend
	}
	return cfg, nil
}

// GetContainer returns the application container, building it on first use.
func GetContainer(ctx context.Context) (*container.Container, error) {
	if AppContainer != nil {
		return AppContainer, nil
	}
	if AppConfig == nil {
		cfg, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		AppConfig = cfg
	}
	c, err := container.NewContainerWithLogger(ctx, AppConfig, Log)
	if err != nil {
		return nil, err
	}
	AppContainer = c
	return c, nil
}

// GetLedger is a shortcut for GetContainer(ctx).GetLedger().
func GetLedger(ctx context.Context) (*ledger.Service, error) {
	c, err := GetContainer(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetLedger(), nil
}

// CloseContainer releases the container if one was built.
func CloseContainer() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close container")
	}
	AppContainer = nil
}
