// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	CSV     CSVConfig     `mapstructure:"csv" yaml:"csv"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DataConfig holds the directory relative store paths resolve against.
type DataConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
}

type StoreConfig struct {
	Backend      string `mapstructure:"backend" yaml:"backend"`
	YAMLFile     string `mapstructure:"yaml_file" yaml:"yaml_file"`
	SQLitePath   string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	SeedDefaults bool   `mapstructure:"seed_defaults" yaml:"seed_defaults"`
}

type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// DisplayConfig controls how amounts and dates are rendered.
// DateFormat is a Go time layout.
type DisplayConfig struct {
	Currency   string `mapstructure:"currency" yaml:"currency"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

type ServerConfig struct {
	Addr               string `mapstructure:"addr" yaml:"addr"`
	ReadTimeoutSeconds int    `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
}

type ReportConfig struct {
	RecentLimit int `mapstructure:"recent_limit" yaml:"recent_limit"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config.yaml from the search paths, then MISI_* variables.
func InitializeConfig() (*Config, error) {
	return load("")
}

// InitializeConfigFromFile loads configuration from an explicit file. Unlike
// the search path lookup, a missing or unreadable file is an error.
func InitializeConfigFromFile(path string) (*Config, error) {
	return load(path)
}

func load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.misi")
		v.AddConfigPath(".misi")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MISI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "")

	v.SetDefault("store.backend", BackendYAML)
	v.SetDefault("store.yaml_file", "misi.yaml")
	v.SetDefault("store.sqlite_path", "misi.db")
	v.SetDefault("store.seed_defaults", true)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("display.currency", "USD")
	v.SetDefault("display.date_format", "2006-01-02")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout_seconds", 15)

	v.SetDefault("report.recent_limit", 5)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Store.Backend {
	case BackendYAML:
		if config.Store.YAMLFile == "" {
			return fmt.Errorf("store.yaml_file is required for the yaml backend")
		}
	case BackendSQLite:
		if config.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be 'yaml' or 'sqlite')", config.Store.Backend)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Display.DateFormat == "" {
		return fmt.Errorf("display.date_format must not be empty")
	}

	if config.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	if config.Server.ReadTimeoutSeconds < 1 {
		return fmt.Errorf("server.read_timeout_seconds must be positive, got: %d", config.Server.ReadTimeoutSeconds)
	}

	if config.Report.RecentLimit < 1 {
		return fmt.Errorf("report.recent_limit must be positive, got: %d", config.Report.RecentLimit)
	}

	return nil
}

// StorePath returns the file the configured backend reads and writes.
// Relative paths resolve against data.directory when it is set.
func (c *Config) StorePath() string {
	path := c.Store.YAMLFile
	if c.Store.Backend == BackendSQLite {
		path = c.Store.SQLitePath
	}
	if c.Data.Directory != "" && !filepath.IsAbs(path) {
		return filepath.Join(c.Data.Directory, path)
	}
	return path
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// ConfigureLoggingFromConfig builds a logrus logger from the log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
