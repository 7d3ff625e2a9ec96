package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func isolate(t *testing.T) {
	t.Helper()
	clearTestEnvVars(t)
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
}

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, BackendYAML, config.Store.Backend)
	assert.Equal(t, "misi.yaml", config.Store.YAMLFile)
	assert.Equal(t, "misi.db", config.Store.SQLitePath)
	assert.True(t, config.Store.SeedDefaults)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "USD", config.Display.Currency)
	assert.Equal(t, "2006-01-02", config.Display.DateFormat)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, 15, config.Server.ReadTimeoutSeconds)
	assert.Equal(t, 5, config.Report.RecentLimit)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	testEnvVars := map[string]string{
		"MISI_LOG_LEVEL":           "debug",
		"MISI_LOG_FORMAT":          "json",
		"MISI_STORE_BACKEND":       "sqlite",
		"MISI_STORE_SQLITE_PATH":   "/tmp/ledger.db",
		"MISI_STORE_SEED_DEFAULTS": "false",
		"MISI_CSV_DELIMITER":       ";",
		"MISI_DISPLAY_CURRENCY":    "CHF",
		"MISI_SERVER_ADDR":         "127.0.0.1:9000",
		"MISI_REPORT_RECENT_LIMIT": "10",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, BackendSQLite, config.Store.Backend)
	assert.Equal(t, "/tmp/ledger.db", config.Store.SQLitePath)
	assert.False(t, config.Store.SeedDefaults)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "CHF", config.Display.Currency)
	assert.Equal(t, "127.0.0.1:9000", config.Server.Addr)
	assert.Equal(t, 10, config.Report.RecentLimit)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	isolate(t)

	configContent := `
log:
  level: "warn"
  format: "json"
store:
  backend: "sqlite"
  sqlite_path: "books.db"
csv:
  delimiter: "|"
display:
  currency: "EUR"
  date_format: "02.01.2006"
`
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(wd, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, BackendSQLite, config.Store.Backend)
	assert.Equal(t, "books.db", config.Store.SQLitePath)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "EUR", config.Display.Currency)
	assert.Equal(t, "02.01.2006", config.Display.DateFormat)
	assert.Equal(t, 5, config.Report.RecentLimit, "unset keys keep their defaults")
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	isolate(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(wd, "config.yaml"), []byte("log:\n  level: warn\ndisplay:\n  currency: EUR\n"), 0600))
	t.Setenv("MISI_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level, "environment wins over file")
	assert.Equal(t, "EUR", config.Display.Currency, "file wins over default")
	assert.Equal(t, "text", config.Log.Format, "default used when nothing overrides")
}

func TestInitializeConfigFromFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  recent_limit: 3\n"), 0600))

	config, err := InitializeConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, config.Report.RecentLimit)

	_, err = InitializeConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Log:     LogConfig{Level: "info", Format: "text"},
			Store:   StoreConfig{Backend: BackendYAML, YAMLFile: "misi.yaml", SQLitePath: "misi.db"},
			CSV:     CSVConfig{Delimiter: ","},
			Display: DisplayConfig{Currency: "USD", DateFormat: "2006-01-02"},
			Server:  ServerConfig{Addr: ":8080", ReadTimeoutSeconds: 15},
			Report:  ReportConfig{RecentLimit: 5},
		}
	}

	require.NoError(t, validateConfig(valid()))

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "postgres" }, "invalid store backend"},
		{"yaml without file", func(c *Config) { c.Store.YAMLFile = "" }, "store.yaml_file"},
		{"sqlite without path", func(c *Config) {
			c.Store.Backend = BackendSQLite
			c.Store.SQLitePath = ""
		}, "store.sqlite_path"},
		{"multi char delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "single character"},
		{"empty delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "single character"},
		{"empty date format", func(c *Config) { c.Display.DateFormat = "" }, "date_format"},
		{"empty server address", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeoutSeconds = 0 }, "read_timeout_seconds"},
		{"zero recent limit", func(c *Config) { c.Report.RecentLimit = 0 }, "recent_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestConfig_StorePath(t *testing.T) {
	c := &Config{Store: StoreConfig{Backend: BackendYAML, YAMLFile: "misi.yaml", SQLitePath: "misi.db"}}
	assert.Equal(t, "misi.yaml", c.StorePath())

	c.Data.Directory = "/var/lib/misi"
	assert.Equal(t, filepath.Join("/var/lib/misi", "misi.yaml"), c.StorePath())

	c.Store.Backend = BackendSQLite
	assert.Equal(t, filepath.Join("/var/lib/misi", "misi.db"), c.StorePath())

	c.Store.SQLitePath = "/abs/ledger.db"
	assert.Equal(t, "/abs/ledger.db", c.StorePath())
}

func TestConfig_Delimiter(t *testing.T) {
	assert.Equal(t, ';', (&Config{CSV: CSVConfig{Delimiter: ";"}}).Delimiter())
	assert.Equal(t, ',', (&Config{}).Delimiter())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	logger := ConfigureLoggingFromConfig(&Config{Log: LogConfig{Level: "debug", Format: "json"}})
	assert.Equal(t, logrus.DebugLevel, logger.Level)
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = ConfigureLoggingFromConfig(&Config{Log: LogConfig{Level: "nonsense", Format: "text"}})
	assert.Equal(t, logrus.InfoLevel, logger.Level)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("MISI_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("MISI_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("MISI_TEST_UNSET_VALUE", "fallback"))
}

func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"MISI_LOG_LEVEL",
		"MISI_LOG_FORMAT",
		"MISI_DATA_DIRECTORY",
		"MISI_STORE_BACKEND",
		"MISI_STORE_YAML_FILE",
		"MISI_STORE_SQLITE_PATH",
		"MISI_STORE_SEED_DEFAULTS",
		"MISI_CSV_DELIMITER",
		"MISI_DISPLAY_CURRENCY",
		"MISI_DISPLAY_DATE_FORMAT",
		"MISI_SERVER_ADDR",
		"MISI_SERVER_READ_TIMEOUT_SECONDS",
		"MISI_REPORT_RECENT_LIMIT",
	}
	for _, envVar := range envVars {
		// t.Setenv restores the previous value when the test ends.
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
