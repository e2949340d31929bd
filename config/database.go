package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DatabaseConfig holds the SQLite connection settings.
type DatabaseConfig struct {
	Path        string `json:"path"`
	JournalMode string `json:"journalMode"`
	Synchronous string `json:"synchronous"`
	BusyTimeout int    `json:"busyTimeout"` // milliseconds
}

// GetDefaultDatabaseConfig returns the configuration used by the web server.
func GetDefaultDatabaseConfig() *DatabaseConfig {
	return NewDatabaseConfig(GetDBPath())
}

// NewDatabaseConfig returns a configuration for the database file at path.
func NewDatabaseConfig(path string) *DatabaseConfig {
	return &DatabaseConfig{
		Path:        path,
		JournalMode: "WAL",
		Synchronous: "NORMAL",
		BusyTimeout: 5000,
	}
}

// GetDSN returns the data source name passed to the sqlite driver.
func (c *DatabaseConfig) GetDSN() string {
	params := []string{"cache=shared"}
	if c.JournalMode != "" {
		params = append(params, "_journal_mode="+c.JournalMode)
	}
	if c.Synchronous != "" {
		params = append(params, "_synchronous="+c.Synchronous)
	}
	if c.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", c.BusyTimeout))
	}
	return c.Path + "?" + strings.Join(params, "&")
}

// ValidateConfig validates the database configuration
func (c *DatabaseConfig) ValidateConfig() error {
	if c.Path == "" {
		return fmt.Errorf("SQLite path cannot be empty")
	}
	switch strings.ToUpper(c.JournalMode) {
	case "", "WAL", "DELETE", "TRUNCATE", "MEMORY":
	default:
		return fmt.Errorf("unsupported journal mode: %s", c.JournalMode)
	}
	return nil
}

// EnsureDirectoryExists ensures the directory for the database file exists
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	return os.MkdirAll(filepath.Dir(c.Path), 0o755)
}
