package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds the complete prefill configuration
type Config struct {
	Logs        LogsConfig        `yaml:"logs"`
	Output      OutputConfig      `yaml:"output"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LogsConfig configures log ingestion
type LogsConfig struct {
	Dirs    []string `yaml:"dirs"`    // Directories of Cabrillo logs
	Seed    string   `yaml:"seed"`    // Pre-existing prefill file (N1MM format)
	Dialect string   `yaml:"dialect"` // Force a dialect instead of reading CONTEST: headers
}

// OutputConfig configures the emitted prefill file
type OutputConfig struct {
	Format  string `yaml:"format"` // n1mm, wintest, writelog
	Path    string `yaml:"path"`   // Output file ("" = stdout)
	Verbose bool   `yaml:"verbose"`
}

// CacheConfig configures the parsed-log cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig configures worker counts
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"` // Parallel file parses and callsign resolutions
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cacheDir := ".prefill-cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".prefill", "cache")
	}

	return &Config{
		Logs: LogsConfig{},
		Output: OutputConfig{
			Format: "n1mm",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     cacheDir,
			TTL:     30 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
	}
}
