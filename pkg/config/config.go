package config

import (
	"github.com/baesync/baesync/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Comparison ComparisonConfig `yaml:"comparison"`
	Transfer   TransferConfig   `yaml:"transfer"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ComparisonConfig holds scan and equality settings
type ComparisonConfig struct {
	// StrictChecksum treats a missing checksum as a mismatch
	StrictChecksum bool `yaml:"strict_checksum"`
	// Workers sizes the checksum worker pool (1 = sequential)
	Workers int `yaml:"workers"`
	// ChunkSize is the streaming read size for hashing, in bytes
	ChunkSize int `yaml:"chunk_size"`
	// BandwidthLimit throttles checksum reads, bytes per second (0 = unlimited)
	BandwidthLimit int64 `yaml:"bandwidth_limit"`
}

// TransferConfig holds defaults for the transfer primitive's options
type TransferConfig struct {
	Recursive           bool `yaml:"recursive"`
	Delete              bool `yaml:"delete"`
	PreservePermissions bool `yaml:"preserve_permissions"`
	PreserveTimes       bool `yaml:"preserve_times"`
	PreserveOwner       bool `yaml:"preserve_owner"`
	PreserveGroup       bool `yaml:"preserve_group"`
	Progress            bool `yaml:"progress"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show scan progress bars
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"`  // "json" or "text"
	Level   string `yaml:"level"`   // "debug", "info", "warn", "error"
	File    string `yaml:"file"`    // Log file path
	Console bool   `yaml:"console"` // Mirror log entries to stderr
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Comparison: ComparisonConfig{
			StrictChecksum: false,
			Workers:        4,
			ChunkSize:      8192,
			BandwidthLimit: 0,
		},
		Transfer: TransferConfig{
			Recursive:     true,
			PreserveTimes: true,
			Progress:      true,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "text",
			Level:   "info",
			File:    "baesync_transfer.log",
			Console: false,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Comparison.Workers < 1 {
		return &models.ValidationError{
			Field:   "comparison.workers",
			Message: "must be at least 1",
		}
	}

	if c.Comparison.ChunkSize < 1024 {
		return &models.ValidationError{
			Field:   "comparison.chunk_size",
			Message: "must be at least 1024 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
