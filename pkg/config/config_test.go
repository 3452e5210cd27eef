package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration should validate, got %v", err)
	}

	if cfg.Comparison.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Comparison.Workers)
	}
	if cfg.Comparison.ChunkSize != 8192 {
		t.Errorf("ChunkSize = %d, want 8192", cfg.Comparison.ChunkSize)
	}
	if cfg.Comparison.StrictChecksum {
		t.Error("StrictChecksum should default to false")
	}
	if !cfg.Transfer.Recursive {
		t.Error("Recursive should default to true")
	}
	if !cfg.Transfer.PreserveTimes {
		t.Error("PreserveTimes should default to true")
	}
	if cfg.Transfer.Delete {
		t.Error("Delete should default to false")
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Output.Format = %s, want human", cfg.Output.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"ZeroWorkers", func(c *Config) { c.Comparison.Workers = 0 }, "comparison.workers"},
		{"NegativeWorkers", func(c *Config) { c.Comparison.Workers = -1 }, "comparison.workers"},
		{"TinyChunkSize", func(c *Config) { c.Comparison.ChunkSize = 512 }, "comparison.chunk_size"},
		{"BadOutputFormat", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"BadLogFormat", func(c *Config) { c.Logging.Format = "csv" }, "logging.format"},
		{"BadLogLevel", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
		})
	}

	t.Run("ValidVariants", func(t *testing.T) {
		cfg := Default()
		cfg.Output.Format = "json"
		cfg.Logging.Format = "json"
		cfg.Logging.Level = "debug"
		cfg.Comparison.Workers = 1
		cfg.Comparison.ChunkSize = 1024

		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

func TestLoadSaveRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "baesync-config-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Comparison.StrictChecksum = true
	cfg.Comparison.Workers = 8
	cfg.Comparison.BandwidthLimit = 1024 * 1024
	cfg.Transfer.Delete = true
	cfg.Output.Format = "json"
	cfg.Logging.Level = "debug"

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if !loaded.Comparison.StrictChecksum {
		t.Error("StrictChecksum should survive the round trip")
	}
	if loaded.Comparison.Workers != 8 {
		t.Errorf("Workers = %d, want 8", loaded.Comparison.Workers)
	}
	if loaded.Comparison.BandwidthLimit != 1024*1024 {
		t.Errorf("BandwidthLimit = %d, want %d", loaded.Comparison.BandwidthLimit, 1024*1024)
	}
	if !loaded.Transfer.Delete {
		t.Error("Delete should survive the round trip")
	}
	if loaded.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want json", loaded.Output.Format)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", loaded.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "baesync-config-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(tempDir, "absent.yaml")); err == nil {
			t.Error("LoadFromFile() should fail for a missing file")
		}
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		path := filepath.Join(tempDir, "bad.yaml")
		if err := os.WriteFile(path, []byte("comparison: [not a mapping"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail for malformed YAML")
		}
	})

	t.Run("InvalidValues", func(t *testing.T) {
		path := filepath.Join(tempDir, "invalid.yaml")
		if err := os.WriteFile(path, []byte("comparison:\n  workers: 0\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should reject invalid values")
		}
	})

	t.Run("PartialFileKeepsDefaults", func(t *testing.T) {
		path := filepath.Join(tempDir, "partial.yaml")
		if err := os.WriteFile(path, []byte("comparison:\n  workers: 2\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}

		if cfg.Comparison.Workers != 2 {
			t.Errorf("Workers = %d, want 2", cfg.Comparison.Workers)
		}
		// Unspecified settings keep their defaults.
		if cfg.Comparison.ChunkSize != 8192 {
			t.Errorf("ChunkSize = %d, want default 8192", cfg.Comparison.ChunkSize)
		}
		if cfg.Output.Format != "human" {
			t.Errorf("Output.Format = %s, want default human", cfg.Output.Format)
		}
	})
}

func TestSaveToFileRejectsInvalid(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "baesync-config-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := Default()
	cfg.Comparison.Workers = 0

	path := filepath.Join(tempDir, "config.yaml")
	if err := SaveToFile(cfg, path); err == nil {
		t.Error("SaveToFile() should reject an invalid configuration")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an invalid configuration")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error = %v", err)
	}

	if filepath.Base(path) != "config.yaml" {
		t.Errorf("path = %s, want a config.yaml leaf", path)
	}
	if filepath.Base(filepath.Dir(path)) != "baesync" {
		t.Errorf("path = %s, want a baesync directory", path)
	}
}
