// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "CDCSYNC_CONFIG"

// Config is the master configuration for cdcsync.
type Config struct {
	// Chunk sets the chunk size bounds used by "make" and by
	// "list-chunks -f".
	Chunk ChunkConfig `yaml:"chunk" json:"chunk"`

	// Store selects the default chunk store.
	Store StoreConfig `yaml:"store" json:"store"`

	// Remote configures HTTP chunk stores.
	Remote RemoteConfig `yaml:"remote" json:"remote"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log" json:"log"`
}

// ChunkConfig holds chunk size bounds in bytes.
type ChunkConfig struct {
	MinSize uint64 `yaml:"min_size" json:"min_size"`
	AvgSize uint64 `yaml:"avg_size" json:"avg_size"`
	MaxSize uint64 `yaml:"max_size" json:"max_size"`
}

// StoreConfig selects the chunk store.
type StoreConfig struct {
	// Location is a directory path, file:// URL, or http(s):// URL.
	// Used when -s is not given.
	Location string `yaml:"location" json:"location"`

	// Compression is the blob codec: "zstd" or "lz4".
	// Default: zstd
	Compression string `yaml:"compression" json:"compression"`
}

// RemoteConfig configures HTTP chunk stores.
type RemoteConfig struct {
	// Timeout bounds each chunk request, as a Go duration string.
	// "0" disables the per-request deadline.
	// Default: 60s
	Timeout string `yaml:"timeout" json:"timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level" json:"level"`
}

// Default returns the configuration used when no file is given, and the
// base that a loaded file is merged over.
func Default() *Config {
	return &Config{
		Chunk: ChunkConfig{
			MinSize: 16 << 10,
			AvgSize: 64 << 10,
			MaxSize: 256 << 10,
		},
		Store: StoreConfig{
			Compression: "zstd",
		},
		Remote: RemoteConfig{
			Timeout: "60s",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the CDCSYNC_CONFIG environment
// variable. It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your cdcsync.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// Resolve returns the configuration for a command: the file at path if
// path is non-empty, else the file named by CDCSYNC_CONFIG if set, else
// [Default].
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	return Default(), nil
}

// LoadFile loads configuration from a specific file path, merged over
// [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

// loadFile decodes a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// JSON is a subset of YAML, so one decoder serves both once
		// comments and trailing commas are stripped.
		data = jsonc.ToJSON(data)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// store location.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Store.Location = expandVars(c.Store.Location, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// RemoteTimeout parses Remote.Timeout.
func (c *Config) RemoteTimeout() (time.Duration, error) {
	if c.Remote.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Remote.Timeout)
	if err != nil {
		return 0, fmt.Errorf("remote.timeout: %w", err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("remote.timeout must not be negative, got %s", c.Remote.Timeout)
	}
	return timeout, nil
}

// Validate checks the configuration for errors. Chunk bounds are only
// checked for order here; the chunker applies its own stricter limits.
func (c *Config) Validate() error {
	var errs []error

	chunk := c.Chunk
	if chunk.MinSize == 0 || chunk.AvgSize == 0 || chunk.MaxSize == 0 {
		errs = append(errs, fmt.Errorf("chunk.min_size, chunk.avg_size, and chunk.max_size are required"))
	} else if chunk.MinSize > chunk.AvgSize || chunk.AvgSize > chunk.MaxSize {
		errs = append(errs, fmt.Errorf("chunk sizes must satisfy min_size <= avg_size <= max_size, got %d/%d/%d",
			chunk.MinSize, chunk.AvgSize, chunk.MaxSize))
	}

	compressions := []string{"zstd", "lz4"}
	if !slices.Contains(compressions, c.Store.Compression) {
		errs = append(errs, fmt.Errorf("store.compression must be one of: %v", compressions))
	}

	if _, err := c.RemoteTimeout(); err != nil {
		errs = append(errs, err)
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
