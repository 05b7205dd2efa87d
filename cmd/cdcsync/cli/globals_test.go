// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/cdcsync/lib/config"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

func TestSetupDefaults(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	cfg, logger, err := (&GlobalParams{}).Setup(nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if cfg.Chunk.AvgSize != 64<<10 || cfg.Store.Compression != "zstd" {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if logger == nil {
		t.Fatal("nil logger")
	}
}

func TestSetupFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cdcsync.yaml")
	content := "store:\n  location: /srv/chunks\nlog:\n  level: warn\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	params := &GlobalParams{ConfigPath: path, LogLevel: "debug"}
	cfg, logger, err := params.Setup(func(cfg *config.Config) {
		cfg.Store.Compression = "lz4"
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if cfg.Store.Location != "/srv/chunks" {
		t.Errorf("Store.Location = %q", cfg.Store.Location)
	}
	if cfg.Store.Compression != "lz4" {
		t.Errorf("override not applied: Store.Compression = %q", cfg.Store.Compression)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("--log-level did not override the file: %q", cfg.Log.Level)
	}
	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("logger does not emit debug records")
	}
}

func TestSetupErrors(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	tests := []struct {
		name     string
		params   GlobalParams
		override func(*config.Config)
		contains string
	}{
		{"missing file", GlobalParams{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")}, nil, "loading configuration"},
		{"bad log level", GlobalParams{LogLevel: "loud"}, nil, "log.level"},
		{"bad override", GlobalParams{}, func(cfg *config.Config) { cfg.Chunk.MinSize = cfg.Chunk.MaxSize + 1 }, "chunk sizes"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := test.params.Setup(test.override)
			if !failure.Is(err, failure.KindConfig) {
				t.Fatalf("error = %v, want config error", err)
			}
			if !strings.Contains(err.Error(), test.contains) {
				t.Errorf("error %q does not contain %q", err, test.contains)
			}
		})
	}
}
