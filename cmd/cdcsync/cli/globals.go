// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/bureau-foundation/cdcsync/lib/config"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// GlobalParams holds the flags every command accepts. Embed it in a
// command's params struct.
type GlobalParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"configuration file (default: $CDCSYNC_CONFIG, then built-in defaults)"`
	LogLevel   string `json:"-" flag:"log-level" desc:"log level: debug, info, warn, or error (overrides the config file)"`
}

// Setup loads the configuration, lets override apply command-line
// flags on top of it, validates the result, and builds the command
// logger at the configured level. override may be nil.
func (g *GlobalParams) Setup(override func(*config.Config)) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(g.ConfigPath)
	if err != nil {
		return nil, nil, failure.Config("loading configuration: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, failure.Config("invalid configuration: %w", err)
	}
	level, err := ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, NewCommandLogger(level), nil
}
