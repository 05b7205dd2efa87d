// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"

	"github.com/bureau-foundation/cdcsync/lib/castore"
	"github.com/bureau-foundation/cdcsync/lib/chunker"
	"github.com/bureau-foundation/cdcsync/lib/config"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// chunkFlags are the size-bound flags shared by make and list-chunks.
type chunkFlags struct {
	MinSize uint64 `json:"min_size" flag:"min" desc:"minimum chunk size in bytes (default: derived from --avg, or chunk.min_size)"`
	AvgSize uint64 `json:"avg_size" flag:"avg" desc:"average chunk size in bytes (default: chunk.avg_size)"`
	MaxSize uint64 `json:"max_size" flag:"max" desc:"maximum chunk size in bytes (default: derived from --avg, or chunk.max_size)"`
}

// apply overrides the configured bounds. --avg alone derives the
// other two bounds from it.
func (f *chunkFlags) apply(cfg *config.Config) {
	if f.AvgSize != 0 {
		derived := chunker.FromAverage(f.AvgSize)
		cfg.Chunk = config.ChunkConfig{MinSize: derived.MinSize, AvgSize: derived.AvgSize, MaxSize: derived.MaxSize}
	}
	if f.MinSize != 0 {
		cfg.Chunk.MinSize = f.MinSize
	}
	if f.MaxSize != 0 {
		cfg.Chunk.MaxSize = f.MaxSize
	}
}

func chunkConfig(cfg *config.Config) chunker.Config {
	return chunker.Config{
		MinSize: cfg.Chunk.MinSize,
		AvgSize: cfg.Chunk.AvgSize,
		MaxSize: cfg.Chunk.MaxSize,
	}
}

// openStore opens the store named by the -s flag, falling back to
// store.location from the configuration.
func openStore(location string, cfg *config.Config, logger *slog.Logger) (castore.Store, error) {
	if location == "" {
		location = cfg.Store.Location
	}
	if location == "" {
		return nil, failure.Config("no chunk store: pass -s or set store.location in the configuration")
	}
	compression, err := castore.ParseCompression(cfg.Store.Compression)
	if err != nil {
		return nil, failure.Config("%w", err)
	}
	timeout, err := cfg.RemoteTimeout()
	if err != nil {
		return nil, failure.Config("%w", err)
	}
	return castore.Open(location, castore.Options{
		Compression: compression,
		Timeout:     timeout,
		Logger:      logger,
	})
}
