// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package assemble

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/cdcsync/lib/caindex"
	"github.com/bureau-foundation/cdcsync/lib/castore"
	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/clock"
	"github.com/bureau-foundation/cdcsync/lib/failure"
	"github.com/bureau-foundation/cdcsync/lib/seed"
)

// Assembler rebuilds streams from a store and an optional seed.
type Assembler struct {
	// Store serves every chunk the seed cannot.
	Store castore.Store

	// Seed is optional.
	Seed *seed.Seed

	// ExpectDigest, when set, is the hex BLAKE3-256 digest the output
	// must have. A mismatch fails the run after the last chunk, before
	// [Assembler.AssembleFile] publishes the file.
	ExpectDigest string

	Logger *slog.Logger
	Clock  clock.Clock
}

// Stats summarizes an [Assembler.Assemble] run.
type Stats struct {
	Chunks    uint64 `json:"chunks"`
	FromSeed  uint64 `json:"from_seed"`
	FromStore uint64 `json:"from_store"`

	SeedBytes  uint64 `json:"seed_bytes"`
	StoreBytes uint64 `json:"store_bytes"`

	// SeedMismatches counts seed ranges that no longer hashed to the
	// ID the seed index recorded and were fetched from the store
	// instead.
	SeedMismatches uint64 `json:"seed_mismatches"`

	// Digest is the hex BLAKE3-256 digest of the output stream.
	Digest string `json:"digest"`

	Duration time.Duration `json:"duration"`
}

// Bytes returns the total output length.
func (s *Stats) Bytes() uint64 {
	return s.SeedBytes + s.StoreBytes
}

// Assemble writes the stream described by target to w, chunk by chunk
// in index order. The context is checked between chunks.
func (a *Assembler) Assemble(ctx context.Context, target *caindex.Index, w io.Writer) (*Stats, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := clock.OrReal(a.Clock)
	start := clk.Now()

	if a.Store == nil {
		return nil, failure.Config("assembling without a chunk store")
	}

	// Index the seed once; per-chunk lookups are then constant time.
	var seedChunks map[chunkid.ID]caindex.Chunk
	if a.Seed != nil {
		if a.Seed.File == nil || a.Seed.Index == nil {
			return nil, failure.Config("seed requires both a seed file and a seed index")
		}
		seedChunks = a.Seed.Index.ByID()
		logger.Info("using seed",
			"file", a.Seed.File.Path(),
			"seed_chunks", len(a.Seed.Index.Chunks),
			"distinct", len(seedChunks),
		)
	}

	digest := blake3.New()
	output := io.MultiWriter(w, digest)
	stats := &Stats{}

	for number, chunk := range target.Chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := a.resolve(ctx, logger, chunk, seedChunks, stats)
		if err != nil {
			return nil, fmt.Errorf("chunk %d (%s) at offset %d: %w", number, chunk.ID, chunk.Start, err)
		}
		if _, err := output.Write(data); err != nil {
			return nil, failure.IO("writing chunk %d at offset %d: %w", number, chunk.Start, err)
		}
		stats.Chunks++
	}

	stats.Digest = hex.EncodeToString(digest.Sum(nil))
	if a.ExpectDigest != "" && !strings.EqualFold(a.ExpectDigest, stats.Digest) {
		return nil, failure.Format("output digest %s does not match expected %s", stats.Digest, a.ExpectDigest)
	}
	stats.Duration = clock.Since(clk, start)
	logger.Info("assembly complete",
		"chunks", stats.Chunks,
		"from_seed", stats.FromSeed,
		"from_store", stats.FromStore,
		"seed_mismatches", stats.SeedMismatches,
		"bytes", stats.Bytes(),
		"duration", stats.Duration,
	)
	return stats, nil
}

// resolve returns the content of one target chunk, from the seed when
// possible.
func (a *Assembler) resolve(ctx context.Context, logger *slog.Logger, chunk caindex.Chunk, seedChunks map[chunkid.ID]caindex.Chunk, stats *Stats) ([]byte, error) {
	if seedChunk, found := seedChunks[chunk.ID]; found {
		data, err := a.Seed.File.ReadRange(seedChunk.Start, seedChunk.Size)
		switch {
		case err == nil && chunkid.Sum(data) == chunk.ID:
			stats.FromSeed++
			stats.SeedBytes += uint64(len(data))
			logger.Debug("chunk from seed", "id", chunk.ID, "seed_offset", seedChunk.Start, "size", len(data))
			return data, nil
		case err == nil:
			logger.Warn("seed content changed, fetching chunk from store",
				"id", chunk.ID,
				"seed_offset", seedChunk.Start,
				"size", seedChunk.Size,
			)
		case failure.Is(err, failure.KindFormat):
			logger.Warn("seed range unreadable, fetching chunk from store",
				"id", chunk.ID,
				"error", err,
			)
		default:
			return nil, err
		}
		stats.SeedMismatches++
	}

	data, err := a.Store.ReadItem(ctx, chunk.ID)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) != chunk.Size {
		return nil, failure.Format("store returned %d bytes, index records %d", len(data), chunk.Size)
	}
	stats.FromStore++
	stats.StoreBytes += uint64(len(data))
	logger.Debug("chunk from store", "id", chunk.ID, "size", len(data))
	return data, nil
}
