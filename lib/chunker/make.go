// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunker

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/cdcsync/lib/caindex"
	"github.com/bureau-foundation/cdcsync/lib/castore"
	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/clock"
	"github.com/bureau-foundation/cdcsync/lib/fileutil"
)

// IndexWriter receives the index as it is produced. [caindex.Writer],
// [caindex.FileWriter], and [caindex.Memory] implement it.
type IndexWriter interface {
	WriteHeader(header caindex.Header) error
	AddEntry(end uint64, id chunkid.ID) error
	WriteTail() error
}

// Options configures [Make]. The zero value is usable.
type Options struct {
	Logger *slog.Logger
	Clock  clock.Clock
}

// Result summarizes a [Make] run.
type Result struct {
	// Chunks is the number of index records written, duplicates
	// included.
	Chunks uint64

	// Bytes is the length of the input stream.
	Bytes uint64

	// Digest is the hex BLAKE3-256 digest of the whole input stream.
	// "cdcsync extract --expect-digest" checks reconstructed output
	// against it.
	Digest string

	Duration time.Duration

	// Store holds the store's write counters when the store reports
	// them, nil otherwise.
	Store *castore.Stats
}

// Make chunks source, writes every chunk to store, and records the
// chunk table in index: header first, one entry per chunk in stream
// order, then the tail. The context is checked between chunks.
//
// On error the index is left without a tail; callers using a
// [caindex.FileWriter] close it to discard the partial file.
func Make(ctx context.Context, source io.Reader, config Config, store castore.Store, index IndexWriter, options Options) (*Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := clock.OrReal(options.Clock)
	start := clk.Now()

	if file, ok := source.(*os.File); ok {
		fileutil.AdviseSequential(file)
	}

	digest := blake3.New()
	chunker, err := New(io.TeeReader(source, digest), config)
	if err != nil {
		return nil, err
	}

	if err := index.WriteHeader(config.Header()); err != nil {
		return nil, fmt.Errorf("writing index header: %w", err)
	}

	var chunks uint64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := chunker.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		id, err := store.WriteItem(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("storing chunk %d: %w", chunks, err)
		}
		end := chunker.Offset()
		if err := index.AddEntry(end, id); err != nil {
			return nil, fmt.Errorf("indexing chunk %d: %w", chunks, err)
		}

		logger.Debug("chunk",
			"number", chunks,
			"id", id,
			"start", end-uint64(len(data)),
			"size", len(data),
		)
		chunks++
	}

	if err := index.WriteTail(); err != nil {
		return nil, fmt.Errorf("writing index tail: %w", err)
	}

	result := &Result{
		Chunks:   chunks,
		Bytes:    chunker.Offset(),
		Digest:   hex.EncodeToString(digest.Sum(nil)),
		Duration: clock.Since(clk, start),
	}
	if reporter, ok := store.(castore.StatsReporter); ok {
		stats := reporter.Stats()
		result.Store = &stats
	}

	logger.Info("chunking complete",
		"chunks", result.Chunks,
		"bytes", result.Bytes,
		"digest", result.Digest,
		"duration", result.Duration,
	)
	return result, nil
}
