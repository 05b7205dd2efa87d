// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package castore

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// Store reads and writes chunks by content ID. Implementations are safe
// for concurrent use.
type Store interface {
	// WriteItem stores data and returns its ID. Writing content that
	// is already present is a no-op that returns the same ID.
	WriteItem(ctx context.Context, data []byte) (chunkid.ID, error)

	// ReadItem returns the uncompressed content for id. A missing
	// chunk is a [failure.KindNotFound] error; content that does not
	// hash back to id is a [failure.KindFormat] error.
	ReadItem(ctx context.Context, id chunkid.ID) ([]byte, error)
}

// StatsReporter is implemented by stores that count writes.
type StatsReporter interface {
	Stats() Stats
}

// Options configures a store opened with [Open], [NewLocal], or
// [NewRemote]. The zero value selects zstd, no HTTP timeout, the
// default HTTP client, and a discarding logger.
type Options struct {
	// Compression selects the blob codec.
	Compression Compression

	// Timeout bounds each HTTP request made by a remote store. Zero
	// means no timeout beyond the caller's context.
	Timeout time.Duration

	// HTTPClient overrides the client used by remote stores.
	HTTPClient *http.Client

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// decodeChunk decompresses a blob fetched for id and checks that its
// content hashes back to id.
func decodeChunk(id chunkid.ID, compressed []byte, compression Compression) ([]byte, error) {
	data, err := decompressChunk(compressed, compression)
	if err != nil {
		return nil, failure.Format("chunk %s: %w", id, err)
	}
	if actual := chunkid.Sum(data); actual != id {
		return nil, failure.Format("chunk %s: content hashes to %s", id, actual)
	}
	return data, nil
}
