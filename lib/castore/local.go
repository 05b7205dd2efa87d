// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package castore

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// Local is a chunk store rooted at a directory.
type Local struct {
	root        string
	compression Compression
	logger      *slog.Logger
	counters    counters
}

// NewLocal opens the local store at root, creating the directory if it
// does not exist.
func NewLocal(root string, options Options) (*Local, error) {
	if root == "" {
		return nil, failure.Config("local store path is empty")
	}
	store := &Local{
		root:        root,
		compression: options.Compression,
		logger:      options.logger(),
	}
	if _, err := store.Create(""); err != nil {
		return nil, err
	}
	return store, nil
}

// Root returns the store's root directory.
func (s *Local) Root() string {
	return s.root
}

// Compression returns the codec used for blobs in this store.
func (s *Local) Compression() Compression {
	return s.compression
}

// Create ensures the directory root/subpath exists and returns its path.
func (s *Local) Create(subpath string) (string, error) {
	path := filepath.Join(s.root, subpath)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", failure.IO("creating store directory %s: %w", path, err)
	}
	return path, nil
}

// ChunkPath returns the blob path for id.
func (s *Local) ChunkPath(id chunkid.ID) string {
	return filepath.Join(s.root, id.Shard(), id.String()+s.compression.Extension())
}

// Has reports whether a blob for id exists.
func (s *Local) Has(id chunkid.ID) bool {
	_, err := os.Stat(s.ChunkPath(id))
	return err == nil
}

// WriteItem stores data if no blob with its ID exists yet.
func (s *Local) WriteItem(ctx context.Context, data []byte) (chunkid.ID, error) {
	if err := ctx.Err(); err != nil {
		return chunkid.ID{}, err
	}

	id := chunkid.Sum(data)
	finalPath := s.ChunkPath(id)

	_, err := os.Stat(finalPath)
	if err == nil {
		s.counters.recordExisting(len(data))
		s.logger.Debug("chunk already stored", "id", id, "size", len(data))
		return id, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return chunkid.ID{}, failure.IO("checking chunk %s: %w", id, err)
	}

	shardDir, err := s.Create(id.Shard())
	if err != nil {
		return chunkid.ID{}, err
	}

	compressed, err := compressChunk(data, s.compression)
	if err != nil {
		return chunkid.ID{}, failure.Internal("chunk %s: %w", id, err)
	}

	tmpFile, err := os.CreateTemp(shardDir, ".chunk-*.tmp")
	if err != nil {
		return chunkid.ID{}, failure.IO("creating temp chunk file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// The temp file is removed on every path: on success the blob
	// lives on under its final name via the hard link.
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(compressed); err != nil {
		tmpFile.Close()
		return chunkid.ID{}, failure.IO("writing chunk %s: %w", id, err)
	}
	if err := tmpFile.Close(); err != nil {
		return chunkid.ID{}, failure.IO("closing chunk %s: %w", id, err)
	}

	// Link fails with EEXIST when another writer published the same
	// chunk first. Either way the blob at finalPath is complete.
	if err := os.Link(tmpPath, finalPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			s.counters.recordExisting(len(data))
			s.logger.Debug("chunk stored concurrently", "id", id, "size", len(data))
			return id, nil
		}
		return chunkid.ID{}, failure.IO("publishing chunk %s: %w", id, err)
	}

	s.counters.recordNew(len(data), len(compressed))
	s.logger.Debug("chunk stored",
		"id", id,
		"size", len(data),
		"compressed_size", len(compressed),
	)
	return id, nil
}

// ReadItem reads, decompresses, and verifies the blob for id.
func (s *Local) ReadItem(ctx context.Context, id chunkid.ID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.ChunkPath(id)
	compressed, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, failure.NotFound("chunk %s not in store %s", id, s.root)
		}
		return nil, failure.IO("reading chunk %s: %w", id, err)
	}
	return decodeChunk(id, compressed, s.compression)
}

// Stats returns the write counters accumulated since the store was
// opened.
func (s *Local) Stats() Stats {
	return s.counters.snapshot()
}
