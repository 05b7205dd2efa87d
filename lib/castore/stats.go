// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package castore

import "sync/atomic"

// Stats counts the chunks offered to a store since it was opened.
// Chunks = NewChunks + ExistingChunks.
type Stats struct {
	Chunks         uint64 `json:"chunks"`
	NewChunks      uint64 `json:"new_chunks"`
	ExistingChunks uint64 `json:"existing_chunks"`

	// Bytes is the total uncompressed size of every chunk offered,
	// new or not. NewBytes covers only the chunks actually written.
	Bytes    uint64 `json:"bytes"`
	NewBytes uint64 `json:"new_bytes"`

	// CompressedBytes is the on-disk size of the new blobs.
	CompressedBytes uint64 `json:"compressed_bytes"`
}

type counters struct {
	chunks          atomic.Uint64
	newChunks       atomic.Uint64
	existingChunks  atomic.Uint64
	bytes           atomic.Uint64
	newBytes        atomic.Uint64
	compressedBytes atomic.Uint64
}

func (c *counters) recordNew(size, compressedSize int) {
	c.chunks.Add(1)
	c.newChunks.Add(1)
	c.bytes.Add(uint64(size))
	c.newBytes.Add(uint64(size))
	c.compressedBytes.Add(uint64(compressedSize))
}

func (c *counters) recordExisting(size int) {
	c.chunks.Add(1)
	c.existingChunks.Add(1)
	c.bytes.Add(uint64(size))
}

func (c *counters) snapshot() Stats {
	return Stats{
		Chunks:          c.chunks.Load(),
		NewChunks:       c.newChunks.Load(),
		ExistingChunks:  c.existingChunks.Load(),
		Bytes:           c.bytes.Load(),
		NewBytes:        c.newBytes.Load(),
		CompressedBytes: c.compressedBytes.Load(),
	}
}
