// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package caindex

import (
	"github.com/bureau-foundation/cdcsync/lib/chunkid"
)

// Format constants. These are shared with casync; changing any of
// them makes files unreadable by other implementations.
const (
	// HeaderSize is the byte length of the index header and the value
	// of its first field.
	HeaderSize = 48

	// IndexMagic identifies an index header.
	IndexMagic uint64 = 0x96824d9c7b129ff9

	// TableMagic follows the table marker and introduces the records.
	TableMagic uint64 = 0xe75b9e112f17417d

	// TailMagic is the last word of the file.
	TailMagic uint64 = 0x4b4f050e5549ecd1

	// FlagSHA512256 declares SHA-512/256 chunk IDs. It is the only
	// feature flag this implementation accepts.
	FlagSHA512256 uint64 = 0x2000000000000000

	// tableMarker precedes TableMagic in place of a size field.
	tableMarker uint64 = 0xFFFFFFFFFFFFFFFF

	// tableHeaderSize covers the marker and TableMagic.
	tableHeaderSize = 16

	// recordSize is one table record: end offset plus chunk ID.
	recordSize = 8 + chunkid.Size

	// tailSize is the terminating record: zero offset plus four words.
	tailSize = recordSize
)

// tableSize returns the value stored in the tail's size field for a
// table holding count records.
func tableSize(count uint64) uint64 {
	return tableHeaderSize + count*recordSize + tailSize
}

// Header carries the index feature flags and the chunk size bounds the
// stream was chunked with.
type Header struct {
	Flags   uint64 `json:"flags"`
	MinSize uint64 `json:"min_size"`
	AvgSize uint64 `json:"avg_size"`
	MaxSize uint64 `json:"max_size"`
}

// NewHeader returns a header with the SHA-512/256 flag set.
func NewHeader(minSize, avgSize, maxSize uint64) Header {
	return Header{
		Flags:   FlagSHA512256,
		MinSize: minSize,
		AvgSize: avgSize,
		MaxSize: maxSize,
	}
}

// Chunk locates one chunk within the reconstructed stream.
type Chunk struct {
	ID    chunkid.ID `json:"id"`
	Start uint64     `json:"start"`
	Size  uint64     `json:"size"`
}

// End returns the offset one past the chunk's last byte.
func (c Chunk) End() uint64 {
	return c.Start + c.Size
}

// Index is a fully read chunk table. It is not modified after [Read]
// returns it.
type Index struct {
	Header Header  `json:"header"`
	Chunks []Chunk `json:"chunks"`
}

// Length returns the total length of the stream the index describes.
func (idx *Index) Length() uint64 {
	if len(idx.Chunks) == 0 {
		return 0
	}
	return idx.Chunks[len(idx.Chunks)-1].End()
}

// ByID returns a map from chunk ID to the first chunk carrying that
// ID. Repeated content maps to its earliest occurrence.
func (idx *Index) ByID() map[chunkid.ID]Chunk {
	byID := make(map[chunkid.ID]Chunk, len(idx.Chunks))
	for _, chunk := range idx.Chunks {
		if _, exists := byID[chunk.ID]; !exists {
			byID[chunk.ID] = chunk
		}
	}
	return byID
}
