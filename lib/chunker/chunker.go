// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunker

import (
	"bufio"
	"errors"
	"io"

	"github.com/bureau-foundation/cdcsync/lib/failure"
	"github.com/bureau-foundation/cdcsync/lib/rollinghash"
)

// Chunker reads a stream and returns it one chunk at a time.
type Chunker struct {
	reader        *bufio.Reader
	config        Config
	discriminator uint32
	hasher        rollinghash.Hasher
	offset        uint64
}

// New returns a Chunker over r. The configuration is validated.
func New(r io.Reader, config Config) (*Chunker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{
		reader:        bufio.NewReaderSize(r, 1<<20),
		config:        config,
		discriminator: Discriminator(config.AvgSize),
	}, nil
}

// Offset returns the number of bytes returned in chunks so far. After
// Next returns a chunk, Offset is that chunk's end offset.
func (c *Chunker) Offset() uint64 {
	return c.offset
}

// Next returns the next chunk, or io.EOF once the stream is exhausted.
// The returned slice is owned by the caller. Read failures are
// [failure.KindIO] errors.
func (c *Chunker) Next() ([]byte, error) {
	chunk := make([]byte, c.config.MinSize, c.config.MaxSize)

	// No boundary is possible inside the first MinSize bytes, so read
	// them in bulk.
	n, err := io.ReadFull(c.reader, chunk)
	switch {
	case errors.Is(err, io.EOF):
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		c.offset += uint64(n)
		return chunk[:n], nil
	case err != nil:
		return nil, failure.IO("reading source at offset %d: %w", c.offset, err)
	}

	c.hasher.Reset(chunk[len(chunk)-rollinghash.WindowSize:])
	for {
		in, err := c.reader.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, failure.IO("reading source at offset %d: %w", c.offset+uint64(len(chunk)), err)
		}

		hash := c.hasher.Roll(in)
		chunk = append(chunk, in)
		if uint64(len(chunk)) >= c.config.MaxSize || hash%c.discriminator == c.discriminator-1 {
			break
		}
	}

	c.offset += uint64(len(chunk))
	return chunk, nil
}
