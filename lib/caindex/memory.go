// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package caindex

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/cdcsync/lib/chunkid"
)

// Memory builds an index in memory through the same sequential
// contract as [Writer]. Use it when chunk boundaries are needed
// without persisting an index file.
type Memory struct {
	sequence sequence
	index    Index
}

// NewMemory returns an empty in-memory index.
func NewMemory() *Memory {
	return &Memory{}
}

// WriteHeader records the header.
func (m *Memory) WriteHeader(header Header) error {
	if err := m.sequence.header(header); err != nil {
		return err
	}
	m.index.Header = header
	return nil
}

// AddEntry records a chunk ending at end.
func (m *Memory) AddEntry(end uint64, id chunkid.ID) error {
	start := m.sequence.lastEnd
	if err := m.sequence.entry(end); err != nil {
		return err
	}
	m.index.Chunks = append(m.index.Chunks, Chunk{ID: id, Start: start, Size: end - start})
	return nil
}

// WriteTail completes the index.
func (m *Memory) WriteTail() error {
	return m.sequence.tail()
}

// Index returns the completed index. It fails if the tail has not been
// written.
func (m *Memory) Index() (*Index, error) {
	if m.sequence.state != stateClosed {
		return nil, fmt.Errorf("in-memory index is incomplete")
	}
	return &m.index, nil
}

// WriteTo serialises the completed index in the on-disk format.
func (m *Memory) WriteTo(w io.Writer) (int64, error) {
	idx, err := m.Index()
	if err != nil {
		return 0, err
	}
	counter := &countingWriter{w: w}
	err = Write(counter, idx)
	return counter.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
