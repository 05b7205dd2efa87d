// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package caindex

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// ReadFile reads and validates the index at path.
func ReadFile(path string) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, failure.IO("opening index %s: %w", path, err)
	}
	defer file.Close()

	idx, err := Read(file)
	if err != nil {
		return nil, failureWithPath(err, path)
	}
	return idx, nil
}

// Read parses an index from r. Bad magic numbers, unsupported flags,
// non-increasing offsets, a malformed tail, truncation, and trailing
// bytes are all format errors.
func Read(r io.Reader) (*Index, error) {
	reader := &indexReader{in: bufio.NewReader(r)}

	var header Header
	var size, magic uint64
	for _, field := range []*uint64{
		&size, &magic, &header.Flags, &header.MinSize, &header.AvgSize, &header.MaxSize,
	} {
		if err := reader.uint64(field); err != nil {
			return nil, reader.wrap("reading index header", err)
		}
	}
	if size != HeaderSize {
		return nil, failure.Format("index header size is %d, want %d", size, HeaderSize)
	}
	if magic != IndexMagic {
		return nil, failure.Format("index magic is %#x, want %#x", magic, IndexMagic)
	}
	if header.Flags != FlagSHA512256 {
		return nil, failure.Format("unsupported index feature flags %#x (only SHA-512/256 %#x is supported)",
			header.Flags, FlagSHA512256)
	}

	var marker, tableMagic uint64
	if err := reader.uint64(&marker); err != nil {
		return nil, reader.wrap("reading table header", err)
	}
	if err := reader.uint64(&tableMagic); err != nil {
		return nil, reader.wrap("reading table header", err)
	}
	if marker != tableMarker || tableMagic != TableMagic {
		return nil, failure.Format("index table header is (%#x, %#x), want (%#x, %#x)",
			marker, tableMagic, tableMarker, TableMagic)
	}

	idx := &Index{Header: header}
	var previousEnd uint64
	for {
		var end uint64
		if err := reader.uint64(&end); err != nil {
			return nil, reader.wrap("reading table record", err)
		}
		var id chunkid.ID
		if err := reader.full(id[:]); err != nil {
			return nil, reader.wrap("reading table record", err)
		}

		if end == 0 {
			if err := validateTail(id, uint64(len(idx.Chunks))); err != nil {
				return nil, err
			}
			break
		}

		if end <= previousEnd {
			return nil, failure.Format("table record %d end offset %d does not follow previous end %d",
				len(idx.Chunks), end, previousEnd)
		}
		idx.Chunks = append(idx.Chunks, Chunk{
			ID:    id,
			Start: previousEnd,
			Size:  end - previousEnd,
		})
		previousEnd = end
	}

	if _, err := reader.in.ReadByte(); err == nil {
		return nil, failure.Format("unexpected data after index tail")
	} else if err != io.EOF {
		return nil, failure.IO("reading after index tail: %w", err)
	}

	return idx, nil
}

// validateTail checks the four words that follow the zero offset of
// the terminating record.
func validateTail(slot chunkid.ID, count uint64) error {
	padding := binary.LittleEndian.Uint64(slot[0:8])
	headerSize := binary.LittleEndian.Uint64(slot[8:16])
	size := binary.LittleEndian.Uint64(slot[16:24])
	magic := binary.LittleEndian.Uint64(slot[24:32])

	if padding != 0 {
		return failure.Format("index tail padding is %#x, want 0", padding)
	}
	if headerSize != HeaderSize {
		return failure.Format("index tail header offset is %d, want %d", headerSize, HeaderSize)
	}
	if magic != TailMagic {
		return failure.Format("index tail magic is %#x, want %#x", magic, TailMagic)
	}
	if want := tableSize(count); size != want {
		return failure.Format("index tail table size is %d, want %d for %d records", size, want, count)
	}
	return nil
}

type indexReader struct {
	in      *bufio.Reader
	scratch [8]byte
}

func (r *indexReader) uint64(value *uint64) error {
	if err := r.full(r.scratch[:]); err != nil {
		return err
	}
	*value = binary.LittleEndian.Uint64(r.scratch[:])
	return nil
}

func (r *indexReader) full(buffer []byte) error {
	_, err := io.ReadFull(r.in, buffer)
	return err
}

// wrap classifies a read error: running out of bytes means the file
// is truncated (format), anything else is an I/O failure.
func (r *indexReader) wrap(context string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return failure.Format("%s: index is truncated", context)
	}
	return failure.IO("%s: %w", context, err)
}

// failureWithPath prefixes a read error with the file it came from,
// keeping its classification.
func failureWithPath(err error, path string) error {
	var classified *failure.Error
	if errors.As(err, &classified) {
		return &failure.Error{Kind: classified.Kind, Err: fmt.Errorf("index %s: %w", path, classified.Err)}
	}
	return fmt.Errorf("index %s: %w", path, err)
}
