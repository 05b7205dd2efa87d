// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package caindex

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// Writer streams an index to an io.Writer.
type Writer struct {
	out      *bufio.Writer
	sequence sequence
	scratch  [8]byte
}

// NewWriter returns a Writer that appends to w. Output is buffered;
// [Writer.WriteTail] flushes it.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// WriteHeader writes the index header and the table header.
func (w *Writer) WriteHeader(header Header) error {
	if err := w.sequence.header(header); err != nil {
		return err
	}
	for _, value := range []uint64{
		HeaderSize,
		IndexMagic,
		header.Flags,
		header.MinSize,
		header.AvgSize,
		header.MaxSize,
		tableMarker,
		TableMagic,
	} {
		if err := w.writeUint64(value); err != nil {
			return failure.IO("writing index header: %w", err)
		}
	}
	return nil
}

// AddEntry appends a record for a chunk ending at end (the cumulative
// stream offset one past its last byte).
func (w *Writer) AddEntry(end uint64, id chunkid.ID) error {
	if err := w.sequence.entry(end); err != nil {
		return err
	}
	if err := w.writeUint64(end); err != nil {
		return failure.IO("writing index entry %d offset: %w", w.sequence.count-1, err)
	}
	if _, err := w.out.Write(id[:]); err != nil {
		return failure.IO("writing index entry %d id: %w", w.sequence.count-1, err)
	}
	return nil
}

// WriteTail writes the terminating tail record and flushes buffered
// output.
func (w *Writer) WriteTail() error {
	if err := w.sequence.tail(); err != nil {
		return err
	}
	for _, value := range []uint64{
		0,
		0,
		HeaderSize,
		tableSize(w.sequence.count),
		TailMagic,
	} {
		if err := w.writeUint64(value); err != nil {
			return failure.IO("writing index tail: %w", err)
		}
	}
	if err := w.out.Flush(); err != nil {
		return failure.IO("flushing index: %w", err)
	}
	return nil
}

// Entries returns the number of records written so far.
func (w *Writer) Entries() uint64 {
	return w.sequence.count
}

func (w *Writer) writeUint64(value uint64) error {
	binary.LittleEndian.PutUint64(w.scratch[:], value)
	_, err := w.out.Write(w.scratch[:])
	return err
}

// Write serialises a complete index to w.
func Write(w io.Writer, idx *Index) error {
	return emit(NewWriter(w), idx)
}

// WriteFile writes idx to path through a [FileWriter], so the file
// appears only once it is complete.
func WriteFile(path string, idx *Index) error {
	writer, err := CreateFile(path)
	if err != nil {
		return err
	}
	defer writer.Close()
	return emit(writer, idx)
}

type sequentialWriter interface {
	WriteHeader(header Header) error
	AddEntry(end uint64, id chunkid.ID) error
	WriteTail() error
}

// emit replays a complete index through w, checking that its chunks
// are contiguous from offset zero.
func emit(w sequentialWriter, idx *Index) error {
	if err := w.WriteHeader(idx.Header); err != nil {
		return err
	}
	for i, chunk := range idx.Chunks {
		if i > 0 && chunk.Start != idx.Chunks[i-1].End() {
			return fmt.Errorf("chunk %d starts at %d, previous chunk ends at %d",
				i, chunk.Start, idx.Chunks[i-1].End())
		}
		if i == 0 && chunk.Start != 0 {
			return fmt.Errorf("first chunk starts at %d, want 0", chunk.Start)
		}
		if err := w.AddEntry(chunk.End(), chunk.ID); err != nil {
			return err
		}
	}
	return w.WriteTail()
}

// FileWriter is a [Writer] backed by a temporary file that is renamed
// to its final path when the tail is written. Call Close in a defer:
// it discards the temporary file if the index was never completed.
type FileWriter struct {
	*Writer
	file      *os.File
	path      string
	committed bool
}

// CreateFile starts a new index that will be published at path.
func CreateFile(path string) (*FileWriter, error) {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, failure.IO("creating index file for %s: %w", path, err)
	}
	return &FileWriter{
		Writer: NewWriter(file),
		file:   file,
		path:   path,
	}, nil
}

// WriteTail writes the tail, syncs the file, and renames it into place.
func (f *FileWriter) WriteTail() error {
	if err := f.Writer.WriteTail(); err != nil {
		return err
	}
	if err := f.file.Sync(); err != nil {
		return failure.IO("syncing index %s: %w", f.path, err)
	}
	if err := f.file.Close(); err != nil {
		return failure.IO("closing index %s: %w", f.path, err)
	}
	if err := os.Rename(f.file.Name(), f.path); err != nil {
		return failure.IO("renaming index to %s: %w", f.path, err)
	}
	f.committed = true
	return nil
}

// Path returns the final index path.
func (f *FileWriter) Path() string {
	return f.path
}

// Close discards the temporary file unless the index was committed.
// It is safe to call after a successful WriteTail.
func (f *FileWriter) Close() error {
	if f.committed {
		return nil
	}
	f.file.Close()
	if err := os.Remove(f.file.Name()); err != nil && !os.IsNotExist(err) {
		return failure.IO("removing incomplete index %s: %w", f.file.Name(), err)
	}
	return nil
}
