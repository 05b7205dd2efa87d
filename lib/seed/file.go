// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/bureau-foundation/cdcsync/lib/failure"
	"github.com/bureau-foundation/cdcsync/lib/fileutil"
)

// File reads byte ranges from a seed file. It is safe for concurrent
// use: reads are positional and never move a shared offset.
type File struct {
	file *os.File
	path string
	size int64
}

// OpenFile opens the seed file at path. A missing file is a
// [failure.KindNotFound] error.
func OpenFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, failure.NotFound("seed file %s does not exist", path)
		}
		return nil, failure.IO("opening seed file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, failure.IO("stat seed file: %w", err)
	}
	if !info.Mode().IsRegular() {
		file.Close()
		return nil, failure.Config("seed file %s is not a regular file", path)
	}
	fileutil.AdviseRandom(file)
	return &File{file: file, path: path, size: info.Size()}, nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string {
	return f.path
}

// Size returns the file size at open time.
func (f *File) Size() int64 {
	return f.size
}

// ReadRange returns the size bytes starting at start. A range that
// extends past the end of the file is a [failure.KindFormat] error:
// the seed no longer matches the index that described it.
func (f *File) ReadRange(start, size uint64) ([]byte, error) {
	if start+size < start || start+size > uint64(f.size) {
		return nil, failure.Format("seed file %s: range [%d, %d) extends past its %d bytes",
			f.path, start, start+size, f.size)
	}
	buffer := make([]byte, size)
	n, err := f.file.ReadAt(buffer, int64(start))
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		// The file shrank after it was opened.
		return nil, failure.Format("seed file %s: short read at offset %d: got %d of %d bytes",
			f.path, start, n, size)
	default:
		return nil, failure.IO("reading seed file %s at offset %d: %w", f.path, start, err)
	}
	return buffer, nil
}

// Close closes the file.
func (f *File) Close() error {
	return f.file.Close()
}
