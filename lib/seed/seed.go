// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	"github.com/bureau-foundation/cdcsync/lib/caindex"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// Seed pairs a seed file with the index describing it.
type Seed struct {
	File  *File
	Index *caindex.Index
}

// Open opens a seed from a file path and an index path. Both empty
// means no seed: Open returns nil and no error. Exactly one empty is a
// [failure.KindConfig] error.
func Open(filePath, indexPath string) (*Seed, error) {
	switch {
	case filePath == "" && indexPath == "":
		return nil, nil
	case filePath == "":
		return nil, failure.Config("seed index %s given without a seed file", indexPath)
	case indexPath == "":
		return nil, failure.Config("seed file %s given without a seed index", filePath)
	}

	index, err := caindex.ReadFile(indexPath)
	if err != nil {
		return nil, err
	}
	file, err := OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	return &Seed{File: file, Index: index}, nil
}

// Close closes the seed file. A nil Seed is valid and closes nothing.
func (s *Seed) Close() error {
	if s == nil || s.File == nil {
		return nil
	}
	return s.File.Close()
}
