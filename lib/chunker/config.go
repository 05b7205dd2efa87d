// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunker

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/cdcsync/lib/caindex"
	"github.com/bureau-foundation/cdcsync/lib/castore"
	"github.com/bureau-foundation/cdcsync/lib/failure"
	"github.com/bureau-foundation/cdcsync/lib/rollinghash"
)

// Default chunk size bounds, matching casync.
const (
	DefaultAvgSize = 64 << 10
	DefaultMinSize = DefaultAvgSize / 4
	DefaultMaxSize = DefaultAvgSize * 4
)

// MaxAvgSize is the largest supported average chunk size. Beyond about
// 9 MB the discriminator calibration curve turns negative.
const MaxAvgSize = 8 << 20

// Config holds the chunk size bounds. The same bounds are recorded in
// the index header.
type Config struct {
	MinSize uint64 `json:"min_size" yaml:"min_size"`
	AvgSize uint64 `json:"avg_size" yaml:"avg_size"`
	MaxSize uint64 `json:"max_size" yaml:"max_size"`
}

// DefaultConfig returns 16 KiB / 64 KiB / 256 KiB bounds.
func DefaultConfig() Config {
	return Config{
		MinSize: DefaultMinSize,
		AvgSize: DefaultAvgSize,
		MaxSize: DefaultMaxSize,
	}
}

// FromAverage derives bounds from an average size the way casync does:
// a quarter of the average to four times the average.
func FromAverage(avg uint64) Config {
	return Config{
		MinSize: avg / 4,
		AvgSize: avg,
		MaxSize: avg * 4,
	}
}

// FromHeader returns the bounds recorded in an index header.
func FromHeader(header caindex.Header) Config {
	return Config{
		MinSize: header.MinSize,
		AvgSize: header.AvgSize,
		MaxSize: header.MaxSize,
	}
}

// Header returns an index header recording these bounds.
func (c Config) Header() caindex.Header {
	return caindex.NewHeader(c.MinSize, c.AvgSize, c.MaxSize)
}

// Validate checks that the bounds are usable. The minimum must hold at
// least one full rolling-hash window, and the bounds must be ordered
// with a minimum strictly below the maximum. Errors are
// [failure.KindConfig].
func (c Config) Validate() error {
	var errs []error
	if c.MinSize < rollinghash.WindowSize {
		errs = append(errs, fmt.Errorf("min chunk size %d is below the %d-byte hash window", c.MinSize, rollinghash.WindowSize))
	}
	if c.MinSize > c.AvgSize {
		errs = append(errs, fmt.Errorf("min chunk size %d exceeds avg chunk size %d", c.MinSize, c.AvgSize))
	}
	if c.AvgSize > c.MaxSize {
		errs = append(errs, fmt.Errorf("avg chunk size %d exceeds max chunk size %d", c.AvgSize, c.MaxSize))
	}
	if c.MinSize >= c.MaxSize {
		errs = append(errs, fmt.Errorf("min chunk size %d must be below max chunk size %d", c.MinSize, c.MaxSize))
	}
	if c.MaxSize > castore.MaxChunkSize {
		errs = append(errs, fmt.Errorf("max chunk size %d exceeds the store limit %d", c.MaxSize, castore.MaxChunkSize))
	}
	if c.AvgSize > MaxAvgSize {
		errs = append(errs, fmt.Errorf("avg chunk size %d exceeds the supported maximum %d", c.AvgSize, MaxAvgSize))
	}
	if len(errs) > 0 {
		return failure.Config("invalid chunk size bounds: %w", errors.Join(errs...))
	}
	return nil
}

// Discriminator returns the modulus used to test for a cut point. For
// random input the expected distance between positions where
// hash % d == d-1 is avg bytes; the constants come from casync's
// empirical calibration.
func Discriminator(avg uint64) uint32 {
	average := float64(avg)
	return uint32(average / (-1.42888852e-7*average + 1.33237515))
}
