// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package caindex

import (
	"fmt"

	"github.com/bureau-foundation/cdcsync/lib/failure"
)

type writeState int

const (
	stateEmpty writeState = iota
	stateTable
	stateClosed
)

// sequence enforces header → entries → tail ordering and strictly
// increasing end offsets. Both [Writer] and [Memory] drive one.
type sequence struct {
	state   writeState
	lastEnd uint64
	count   uint64
}

func (s *sequence) header(header Header) error {
	if s.state != stateEmpty {
		return fmt.Errorf("index header already written")
	}
	if header.Flags != FlagSHA512256 {
		return failure.Format("unsupported index feature flags %#x (only SHA-512/256 %#x is supported)",
			header.Flags, FlagSHA512256)
	}
	s.state = stateTable
	return nil
}

func (s *sequence) entry(end uint64) error {
	switch s.state {
	case stateEmpty:
		return fmt.Errorf("index entry added before header")
	case stateClosed:
		return fmt.Errorf("index entry added after tail")
	}
	if end <= s.lastEnd {
		return fmt.Errorf("index entry end offset %d does not follow previous end %d", end, s.lastEnd)
	}
	s.lastEnd = end
	s.count++
	return nil
}

func (s *sequence) tail() error {
	switch s.state {
	case stateEmpty:
		return fmt.Errorf("index tail written before header")
	case stateClosed:
		return fmt.Errorf("index tail already written")
	}
	s.state = stateClosed
	return nil
}
