// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package castore

import (
	"context"
	"sync"

	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// Null computes chunk IDs and counts writes without storing content.
// It remembers which IDs it has seen so that its statistics report
// duplicates the same way a real store would.
type Null struct {
	mu       sync.Mutex
	seen     map[chunkid.ID]struct{}
	counters counters
}

// NewNull returns an empty null store.
func NewNull() *Null {
	return &Null{seen: make(map[chunkid.ID]struct{})}
}

// WriteItem hashes data and records it as seen.
func (n *Null) WriteItem(ctx context.Context, data []byte) (chunkid.ID, error) {
	if err := ctx.Err(); err != nil {
		return chunkid.ID{}, err
	}
	id := chunkid.Sum(data)

	n.mu.Lock()
	_, exists := n.seen[id]
	if !exists {
		n.seen[id] = struct{}{}
	}
	n.mu.Unlock()

	if exists {
		n.counters.recordExisting(len(data))
	} else {
		n.counters.recordNew(len(data), 0)
	}
	return id, nil
}

// ReadItem always fails: a null store holds no content.
func (n *Null) ReadItem(ctx context.Context, id chunkid.ID) ([]byte, error) {
	return nil, failure.Unsupported("null store cannot read chunk %s", id)
}

// Stats returns the write counters.
func (n *Null) Stats() Stats {
	return n.counters.snapshot()
}
