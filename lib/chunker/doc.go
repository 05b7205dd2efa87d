// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunker splits a byte stream into content-defined chunks and
// drives them into a chunk store and an index.
//
// Boundaries come from a buzhash over a 48-byte sliding window
// ([rollinghash]). After the first MinSize bytes of a chunk, every
// further byte rolls the hash, and the chunk ends when either its size
// reaches MaxSize or hash % d == d-1, where d is the [Discriminator]
// derived from AvgSize. Because a boundary depends only on the 48 bytes
// before it, an insertion or deletion in the input disturbs only the
// chunks around the edit; the rest of the stream still cuts at the same
// content and produces the same chunk IDs.
//
// The final chunk of a stream ends at end-of-input and may be shorter
// than MinSize. An empty stream produces no chunks.
//
// [Make] is the full pipeline used by "cdcsync make": it writes the
// index header, stores each chunk, appends an index record per chunk,
// and writes the index tail.
package chunker
