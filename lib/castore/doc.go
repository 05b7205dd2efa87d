// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package castore implements the content-addressed chunk store.
//
// A chunk is stored under its [chunkid.ID]: the SHA-512/256 digest of
// its uncompressed bytes. Because identical bytes always map to the
// same key, checking whether the key exists before writing is the
// whole deduplication mechanism. Blobs are compressed on disk and are
// never modified once written.
//
// Three backends implement [Store]:
//
//   - [Local] keeps blobs in a directory tree sharded by the first four
//     hex characters of the ID: <root>/<hex[:4]>/<hex>.cacnk (the casync
//     .castr layout). New blobs are written to a temporary file and
//     hard-linked into place, so concurrent writers of the same chunk
//     never observe a partial blob and exactly one of them wins.
//
//   - [Remote] fetches blobs over HTTP(S) from the same layout rooted at
//     a URL. It is read-only: WriteItem reports an unsupported-operation
//     error.
//
//   - [Null] hashes and counts chunks without keeping them. It backs
//     boundary listings that must not touch disk.
//
// Every read decompresses the blob and verifies that the content hashes
// back to the requested ID; a mismatch is a format error.
//
// [Open] selects a backend from a location string: http and https URLs
// are remote stores; plain paths and file URLs are local stores.
package castore
