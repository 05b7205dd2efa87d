// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunkid defines the content identity of a chunk: the 32-byte
// SHA-512/256 digest of its uncompressed bytes. The same bytes always
// produce the same ID, which is what makes presence-before-write in
// the chunk store a deduplication check.
package chunkid

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// Size is the byte length of an ID.
const Size = sha512.Size256

// ID is a chunk content hash.
type ID [Size]byte

// Sum computes the ID of data.
func Sum(data []byte) ID {
	return ID(sha512.Sum512_256(data))
}

// String returns the lowercase hex encoding of the ID. This is the
// form used in store paths, logs, and CLI output.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Shard returns the store shard directory name for the ID: the first
// four hex characters.
func (id ID) Shard() string {
	return hex.EncodeToString(id[:2])
}

// IsZero reports whether the ID is all zero bytes.
func (id ID) IsZero() bool {
	return id == ID{}
}

// MarshalText encodes the ID as hex so that JSON and CBOR listings
// carry readable strings rather than byte arrays.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses a hex-encoded ID.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Parse parses a 64-character hex string into an ID.
func Parse(hexString string) (ID, error) {
	var id ID
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return id, fmt.Errorf("parsing chunk id: %w", err)
	}
	if len(decoded) != Size {
		return id, fmt.Errorf("chunk id is %d bytes, want %d", len(decoded), Size)
	}
	copy(id[:], decoded)
	return id, nil
}
