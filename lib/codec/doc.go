// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides cdcsync's CBOR encoding configuration.
//
// Machine-readable command output comes in two formats: JSON (--json,
// --format json) for people and scripts, and CBOR (--format cbor) for
// programs that consume large chunk tables and want a compact binary
// stream. Both are produced from the same structs: fxamacker/cbor
// reads `json` struct tags when `cbor` tags are absent, so one tag per
// field names it in both formats.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same chunk table always encodes to identical bytes, so CBOR listings
// of two indexes can be compared byte for byte.
//
// Types implementing encoding.TextMarshaler, such as chunk IDs, encode
// as CBOR text strings, matching their JSON form.
//
//	encoder := codec.NewEncoder(os.Stdout)
//	err := encoder.Encode(listing)
package codec
