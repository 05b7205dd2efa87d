// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response body reads.
//
// Chunk blobs fetched from a remote store are small (a compressed chunk
// is at most a little larger than the chunker's maximum size), so they
// are read whole. Every read is capped so that a misbehaving server
// cannot exhaust memory by streaming an unbounded body.
package netutil

import (
	"fmt"
	"io"
	"strings"
)

// MaxBodySize bounds [ReadBody] when the caller passes a non-positive
// limit: 64 MiB, far above any chunk a sane configuration produces.
const MaxBodySize int64 = 64 << 20

// maxErrorBody bounds the text quoted from an error response.
const maxErrorBody = 512

// ReadBody reads an entire response body of at most limit bytes. A body
// longer than limit is an error rather than a silent truncation, since
// a truncated blob would fail verification with a misleading message.
func ReadBody(body io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxBodySize
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return data, nil
}

// ErrorBody reads the start of an HTTP error response body for use in
// diagnostics. Read errors are ignored; a partial or empty body is still
// useful in an error message.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	return strings.TrimSpace(string(data))
}
