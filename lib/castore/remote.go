// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package castore

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/failure"
	"github.com/bureau-foundation/cdcsync/lib/netutil"
)

// Remote is a read-only chunk store served over HTTP(S). Blob URLs
// follow the local layout: <base>/<hex[:4]>/<hex>.cacnk.
type Remote struct {
	base        string
	compression Compression
	timeout     time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewRemote opens the remote store at location, which must be an http
// or https URL.
func NewRemote(location string, options Options) (*Remote, error) {
	parsed, err := url.Parse(location)
	if err != nil {
		return nil, failure.Config("parsing store URL %q: %w", location, err)
	}
	switch parsed.Scheme {
	case "http", "https":
	default:
		return nil, failure.Config("remote store URL %q must use http or https", location)
	}
	if parsed.Host == "" {
		return nil, failure.Config("remote store URL %q has no host", location)
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Remote{
		base:        strings.TrimRight(parsed.String(), "/"),
		compression: options.Compression,
		timeout:     options.Timeout,
		httpClient:  httpClient,
		logger:      options.logger(),
	}, nil
}

// Base returns the store's root URL without a trailing slash.
func (r *Remote) Base() string {
	return r.base
}

// ChunkURL returns the blob URL for id.
func (r *Remote) ChunkURL(id chunkid.ID) string {
	return r.base + "/" + id.Shard() + "/" + id.String() + r.compression.Extension()
}

// WriteItem always fails: remote stores are populated out of band.
func (r *Remote) WriteItem(ctx context.Context, data []byte) (chunkid.ID, error) {
	return chunkid.ID{}, failure.Unsupported("remote store %s is read-only", r.base)
}

// ReadItem fetches, decompresses, and verifies the blob for id. HTTP
// 404 maps to a not-found error; every other transport failure or
// non-2xx status is a network error.
func (r *Remote) ReadItem(ctx context.Context, id chunkid.ID) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	chunkURL := r.ChunkURL(id)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, chunkURL, nil)
	if err != nil {
		return nil, failure.Internal("building request for %s: %w", chunkURL, err)
	}

	start := time.Now()
	response, err := r.httpClient.Do(request)
	if err != nil {
		return nil, failure.Network("GET %s: %w", chunkURL, err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, failure.NotFound("chunk %s not in store %s", id, r.base)
	case response.StatusCode < 200 || response.StatusCode > 299:
		return nil, failure.Network("GET %s: HTTP %d: %s",
			chunkURL, response.StatusCode, netutil.ErrorBody(response.Body))
	}

	compressed, err := netutil.ReadBody(response.Body, netutil.MaxBodySize)
	if err != nil {
		return nil, failure.Network("GET %s: %w", chunkURL, err)
	}

	r.logger.Debug("chunk fetched",
		"id", id,
		"compressed_size", len(compressed),
		"duration", time.Since(start),
	)
	return decodeChunk(id, compressed, r.compression)
}
