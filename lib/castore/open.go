// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package castore

import (
	"net/url"
	"strings"

	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// Open returns the store named by location:
//
//   - http:// and https:// URLs open a [Remote] store.
//   - file:// URLs and plain paths open a [Local] store, creating the
//     directory if needed.
//   - A single-letter scheme is a Windows drive letter ("C:\store") and
//     is treated as a plain path.
//
// Any other scheme is a configuration error.
func Open(location string, options Options) (Store, error) {
	if location == "" {
		return nil, failure.Config("store location is empty")
	}

	parsed, err := url.Parse(location)
	if err != nil {
		// Not a URL; paths with characters url.Parse rejects are
		// still valid local paths.
		return openLocal(location, options)
	}

	scheme := strings.ToLower(parsed.Scheme)
	switch {
	case scheme == "http" || scheme == "https":
		remote, err := NewRemote(location, options)
		if err != nil {
			return nil, err
		}
		return remote, nil
	case scheme == "file":
		if parsed.Path == "" {
			return nil, failure.Config("file URL %q has no path", location)
		}
		return openLocal(parsed.Path, options)
	case scheme == "" || len(scheme) == 1:
		return openLocal(location, options)
	default:
		return nil, failure.Config("unsupported store URL scheme %q in %q", parsed.Scheme, location)
	}
}

// openLocal avoids returning a typed nil *Local inside a non-nil Store.
func openLocal(root string, options Options) (Store, error) {
	local, err := NewLocal(root, options)
	if err != nil {
		return nil, err
	}
	return local, nil
}
