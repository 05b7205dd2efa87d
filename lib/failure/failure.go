// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package failure classifies the errors produced by the chunking,
// store, index, and assembly packages so that the CLI can map each
// class to a distinct exit code without parsing message text.
//
// Library code returns [*Error] values built with the kind-specific
// constructors ([Format], [IO], [NotFound], [Config], [Network],
// [Unsupported]) and never terminates the process. Callers inspect the
// class with [KindOf] or [Is]; the underlying cause stays reachable
// through errors.Is and errors.As because [*Error] implements Unwrap.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies an error for programmatic handling.
type Kind int

const (
	// KindInternal is any error not produced through this package:
	// bugs, unexpected states, unclassified wrapped errors.
	KindInternal Kind = iota

	// KindFormat indicates malformed persistent data: bad index magic,
	// unsupported feature flags, corrupt tail markers, a chunk blob
	// whose content does not hash to its name.
	KindFormat

	// KindIO indicates a local filesystem failure: open, create,
	// read, write, rename.
	KindIO

	// KindNotFound indicates a required chunk is absent from the
	// store.
	KindNotFound

	// KindConfig indicates invalid configuration detected before any
	// data is processed: missing seed pairing, bad chunk size bounds,
	// unsupported store URL scheme.
	KindConfig

	// KindNetwork indicates a remote store fetch failed at the
	// transport or HTTP level.
	KindNetwork

	// KindUnsupported indicates an operation the selected backend does
	// not implement, such as writing to a remote store.
	KindUnsupported
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindFormat:
		return "format"
	case KindIO:
		return "io"
	case KindNotFound:
		return "not_found"
	case KindConfig:
		return "config"
	case KindNetwork:
		return "network"
	case KindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is a classified error. Err carries the human-readable message
// and the wrapped cause.
type Error struct {
	Kind Kind
	Err  error
}

// Error returns the underlying message. The kind is not included; it
// travels separately and is rendered by the CLI.
func (e *Error) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Internal creates an error for a broken invariant or an unexpected
// failure in a dependency.
func Internal(format string, args ...any) *Error {
	return newError(KindInternal, format, args...)
}

// Format creates a format error.
func Format(format string, args ...any) *Error {
	return newError(KindFormat, format, args...)
}

// IO creates a local I/O error. Include the failing cause with %w.
func IO(format string, args ...any) *Error {
	return newError(KindIO, format, args...)
}

// NotFound creates a missing-chunk error.
func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

// Config creates a configuration error.
func Config(format string, args ...any) *Error {
	return newError(KindConfig, format, args...)
}

// Network creates a remote transport error.
func Network(format string, args ...any) *Error {
	return newError(KindNetwork, format, args...)
}

// Unsupported creates an unsupported-operation error.
func Unsupported(format string, args ...any) *Error {
	return newError(KindUnsupported, format, args...)
}

// KindOf returns the kind of the outermost classified error in err's
// chain, or KindInternal if none is classified. A nil error has no
// kind and also reports KindInternal; callers check for nil first.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindInternal
}

// Is reports whether any classified error in err's chain has the
// given kind, so a not-found cause stays visible under a config error
// that wraps it. An error with no classified link matches only
// KindInternal, consistent with KindOf.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	var classified *Error
	if !errors.As(err, &classified) {
		return kind == KindInternal
	}
	for {
		if classified.Kind == kind {
			return true
		}
		if !errors.As(classified.Err, &classified) {
			return false
		}
	}
}
