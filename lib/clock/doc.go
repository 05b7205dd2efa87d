// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Code that measures how long an operation took accepts a Clock instead
// of calling time.Now directly. In production, Real() provides the
// standard library behavior. In tests, Fake() provides a deterministic
// clock that moves only when told to:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c.SetStep(time.Second) // every Now call advances one second
//	result, err := chunker.Make(ctx, source, config, store, index,
//	    chunker.Options{Clock: c})
//	// result.Duration == time.Second
package clock
