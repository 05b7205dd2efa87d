// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the chunking,
// store, index, and assembly packages.
//
// [PseudoRandom] produces deterministic incompressible data from a
// seed using the SplitMix64 generator. Tests that pin exact chunk
// boundaries depend on the byte stream never changing, so the
// generator is defined here rather than taken from math/rand, whose
// output is not guaranteed stable across Go releases.
//
// [WriteFile] and [ReadFile] wrap file setup and inspection in a
// test's temporary directory.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
