// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package assemble reconstructs a byte stream from its index.
//
// For each chunk of the target index, in order, the [Assembler] copies
// the chunk out of the seed file when the seed index lists the same ID,
// and otherwise fetches it from the chunk store. Seed reads are checked
// against the chunk ID; a seed that has changed since its index was
// made falls back to the store for the affected chunks. A chunk that
// is neither in the seed nor in the store fails the whole run: there
// is no partial output.
package assemble
