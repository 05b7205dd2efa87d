// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package seed opens a seed for reconstruction: an existing local file
// together with the index that describes its chunks. Chunks of a target
// index whose IDs appear in the seed index can be copied straight out
// of the seed file instead of being fetched from the store.
//
// A seed file and its index are only meaningful together. [Open]
// rejects one without the other as a configuration error before any
// chunk is processed.
package seed
