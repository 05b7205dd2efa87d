// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fileutil passes access-pattern hints to the kernel for the
// large files cdcsync reads: a chunking source is consumed once from
// start to end, while a seed file is read at scattered offsets chosen
// by the target index.
//
// Hints are advisory. Failures are ignored and the functions are no-ops
// on platforms without posix_fadvise.
package fileutil
