// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package fileutil

import "os"

// AdviseSequential is a no-op on this platform.
func AdviseSequential(f *os.File) {}

// AdviseRandom is a no-op on this platform.
func AdviseRandom(f *os.File) {}
