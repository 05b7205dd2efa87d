// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package fileutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// AdviseSequential tells the kernel that f will be read once from start
// to end, enabling aggressive readahead. The hint is advisory: files
// that cannot take it (pipes, some FUSE mounts) fail with ESPIPE or
// EINVAL and are read the same way without the readahead tuning.
func AdviseSequential(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}

// AdviseRandom tells the kernel that f will be read at unpredictable
// offsets, so readahead would only waste page cache. Errors are
// dropped as in AdviseSequential.
func AdviseRandom(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM)
}
