// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package assemble

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/cdcsync/lib/caindex"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

// AssembleFile reconstructs target into the file at path. Output goes
// to a temporary file in the same directory that is renamed into place
// only after every chunk has been written, so a failed run leaves any
// existing file at path untouched. The seed file may be path itself.
func (a *Assembler) AssembleFile(ctx context.Context, target *caindex.Index, path string) (*Stats, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, failure.IO("creating output file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	stats, err := a.Assemble(ctx, target, tmpFile)
	if err != nil {
		return nil, err
	}
	if err := tmpFile.Sync(); err != nil {
		return nil, failure.IO("syncing %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, failure.IO("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return nil, failure.IO("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, failure.IO("renaming output to %s: %w", path, err)
	}
	success = true
	return stats, nil
}
