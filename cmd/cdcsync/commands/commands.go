// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the cdcsync command tree: make, extract,
// list-chunks, and version.
package commands

import (
	"io"

	"github.com/bureau-foundation/cdcsync/cmd/cdcsync/cli"
)

// Root builds the complete command tree. Command results go to stdout;
// help and logs go to stderr.
func Root(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name: "cdcsync",
		Description: `cdcsync: content-defined chunking and synchronization.

Splits files into variable-size chunks at content-defined boundaries,
stores each distinct chunk once in a content-addressed store, and
records the file as a chunk index. A file is rebuilt from its index,
taking chunks from a local seed file where possible and from the store
otherwise.`,
		Subcommands: []*cli.Command{
			makeCommand(stdout),
			extractCommand(stdout),
			listChunksCommand(stdout),
			versionCommand(stdout),
		},
	}
}
