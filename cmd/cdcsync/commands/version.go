// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bureau-foundation/cdcsync/cmd/cdcsync/cli"
	"github.com/bureau-foundation/cdcsync/lib/failure"
	"github.com/bureau-foundation/cdcsync/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(stdout io.Writer) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return failure.Config("version takes no positional arguments, got %q", args[0])
			}
			if done, err := params.EmitJSON(stdout, version.Current()); done {
				return err
			}
			fmt.Fprintf(stdout, "cdcsync %s\n", version.Full())
			return nil
		},
	}
}
