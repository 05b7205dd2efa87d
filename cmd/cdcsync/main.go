// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command cdcsync chunks files into a content-addressed store and
// rebuilds them from chunk indexes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/cdcsync/cmd/cdcsync/cli"
	"github.com/bureau-foundation/cdcsync/cmd/cdcsync/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(os.Stdout).Execute(ctx, os.Args[1:])
}
