// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the cdcsync
// binary.
//
// The central type is [Command], a named command with optional nested
// [Command.Subcommands], a flag set built from a params struct, and a
// Run function. The tree is assembled in cmd/cdcsync/commands and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and help output with examples.
//
// Unknown subcommands and flags get a "did you mean" suggestion based
// on Levenshtein distance (suggest.go).
//
// Every command embeds [GlobalParams] for --config and --log-level.
// [GlobalParams.Load] resolves the configuration file and
// [NewCommandLogger] builds the slog logger at the requested level.
// [ExitCode] maps the error kinds from lib/failure to the process exit
// status.
package cli
