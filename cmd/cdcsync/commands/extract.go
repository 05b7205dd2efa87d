// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/cdcsync/cmd/cdcsync/cli"
	"github.com/bureau-foundation/cdcsync/lib/assemble"
	"github.com/bureau-foundation/cdcsync/lib/caindex"
	"github.com/bureau-foundation/cdcsync/lib/config"
	"github.com/bureau-foundation/cdcsync/lib/failure"
	"github.com/bureau-foundation/cdcsync/lib/seed"
)

type extractParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Index        string        `json:"index"         flag:"index,i"       desc:"index of the file to rebuild (.caibx)"`
	Store        string        `json:"store"         flag:"store,s"       desc:"chunk store directory or http(s) URL (default: store.location)"`
	File         string        `json:"file"          flag:"file,f"        desc:"output file, or - for stdout"`
	SeedFile     string        `json:"seed_file"     flag:"sf"            alias:"seed-file"  desc:"local file to reuse chunks from, also --seed-file (requires --si)"`
	SeedIndex    string        `json:"seed_index"    flag:"si"            alias:"seed-index" desc:"index of the seed file, also --seed-index (requires --sf)"`
	ExpectDigest string        `json:"expect_digest" flag:"expect-digest" desc:"fail unless the output has this BLAKE3 digest (hex)"`
	Compression  string        `json:"compression"   flag:"compression"   desc:"blob format of the store: zstd or lz4 (default: store.compression)"`
	Timeout      time.Duration `json:"timeout"       flag:"timeout"       desc:"per-request timeout for remote stores (default: remote.timeout)"`
}

// extractResult is the --json output of "cdcsync extract".
type extractResult struct {
	File string `json:"file"`
	*assemble.Stats
	Bytes uint64 `json:"bytes"`
}

func extractCommand(stdout io.Writer) *cli.Command {
	var params extractParams

	return &cli.Command{
		Name:    "extract",
		Summary: "Rebuild a file from its index",
		Description: `Rebuild the file described by an index, in chunk order.

With a seed (--sf and --si together), chunks whose ID appears in the
seed index are copied from the seed file; everything else is read from
the store. A seed chunk whose bytes no longer match its recorded ID is
logged and fetched from the store instead. A chunk missing from the
store fails the run.

Output is written to a temporary file and renamed into place when
complete, so the seed file may be the output file itself.`,
		Usage: "cdcsync extract -i <index> -s <store> -f <output> [--sf <seed> --si <seed index>] [flags]",
		Examples: []cli.Example{
			{
				Description: "Rebuild from a local store",
				Command:     "cdcsync extract -i image.caibx -s image.castr -f image.raw",
			},
			{
				Description: "Update a file in place from an HTTP store, reusing its current content",
				Command:     "cdcsync extract -i v2.caibx -s https://cdn.example.com/image.castr -f image.raw --sf image.raw --si v1.caibx",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return failure.Config("extract takes no positional arguments, got %q", args[0])
			}
			if params.Index == "" || params.File == "" {
				return failure.Config("extract requires -i <index> and -f <output>")
			}
			if params.Timeout < 0 {
				return failure.Config("--timeout must not be negative")
			}

			cfg, logger, err := params.Setup(func(cfg *config.Config) {
				if params.Timeout > 0 {
					cfg.Remote.Timeout = params.Timeout.String()
				}
				if params.Compression != "" {
					cfg.Store.Compression = params.Compression
				}
			})
			if err != nil {
				return err
			}
			logger = logger.With("command", "extract", "index", params.Index)

			seedPair, err := seed.Open(params.SeedFile, params.SeedIndex)
			if err != nil {
				return err
			}
			defer seedPair.Close()

			target, err := caindex.ReadFile(params.Index)
			if err != nil {
				return err
			}

			store, err := openStore(params.Store, cfg, logger)
			if err != nil {
				return err
			}

			assembler := &assemble.Assembler{
				Store:        store,
				Seed:         seedPair,
				ExpectDigest: params.ExpectDigest,
				Logger:       logger,
			}

			var stats *assemble.Stats
			if params.File == "-" {
				stats, err = assembler.Assemble(ctx, target, stdout)
			} else {
				stats, err = assembler.AssembleFile(ctx, target, params.File)
			}
			if err != nil {
				return err
			}
			if params.File == "-" {
				return nil
			}

			output := extractResult{File: params.File, Stats: stats, Bytes: stats.Bytes()}
			if done, err := params.EmitJSON(stdout, output); done {
				return err
			}

			fmt.Fprintf(stdout, "%s: %d chunks, %s\n", output.File, stats.Chunks, humanize.IBytes(output.Bytes))
			fmt.Fprintf(stdout, "seed: %d chunks (%s), store: %d chunks (%s)\n",
				stats.FromSeed, humanize.IBytes(stats.SeedBytes),
				stats.FromStore, humanize.IBytes(stats.StoreBytes))
			if stats.SeedMismatches > 0 {
				fmt.Fprintf(stdout, "seed mismatches: %d\n", stats.SeedMismatches)
			}
			fmt.Fprintf(stdout, "digest: %s\n", stats.Digest)
			return nil
		},
	}
}
