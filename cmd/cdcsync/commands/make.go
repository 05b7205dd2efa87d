// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/cdcsync/cmd/cdcsync/cli"
	"github.com/bureau-foundation/cdcsync/lib/caindex"
	"github.com/bureau-foundation/cdcsync/lib/castore"
	"github.com/bureau-foundation/cdcsync/lib/chunker"
	"github.com/bureau-foundation/cdcsync/lib/config"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

type makeParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Index       string `json:"index"       flag:"index,i"     desc:"index file to write (.caibx)"`
	Store       string `json:"store"       flag:"store,s"     desc:"chunk store directory (default: store.location)"`
	File        string `json:"file"        flag:"file,f"      desc:"file to chunk, or - for stdin"`
	Compression string `json:"compression" flag:"compression" desc:"chunk compression: zstd or lz4 (default: store.compression)"`
	chunkFlags
}

// makeResult is the --json output of "cdcsync make".
type makeResult struct {
	Index    string         `json:"index"`
	Chunks   uint64         `json:"chunks"`
	Bytes    uint64         `json:"bytes"`
	Digest   string         `json:"digest"`
	Duration time.Duration  `json:"duration"`
	Store    *castore.Stats `json:"store,omitempty"`
}

func makeCommand(stdout io.Writer) *cli.Command {
	var params makeParams

	return &cli.Command{
		Name:    "make",
		Summary: "Chunk a file into a store and write its index",
		Description: `Split a file into content-defined chunks, write every chunk to the
store (chunks already present are not rewritten), and write the chunk
index.

The index is written to a temporary file and renamed into place only
when complete, so an interrupted run never leaves a truncated index.
Chunk size bounds come from --min/--avg/--max, falling back to the
configuration file. Giving only --avg derives the minimum (avg/4) and
maximum (avg*4) from it.`,
		Usage: "cdcsync make -i <index> -s <store> -f <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Chunk an image into a local store",
				Command:     "cdcsync make -i image.caibx -s /srv/image.castr -f image.raw",
			},
			{
				Description: "Use 256 KiB average chunks and LZ4 blobs",
				Command:     "cdcsync make -i image.caibx -s image.castr -f image.raw --avg 262144 --compression lz4",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return failure.Config("make takes no positional arguments, got %q", args[0])
			}
			if params.Index == "" || params.File == "" {
				return failure.Config("make requires -i <index> and -f <file>")
			}

			cfg, logger, err := params.Setup(func(cfg *config.Config) {
				params.chunkFlags.apply(cfg)
				if params.Compression != "" {
					cfg.Store.Compression = params.Compression
				}
			})
			if err != nil {
				return err
			}
			logger = logger.With("command", "make", "index", params.Index)

			store, err := openStore(params.Store, cfg, logger)
			if err != nil {
				return err
			}

			source, closeSource, err := openSource(params.File)
			if err != nil {
				return err
			}
			defer closeSource()

			index, err := caindex.CreateFile(params.Index)
			if err != nil {
				return err
			}
			defer index.Close()

			result, err := chunker.Make(ctx, source, chunkConfig(cfg), store, index, chunker.Options{Logger: logger})
			if err != nil {
				return err
			}

			output := makeResult{
				Index:    params.Index,
				Chunks:   result.Chunks,
				Bytes:    result.Bytes,
				Digest:   result.Digest,
				Duration: result.Duration,
				Store:    result.Store,
			}
			if done, err := params.EmitJSON(stdout, output); done {
				return err
			}

			fmt.Fprintf(stdout, "%s: %d chunks, %s\n", output.Index, output.Chunks, humanize.IBytes(output.Bytes))
			if output.Store != nil {
				fmt.Fprintf(stdout, "store: %d new chunks (%s compressed), %d already present\n",
					output.Store.NewChunks, humanize.IBytes(output.Store.CompressedBytes), output.Store.ExistingChunks)
			}
			fmt.Fprintf(stdout, "digest: %s\n", output.Digest)
			return nil
		},
	}
}

// openSource opens the input file, or stdin for "-".
func openSource(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, failure.IO("opening %s: %w", path, err)
	}
	return file, func() { file.Close() }, nil
}
