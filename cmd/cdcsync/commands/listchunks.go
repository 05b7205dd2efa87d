// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bureau-foundation/cdcsync/cmd/cdcsync/cli"
	"github.com/bureau-foundation/cdcsync/lib/caindex"
	"github.com/bureau-foundation/cdcsync/lib/castore"
	"github.com/bureau-foundation/cdcsync/lib/chunker"
	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/codec"
	"github.com/bureau-foundation/cdcsync/lib/failure"
)

type listChunksParams struct {
	cli.GlobalParams
	Index  string `json:"index"  flag:"index,i"  desc:"index file to list"`
	File   string `json:"file"   flag:"file,f"   desc:"file to chunk and list without storing anything, or - for stdin"`
	Format string `json:"format" flag:"format"   desc:"output format: text, json, or cbor" default:"text"`
	chunkFlags
}

// chunkListing is the json and cbor form of a listing.
type chunkListing struct {
	MinSize uint64        `json:"min_size"`
	AvgSize uint64        `json:"avg_size"`
	MaxSize uint64        `json:"max_size"`
	Length  uint64        `json:"length"`
	Chunks  []chunkRecord `json:"chunks"`
}

type chunkRecord struct {
	ID    chunkid.ID `json:"id"`
	Start uint64     `json:"start"`
	Size  uint64     `json:"size"`
}

func listChunksCommand(stdout io.Writer) *cli.Command {
	var params listChunksParams

	return &cli.Command{
		Name:    "list-chunks",
		Summary: "List the chunks of an index or a file",
		Description: `Print the chunk table of an index (-i), or chunk a file (-f) with the
configured size bounds and print the table it would produce. Chunking
a file computes IDs only; nothing is written to a store.

Text output has one line per chunk: ID, start offset, and size. JSON
and CBOR output carry the size bounds and the stream length as well.`,
		Usage: "cdcsync list-chunks (-i <index> | -f <file>) [--format text|json|cbor]",
		Examples: []cli.Example{
			{
				Description: "List the chunks of an index",
				Command:     "cdcsync list-chunks -i image.caibx",
			},
			{
				Description: "Preview how a file chunks at 16 KiB average",
				Command:     "cdcsync list-chunks -f image.raw --avg 16384 --format json",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return failure.Config("list-chunks takes no positional arguments, got %q", args[0])
			}
			if (params.Index == "") == (params.File == "") {
				return failure.Config("list-chunks requires exactly one of -i <index> or -f <file>")
			}
			switch params.Format {
			case "text", "json", "cbor":
			default:
				return failure.Config("unknown --format %q (want text, json, or cbor)", params.Format)
			}

			cfg, logger, err := params.Setup(params.chunkFlags.apply)
			if err != nil {
				return err
			}

			var index *caindex.Index
			if params.Index != "" {
				index, err = caindex.ReadFile(params.Index)
			} else {
				index, err = chunkFile(ctx, params.File, chunkConfig(cfg), chunker.Options{Logger: logger.With("command", "list-chunks")})
			}
			if err != nil {
				return err
			}
			return writeListing(stdout, index, params.Format)
		},
	}
}

// chunkFile chunks path into an in-memory index, hashing chunks
// without storing them.
func chunkFile(ctx context.Context, path string, chunkConfig chunker.Config, options chunker.Options) (*caindex.Index, error) {
	source, closeSource, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	memory := caindex.NewMemory()
	if _, err := chunker.Make(ctx, source, chunkConfig, castore.NewNull(), memory, options); err != nil {
		return nil, err
	}
	return memory.Index()
}

func writeListing(w io.Writer, index *caindex.Index, format string) error {
	listing := chunkListing{
		MinSize: index.Header.MinSize,
		AvgSize: index.Header.AvgSize,
		MaxSize: index.Header.MaxSize,
		Length:  index.Length(),
		Chunks:  make([]chunkRecord, 0, len(index.Chunks)),
	}
	for _, chunk := range index.Chunks {
		listing.Chunks = append(listing.Chunks, chunkRecord{ID: chunk.ID, Start: chunk.Start, Size: chunk.Size})
	}

	switch format {
	case "json":
		return cli.WriteJSON(w, listing)
	case "cbor":
		if err := codec.NewEncoder(w).Encode(listing); err != nil {
			return failure.IO("writing cbor listing: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, chunk := range listing.Chunks {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", chunk.ID, chunk.Start, chunk.Size)
	}
	return tw.Flush()
}
