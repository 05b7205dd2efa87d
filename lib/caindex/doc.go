// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package caindex reads and writes chunk index files: the ordered
// table mapping a byte stream's chunk boundaries to chunk IDs.
//
// The on-disk layout is the casync .caibx format. Every field is a
// little-endian uint64 unless noted:
//
//	header   48, IndexMagic, flags, min size, avg size, max size
//	table    0xFFFFFFFFFFFFFFFF, TableMagic
//	record   end offset, chunk ID (32 bytes)      repeated, stream order
//	tail     0, 0, 48, table size, TailMagic
//
// The tail doubles as the table terminator: it is a record whose
// offset field is zero, with the four trailing words occupying the
// 32-byte ID slot. Records store cumulative end offsets; [Read]
// converts them back into (start, size) pairs.
//
// Writing is strictly sequential: [Writer.WriteHeader], any number of
// [Writer.AddEntry] calls, then [Writer.WriteTail]. Nothing already
// written is revisited; the table size in the tail is accumulated as
// records are appended. [CreateFile] streams into a temporary file and
// renames it into place when the tail is written, so an interrupted
// run never leaves a truncated index behind. [Memory] implements the
// same contract without touching disk.
package caindex
