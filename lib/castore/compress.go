// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package castore

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the codec used for chunk blobs. A store uses
// exactly one codec; it determines the blob file extension.
type Compression uint8

const (
	// CompressionZstd stores each chunk as a single zstd frame at the
	// encoder's best-compression level. This is the casync chunk
	// format and the default.
	CompressionZstd Compression = iota

	// CompressionLZ4 stores each chunk as an LZ4 frame. Faster to
	// decode, larger on disk.
	CompressionLZ4
)

// String returns the codec name as accepted by [ParseCompression].
func (c Compression) String() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// Extension returns the blob file extension for the codec.
func (c Compression) Extension() string {
	switch c {
	case CompressionLZ4:
		return ".cacnk.lz4"
	default:
		return ".cacnk"
	}
}

// ParseCompression parses a codec name. The empty string selects zstd.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown chunk compression %q (want zstd or lz4)", name)
	}
}

// MaxChunkSize is the largest chunk the store will decode. It matches
// the largest maximum the chunker accepts (four times its 8 MiB average
// limit), so a blob that expands past it cannot be a valid chunk.
const MaxChunkSize = 32 << 20

// zstdEncoder and zstdDecoder are shared across calls; both are safe
// for concurrent use with EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		panic("castore: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(MaxChunkSize),
	)
	if err != nil {
		panic("castore: zstd decoder initialization failed: " + err.Error())
	}
}

func compressChunk(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil

	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if err := writer.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
			return nil, fmt.Errorf("configuring lz4 writer: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported chunk compression %s", compression)
	}
}

// decompressChunk decodes a blob, refusing output larger than
// MaxChunkSize before it is fully materialized.
func decompressChunk(compressed []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionZstd:
		data, err := zstdDecoder.DecodeAll(compressed, nil)
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
			return nil, fmt.Errorf("zstd decompress: content exceeds the %d-byte chunk limit", MaxChunkSize)
		}
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return data, nil

	case CompressionLZ4:
		reader := io.LimitReader(lz4.NewReader(bytes.NewReader(compressed)), MaxChunkSize+1)
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if len(data) > MaxChunkSize {
			return nil, fmt.Errorf("lz4 decompress: content exceeds the %d-byte chunk limit", MaxChunkSize)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("unsupported chunk compression %s", compression)
	}
}
