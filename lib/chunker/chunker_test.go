// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunker

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/bureau-foundation/cdcsync/lib/castore"
	"github.com/bureau-foundation/cdcsync/lib/failure"
	"github.com/bureau-foundation/cdcsync/lib/testutil"
)

// small keeps the expected cut lists short.
var small = Config{MinSize: 64, AvgSize: 256, MaxSize: 1024}

func chunkAll(t *testing.T, data []byte, config Config) [][]byte {
	t.Helper()
	chunker, err := New(bytes.NewReader(data), config)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var chunks [][]byte
	for {
		chunk, err := chunker.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func sizes(chunks [][]byte) []int {
	var result []int
	for _, chunk := range chunks {
		result = append(result, len(chunk))
	}
	return result
}

func TestDiscriminator(t *testing.T) {
	tests := []struct {
		avg  uint64
		want uint32
	}{
		{256, 192},
		{1024, 768},
		{4096, 3075},
		{65536, 49535},
	}
	for _, test := range tests {
		if got := Discriminator(test.avg); got != test.want {
			t.Errorf("Discriminator(%d) = %d, want %d", test.avg, got, test.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		valid  bool
	}{
		{"default", DefaultConfig(), true},
		{"small", small, true},
		{"min equals window", Config{MinSize: 48, AvgSize: 48, MaxSize: 49}, true},
		{"min below window", Config{MinSize: 47, AvgSize: 256, MaxSize: 1024}, false},
		{"min above avg", Config{MinSize: 512, AvgSize: 256, MaxSize: 1024}, false},
		{"avg above max", Config{MinSize: 64, AvgSize: 2048, MaxSize: 1024}, false},
		{"min equals max", Config{MinSize: 1024, AvgSize: 1024, MaxSize: 1024}, false},
		{"avg beyond calibration", FromAverage(16 << 20), false},
		{"largest average", FromAverage(MaxAvgSize), true},
		{"max beyond store limit", Config{MinSize: 64, AvgSize: 1024, MaxSize: castore.MaxChunkSize + 1}, false},
		{"zero", Config{}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.config.Validate()
			if test.valid && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !test.valid && !failure.Is(err, failure.KindConfig) {
				t.Fatalf("Validate error = %v, want config error", err)
			}
		})
	}
}

func TestFromAverage(t *testing.T) {
	if got := FromAverage(DefaultAvgSize); got != DefaultConfig() {
		t.Errorf("FromAverage(%d) = %+v, want %+v", DefaultAvgSize, got, DefaultConfig())
	}
	if got := FromHeader(small.Header()); got != small {
		t.Errorf("FromHeader(Header()) = %+v, want %+v", got, small)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(bytes.NewReader(nil), Config{MinSize: 10, AvgSize: 20, MaxSize: 30})
	if !failure.Is(err, failure.KindConfig) {
		t.Fatalf("New error = %v, want config error", err)
	}
}

func TestChunkSizes(t *testing.T) {
	// Expected cut points were computed independently from the casync
	// boundary rule and pin the exact behavior of the hash and the
	// discriminator.
	tests := []struct {
		name   string
		data   []byte
		config Config
		want   []int
	}{
		{
			name:   "empty input",
			data:   nil,
			config: small,
			want:   nil,
		},
		{
			name:   "one byte",
			data:   []byte{0x42},
			config: small,
			want:   []int{1},
		},
		{
			name:   "shorter than the hash window",
			data:   testutil.PseudoRandom(1, 40),
			config: small,
			want:   []int{40},
		},
		{
			name:   "exactly min",
			data:   testutil.PseudoRandom(1, 64),
			config: small,
			want:   []int{64},
		},
		{
			name:   "between min and min plus window",
			data:   testutil.PseudoRandom(1, 84),
			config: small,
			want:   []int{84},
		},
		{
			name:   "constant input cuts only at max",
			data:   make([]byte, 5000),
			config: small,
			want:   []int{1024, 1024, 1024, 1024, 904},
		},
		{
			name:   "max cuts then discriminator cuts",
			data:   append(make([]byte, 3000), testutil.PseudoRandom(9, 3000)...),
			config: small,
			want:   []int{1024, 1024, 1024, 446, 301, 150, 143, 355, 176, 247, 186, 534, 95, 80, 215},
		},
		{
			name:   "200 KB with default bounds, seed 2",
			data:   testutil.PseudoRandom(2, 200*1024),
			config: DefaultConfig(),
			want:   []int{97853, 103964, 2983},
		},
		{
			name:   "200 KB with default bounds, seed 4",
			data:   testutil.PseudoRandom(4, 200*1024),
			config: DefaultConfig(),
			want:   []int{23264, 80267, 71492, 29777},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			chunks := chunkAll(t, test.data, test.config)
			if got := sizes(chunks); !slices.Equal(got, test.want) {
				t.Fatalf("chunk sizes = %v, want %v", got, test.want)
			}
			if joined := bytes.Join(chunks, nil); !bytes.Equal(joined, test.data) {
				t.Fatal("concatenated chunks differ from input")
			}
		})
	}
}

func TestChunkBounds(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		data := testutil.PseudoRandom(seed, 20_000)
		chunks := chunkAll(t, data, small)
		if len(chunks) < 2 {
			t.Fatalf("seed %d: only %d chunks", seed, len(chunks))
		}
		total := 0
		for i, chunk := range chunks {
			total += len(chunk)
			if i == len(chunks)-1 {
				continue
			}
			size := uint64(len(chunk))
			if size < small.MinSize || size > small.MaxSize {
				t.Errorf("seed %d chunk %d: size %d outside [%d, %d]",
					seed, i, size, small.MinSize, small.MaxSize)
			}
		}
		if total != len(data) {
			t.Errorf("seed %d: chunks total %d bytes, want %d", seed, total, len(data))
		}
	}
}

func TestBoundariesSurviveInsertion(t *testing.T) {
	original := testutil.PseudoRandom(11, 30_000)
	edited := slices.Concat(original[:15_000], []byte("inserted text"), original[15_000:])

	before := chunkAll(t, original, small)
	after := chunkAll(t, edited, small)

	// Chunks entirely before the edit are unchanged; once the window
	// passes the edit, cuts resynchronize and the tails agree again.
	if !bytes.Equal(before[0], after[0]) {
		t.Error("first chunk changed by an edit in the middle of the stream")
	}
	if !bytes.Equal(before[len(before)-1], after[len(after)-1]) {
		t.Error("last chunk changed by an edit in the middle of the stream")
	}

	shared := 0
	seen := make(map[string]bool)
	for _, chunk := range before {
		seen[string(chunk)] = true
	}
	for _, chunk := range after {
		if seen[string(chunk)] {
			shared++
		}
	}
	if shared < len(before)-3 {
		t.Errorf("only %d of %d chunks survived a single insertion", shared, len(before))
	}
}

func TestChunkerOffset(t *testing.T) {
	data := testutil.PseudoRandom(3, 10_000)
	chunker, err := New(bytes.NewReader(data), small)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var end uint64
	for {
		chunk, err := chunker.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		end += uint64(len(chunk))
		if chunker.Offset() != end {
			t.Fatalf("Offset = %d, want %d", chunker.Offset(), end)
		}
	}
	if end != uint64(len(data)) {
		t.Errorf("final offset %d, want %d", end, len(data))
	}

	// EOF is sticky.
	if _, err := chunker.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next after EOF = %v, want io.EOF", err)
	}
}

func TestChunkerReadError(t *testing.T) {
	reader := io.MultiReader(bytes.NewReader(make([]byte, 100)), &failingReader{})
	chunker, err := New(reader, small)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for {
		_, err = chunker.Next()
		if err != nil {
			break
		}
	}
	if !failure.Is(err, failure.KindIO) {
		t.Fatalf("Next error = %v, want I/O error", err)
	}
}

type failingReader struct{}

func (*failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}
