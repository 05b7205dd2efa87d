// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package castore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/cdcsync/lib/chunkid"
	"github.com/bureau-foundation/cdcsync/lib/failure"
	"github.com/bureau-foundation/cdcsync/lib/testutil"
)

func newTestLocal(t *testing.T, compression Compression) *Local {
	t.Helper()
	store, err := NewLocal(filepath.Join(t.TempDir(), "store"), Options{Compression: compression})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	return store
}

func TestLocalRoundTrip(t *testing.T) {
	tests := []struct {
		compression Compression
		extension   string
	}{
		{CompressionZstd, ".cacnk"},
		{CompressionLZ4, ".cacnk.lz4"},
	}
	for _, test := range tests {
		t.Run(test.compression.String(), func(t *testing.T) {
			store := newTestLocal(t, test.compression)
			ctx := context.Background()
			data := testutil.PseudoRandom(1, 100_000)

			id, err := store.WriteItem(ctx, data)
			if err != nil {
				t.Fatalf("WriteItem: %v", err)
			}
			if id != chunkid.Sum(data) {
				t.Errorf("ID = %s, want %s", id, chunkid.Sum(data))
			}

			wantPath := filepath.Join(store.Root(), id.String()[:4], id.String()+test.extension)
			if store.ChunkPath(id) != wantPath {
				t.Errorf("ChunkPath = %s, want %s", store.ChunkPath(id), wantPath)
			}
			if _, err := os.Stat(wantPath); err != nil {
				t.Fatalf("blob not at expected path: %v", err)
			}
			if !store.Has(id) {
				t.Error("Has reports false after write")
			}

			got, err := store.ReadItem(ctx, id)
			if err != nil {
				t.Fatalf("ReadItem: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Error("read content differs from written content")
			}
		})
	}
}

func TestLocalCompressesRepetitiveData(t *testing.T) {
	store := newTestLocal(t, CompressionZstd)
	data := bytes.Repeat([]byte("cdcsync "), 8192)

	id, err := store.WriteItem(context.Background(), data)
	if err != nil {
		t.Fatalf("WriteItem: %v", err)
	}
	info, err := os.Stat(store.ChunkPath(id))
	if err != nil {
		t.Fatalf("stat blob: %v", err)
	}
	if info.Size() >= int64(len(data))/10 {
		t.Errorf("blob is %d bytes for %d bytes of repetitive input", info.Size(), len(data))
	}
	stats := store.Stats()
	if stats.CompressedBytes != uint64(info.Size()) {
		t.Errorf("CompressedBytes = %d, want %d", stats.CompressedBytes, info.Size())
	}
}

func TestLocalDeduplicates(t *testing.T) {
	store := newTestLocal(t, CompressionZstd)
	ctx := context.Background()
	data := []byte("the same chunk twice")

	first, err := store.WriteItem(ctx, data)
	if err != nil {
		t.Fatalf("first WriteItem: %v", err)
	}
	info, err := os.Stat(store.ChunkPath(first))
	if err != nil {
		t.Fatalf("stat blob: %v", err)
	}

	second, err := store.WriteItem(ctx, data)
	if err != nil {
		t.Fatalf("second WriteItem: %v", err)
	}
	if first != second {
		t.Errorf("IDs differ: %s vs %s", first, second)
	}

	again, err := os.Stat(store.ChunkPath(first))
	if err != nil {
		t.Fatalf("stat blob after rewrite: %v", err)
	}
	if !again.ModTime().Equal(info.ModTime()) {
		t.Error("second write modified the existing blob")
	}

	if count := testutil.CountFiles(t, store.Root(), ".cacnk"); count != 1 {
		t.Errorf("store holds %d blobs, want 1", count)
	}

	stats := store.Stats()
	want := Stats{
		Chunks:          2,
		NewChunks:       1,
		ExistingChunks:  1,
		Bytes:           uint64(2 * len(data)),
		NewBytes:        uint64(len(data)),
		CompressedBytes: uint64(info.Size()),
	}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestLocalEmptyChunk(t *testing.T) {
	store := newTestLocal(t, CompressionZstd)
	ctx := context.Background()

	id, err := store.WriteItem(ctx, nil)
	if err != nil {
		t.Fatalf("WriteItem: %v", err)
	}
	got, err := store.ReadItem(ctx, id)
	if err != nil {
		t.Fatalf("ReadItem: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("read %d bytes, want 0", len(got))
	}
}

func TestLocalReadMissing(t *testing.T) {
	store := newTestLocal(t, CompressionZstd)

	_, err := store.ReadItem(context.Background(), chunkid.Sum([]byte("never written")))
	if !failure.Is(err, failure.KindNotFound) {
		t.Fatalf("ReadItem error = %v, want not-found", err)
	}
}

func TestLocalReadCorrupt(t *testing.T) {
	ctx := context.Background()

	t.Run("undecodable blob", func(t *testing.T) {
		store := newTestLocal(t, CompressionZstd)
		id, err := store.WriteItem(ctx, []byte("original content"))
		if err != nil {
			t.Fatalf("WriteItem: %v", err)
		}
		if err := os.WriteFile(store.ChunkPath(id), []byte("not a zstd frame"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err = store.ReadItem(ctx, id)
		if !failure.Is(err, failure.KindFormat) {
			t.Fatalf("ReadItem error = %v, want format error", err)
		}
	})

	t.Run("content does not match ID", func(t *testing.T) {
		store := newTestLocal(t, CompressionZstd)
		id, err := store.WriteItem(ctx, []byte("original content"))
		if err != nil {
			t.Fatalf("WriteItem: %v", err)
		}
		swapped, err := compressChunk([]byte("different content"), CompressionZstd)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(store.ChunkPath(id), swapped, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err = store.ReadItem(ctx, id)
		if !failure.Is(err, failure.KindFormat) {
			t.Fatalf("ReadItem error = %v, want format error", err)
		}
		if !strings.Contains(err.Error(), "hashes to") {
			t.Errorf("error %q does not describe the hash mismatch", err)
		}
	})
}

func TestLocalConcurrentWrites(t *testing.T) {
	store := newTestLocal(t, CompressionZstd)
	ctx := context.Background()
	data := testutil.PseudoRandom(7, 50_000)

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.WriteItem(ctx, data); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent WriteItem: %v", err)
	}

	if count := testutil.CountFiles(t, store.Root(), ".cacnk"); count != 1 {
		t.Errorf("store holds %d blobs, want 1", count)
	}
	if count := testutil.CountFiles(t, store.Root(), ".tmp"); count != 0 {
		t.Errorf("%d temp files left behind", count)
	}

	stats := store.Stats()
	if stats.Chunks != writers || stats.NewChunks != 1 || stats.ExistingChunks != writers-1 {
		t.Errorf("Stats = %+v, want %d chunks with exactly one new", stats, writers)
	}

	got, err := store.ReadItem(ctx, chunkid.Sum(data))
	if err != nil {
		t.Fatalf("ReadItem: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("content differs after concurrent writes")
	}
}

func TestLocalCanceledContext(t *testing.T) {
	store := newTestLocal(t, CompressionZstd)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.WriteItem(ctx, []byte("x")); err != context.Canceled {
		t.Errorf("WriteItem error = %v, want context.Canceled", err)
	}
	if count := testutil.CountFiles(t, store.Root(), ".cacnk"); count != 0 {
		t.Errorf("canceled write left %d blobs", count)
	}
}

func TestNewLocalEmptyPath(t *testing.T) {
	_, err := NewLocal("", Options{})
	if !failure.Is(err, failure.KindConfig) {
		t.Fatalf("NewLocal(\"\") error = %v, want config error", err)
	}
}
