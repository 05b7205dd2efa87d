// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/cdcsync/lib/chunkid"
)

// sampleChunk mirrors the shape of a list-chunks record.
type sampleChunk struct {
	ID    chunkid.ID `json:"id"`
	Start uint64     `json:"start"`
	Size  uint64     `json:"size"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleChunk{
		ID:    chunkid.Sum([]byte("hello world")),
		Start: 1 << 20,
		Size:  65536,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleChunk
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestChunkIDEncodesAsText(t *testing.T) {
	id := chunkid.Sum([]byte("hello world"))
	data, err := Marshal(sampleChunk{ID: id})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diagnostic, `"id": "`+id.String()+`"`) {
		t.Errorf("chunk ID is not a text string in %s", diagnostic)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]uint64{"size": 3, "start": 1, "end": 4}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("encoding is not deterministic")
		}
	}

	// Core deterministic encoding sorts keys by encoded length, then
	// bytewise: "end" < "size" < "start".
	diagnostic, err := Diagnose(first)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if diagnostic != `{"end": 4, "size": 3, "start": 1}` {
		t.Errorf("diagnostic = %s", diagnostic)
	}
}

func TestStreamEncoderDecoder(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for i := range uint64(3) {
		if err := encoder.Encode(sampleChunk{Start: i * 10, Size: 10}); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i := range uint64(3) {
		var chunk sampleChunk
		if err := decoder.Decode(&chunk); err != nil {
			t.Fatalf("Decode %d: %v", i, err)
		}
		if chunk.Start != i*10 {
			t.Errorf("record %d start = %d, want %d", i, chunk.Start, i*10)
		}
	}
}

func TestDecodeAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(sampleChunk{Start: 5, Size: 6})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := decoded.(map[string]any); !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
}
