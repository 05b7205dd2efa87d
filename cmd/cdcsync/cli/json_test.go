// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	var output bytes.Buffer

	disabled := JSONOutput{}
	done, err := disabled.EmitJSON(&output, map[string]int{"chunks": 1})
	if done || err != nil || output.Len() != 0 {
		t.Fatalf("EmitJSON without --json = (%v, %v), wrote %q", done, err, output.String())
	}

	enabled := JSONOutput{OutputJSON: true}
	done, err = enabled.EmitJSON(&output, map[string]int{"chunks": 1})
	if !done || err != nil {
		t.Fatalf("EmitJSON with --json = (%v, %v)", done, err)
	}
	if output.String() != "{\n  \"chunks\": 1\n}\n" {
		t.Errorf("output = %q", output.String())
	}

	output.Reset()
	var empty []string
	if _, err := enabled.EmitJSON(&output, empty); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(output.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", output.String())
	}
}
