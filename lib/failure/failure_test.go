// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package failure

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestConstructorsSetKind(t *testing.T) {
	tests := []struct {
		err  *Error
		want Kind
	}{
		{Format("bad magic %x", 1), KindFormat},
		{IO("opening: %w", fs.ErrPermission), KindIO},
		{NotFound("chunk %s", "abcd"), KindNotFound},
		{Config("seed index without seed file"), KindConfig},
		{Network("GET: %w", errors.New("refused")), KindNetwork},
		{Unsupported("remote write"), KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if tt.err.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.want)
			}
			if KindOf(tt.err) != tt.want {
				t.Errorf("KindOf = %v, want %v", KindOf(tt.err), tt.want)
			}
		})
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	inner := NotFound("chunk %s missing", "0011")
	wrapped := fmt.Errorf("assembling chunk 3: %w", inner)

	if KindOf(wrapped) != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want not_found", KindOf(wrapped))
	}
	if !Is(wrapped, KindNotFound) {
		t.Error("Is(wrapped, KindNotFound) = false")
	}
	if Is(wrapped, KindFormat) {
		t.Error("Is(wrapped, KindFormat) = true")
	}
}

func TestIsMatchesInnerKinds(t *testing.T) {
	err := fmt.Errorf("loading seed: %w", Config("seed index: %w", NotFound("chunk missing")))

	if KindOf(err) != KindConfig {
		t.Errorf("KindOf = %v, want config", KindOf(err))
	}
	for _, kind := range []Kind{KindConfig, KindNotFound} {
		if !Is(err, kind) {
			t.Errorf("Is(err, %v) = false", kind)
		}
	}
	for _, kind := range []Kind{KindFormat, KindInternal} {
		if Is(err, kind) {
			t.Errorf("Is(err, %v) = true", kind)
		}
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	err := IO("reading index: %w", fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, cause lost")
	}
	if err.Error() != "reading index: file does not exist" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestUnclassifiedIsInternal(t *testing.T) {
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("plain error should classify as internal")
	}
	if !Is(errors.New("plain"), KindInternal) {
		t.Error("plain error should match KindInternal")
	}
	if Is(nil, KindInternal) {
		t.Error("nil error should not match any kind")
	}
	if Kind(42).String() != "unknown(42)" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
}
