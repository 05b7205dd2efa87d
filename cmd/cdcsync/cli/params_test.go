// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlagsTypes(t *testing.T) {
	type params struct {
		Index    string        `flag:"index,i" desc:"index path"`
		Force    bool          `flag:"force" desc:"overwrite"`
		Retries  int           `flag:"retries" desc:"retry count"`
		AvgSize  uint64        `flag:"avg" desc:"average size"`
		Timeout  time.Duration `flag:"timeout" desc:"request timeout"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	err := flagSet.Parse([]string{"-i", "a.caibx", "--force", "--retries", "3", "--avg", "8589934592", "--timeout", "90s"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Index != "a.caibx" {
		t.Errorf("Index = %q", p.Index)
	}
	if !p.Force {
		t.Error("Force = false")
	}
	if p.Retries != 3 {
		t.Errorf("Retries = %d", p.Retries)
	}
	if p.AvgSize != 8<<30 {
		t.Errorf("AvgSize = %d", p.AvgSize)
	}
	if p.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v", p.Timeout)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlagsDefaults(t *testing.T) {
	type params struct {
		Format  string        `flag:"format" default:"text"`
		Sync    bool          `flag:"sync" default:"true"`
		Retries int           `flag:"retries" default:"5"`
		AvgSize uint64        `flag:"avg" default:"65536"`
		Timeout time.Duration `flag:"timeout" default:"1m"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if p.Format != "text" || !p.Sync || p.Retries != 5 || p.AvgSize != 65536 || p.Timeout != time.Minute {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestBindFlagsEmbedded(t *testing.T) {
	type inner struct {
		MinSize uint64 `flag:"min"`
	}
	type params struct {
		GlobalParams
		JSONOutput
		inner
		Index string `flag:"index,i"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	for _, name := range []string{"config", "log-level", "json", "min", "index"} {
		if flagSet.Lookup(name) == nil {
			t.Errorf("flag --%s not bound", name)
		}
	}

	if err := flagSet.Parse([]string{"--json", "--min", "64", "--config", "c.yaml"}); err != nil {
		t.Fatal(err)
	}
	if !p.OutputJSON || p.MinSize != 64 || p.ConfigPath != "c.yaml" {
		t.Errorf("embedded fields not set: %+v", p)
	}
}

func TestBindFlagsErrors(t *testing.T) {
	tests := []struct {
		name     string
		params   any
		contains string
	}{
		{"not a pointer", struct{}{}, "pointer to a struct"},
		{"pointer to non-struct", new(int), "pointer to a struct"},
		{"unsupported type", &struct {
			Ratio float32 `flag:"ratio"`
		}{}, "unsupported type"},
		{"bad default", &struct {
			Count int `flag:"count" default:"many"`
		}{}, "default for --count"},
		{"unexported field", &struct {
			hidden string `flag:"hidden"`
		}{}, "not settable"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil {
				t.Fatal("BindFlags succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.contains) {
				t.Errorf("error %q does not contain %q", err, test.contains)
			}
		})
	}
}

func TestFlagsFromParamsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic on a non-pointer")
		}
	}()
	FlagsFromParams("test", struct{}{})
}

func TestBindFlagsAliases(t *testing.T) {
	type params struct {
		SeedFile  string `flag:"sf" alias:"seed-file"`
		SeedIndex string `flag:"si" alias:"seed-index,seed-idx"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--seed-file", "old.bin", "--seed-idx", "old.caibx"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.SeedFile != "old.bin" || p.SeedIndex != "old.caibx" {
		t.Errorf("aliases not applied: %+v", p)
	}

	if err := flagSet.Parse([]string{"--sf", "new.bin"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.SeedFile != "new.bin" {
		t.Errorf("SeedFile = %q after --sf, want new.bin", p.SeedFile)
	}
}
