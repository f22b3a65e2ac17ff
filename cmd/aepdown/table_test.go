package main

import (
	"strings"
	"testing"

	"github.com/samcharles93/aepdown/internal/batch"
	"github.com/samcharles93/aepdown/pkg/aep"
)

func TestRenderTable(t *testing.T) {
	t.Parallel()

	if got := renderTable(nil, nil, nil); got != "" {
		t.Fatalf("expected empty table without headers, got %q", got)
	}

	out := renderTable([]string{"Name", "Count"}, [][]string{{"a", "1"}, {"short"}}, []columnAlignment{alignLeft, alignRight})
	for _, want := range []string{"Name", "Count", "short"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestVersionsTable(t *testing.T) {
	t.Parallel()

	out := versionsTable()
	for _, want := range []string{"AE 25.x", "60 01 0f 08 86 44", "AE 23.x", "AE 22.x", "5d 2b 0b 33 06 3b"} {
		if !strings.Contains(out, want) {
			t.Fatalf("versions table missing %q:\n%s", want, out)
		}
	}
}

func TestConvertTableShowsFailures(t *testing.T) {
	t.Parallel()

	results := []batch.Result{
		{Job: batch.Job{Input: "a.aep", Output: "a_AE23x.aep", Target: aep.Version23}, Source: aep.Version25},
		{Job: batch.Job{Input: "b.aep", Target: aep.Version24}, Err: aep.ErrUnknownVersion},
	}
	out := convertTable(results)
	for _, want := range []string{"a_AE23x.aep", "ok", "unknown_version"} {
		if !strings.Contains(out, want) {
			t.Fatalf("convert table missing %q:\n%s", want, out)
		}
	}
}

func TestDetectTable(t *testing.T) {
	t.Parallel()

	out := detectTable([]detectLine{
		{Path: "comp.aep", Version: "24.x", Signature: "5f050f028634", HeadOffset: 20},
		{Path: "bad.aep", Kind: "invalid_container", Error: "not a container"},
	})
	for _, want := range []string{"AE 24.x", "5f050f028634", "unknown", "not a container"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detect table missing %q:\n%s", want, out)
		}
	}
}
