package batch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/aepdown/internal/aeptest"
	"github.com/samcharles93/aepdown/pkg/aep"
)

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		target aep.Version
		outDir string
		want   string
	}{
		{filepath.Join("projects", "intro.aep"), aep.Version24, "", filepath.Join("projects", "intro_AE24x.aep")},
		{filepath.Join("projects", "intro.aep"), aep.Version23, "out", filepath.Join("out", "intro_AE23x.aep")},
		{filepath.Join("projects", "final.v2.AEP"), aep.Version23, "  ", filepath.Join("projects", "final.v2_AE23x.aep")},
	}
	for _, tc := range tests {
		if got := OutputPath(tc.input, tc.target, tc.outDir); got != tc.want {
			t.Errorf("OutputPath(%q, %s, %q): got %q want %q", tc.input, tc.target, tc.outDir, got, tc.want)
		}
	}
}

func TestPlanOrdersAndDedupesTargets(t *testing.T) {
	t.Parallel()

	jobs := Plan([]string{"a.aep", "b.aep"}, []aep.Version{aep.Version23, aep.Version24, aep.Version23}, "out")
	if len(jobs) != 4 {
		t.Fatalf("job count: got %d want 4", len(jobs))
	}
	want := []struct {
		input  string
		target aep.Version
	}{
		{"a.aep", aep.Version24},
		{"a.aep", aep.Version23},
		{"b.aep", aep.Version24},
		{"b.aep", aep.Version23},
	}
	for i, w := range want {
		if jobs[i].Input != w.input || jobs[i].Target != w.target {
			t.Errorf("job %d: got %s/%s want %s/%s", i, jobs[i].Input, jobs[i].Target, w.input, w.target)
		}
	}
}

func TestPlanAuto(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p25 := aeptest.WriteProject(t, dir, "new.aep", aep.Version25)
	p23 := aeptest.WriteProject(t, dir, "old.aep", aep.Version23)
	bad := aeptest.WriteFile(t, dir, "bad.aep", []byte("not a project file"))

	jobs, failed := PlanAuto([]string{p25, p23, bad}, "")
	if len(jobs) != 2 {
		t.Fatalf("job count: got %d want 2 (%+v)", len(jobs), jobs)
	}
	if jobs[0].Target != aep.Version24 || jobs[1].Target != aep.Version23 {
		t.Fatalf("auto targets: got %s, %s", jobs[0].Target, jobs[1].Target)
	}
	if len(failed) != 2 {
		t.Fatalf("failed count: got %d want 2", len(failed))
	}
	if !errors.Is(failed[0].Err, aep.ErrInvalidTarget) || failed[0].Source != aep.Version23 {
		t.Fatalf("oldest version should not be convertible: %+v", failed[0])
	}
	if !errors.Is(failed[1].Err, aep.ErrInvalidContainer) {
		t.Fatalf("expected ErrInvalidContainer for bad input, got %v", failed[1].Err)
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.aep", "a.AEP", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.aep"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	extra := filepath.Join(t.TempDir(), "single.aep")
	if err := os.WriteFile(extra, nil, 0o644); err != nil {
		t.Fatalf("write extra: %v", err)
	}

	got, err := Expand([]string{dir, extra, filepath.Join(dir, "b.aep")})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := []string{filepath.Join(dir, "a.AEP"), filepath.Join(dir, "b.aep"), extra}
	if len(got) != len(want) {
		t.Fatalf("expand: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expand[%d]: got %q want %q", i, got[i], want[i])
		}
	}

	if _, err := Expand([]string{filepath.Join(dir, "missing.aep")}); err == nil {
		t.Fatal("expected error for missing path")
	}
	if _, err := Expand([]string{t.TempDir()}); err == nil {
		t.Fatal("expected error for directory without projects")
	}
}
