// Package batch converts many project files to one or more target versions.
//
// Each (input, target) pair is an independent job: a failing job records its
// error and the remaining jobs still run.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/samcharles93/aepdown/pkg/aep"
	"github.com/samcharles93/aepdown/pkg/rifx"
)

// Ext is the project file extension.
const Ext = ".aep"

// Job converts Input to Target and writes Output.
type Job struct {
	Input  string
	Output string
	Target aep.Version
}

// OutputPath names the converted copy of input: "<stem>_AE23x.aep", placed in
// outDir, or beside the input when outDir is empty.
func OutputPath(input string, target aep.Version, outDir string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := outDir
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, stem+"_"+target.Suffix()+Ext)
}

// Plan returns one job per input and target, inputs in order, targets newest first.
func Plan(inputs []string, targets []aep.Version, outDir string) []Job {
	ordered := append([]aep.Version(nil), targets...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] > ordered[j] })
	ordered = slices.Compact(ordered)

	jobs := make([]Job, 0, len(inputs)*len(ordered))
	for _, in := range inputs {
		for _, t := range ordered {
			jobs = append(jobs, Job{Input: in, Output: OutputPath(in, t, outDir), Target: t})
		}
	}
	return jobs
}

// PlanAuto detects each input and plans a job for every version older than
// it. Inputs that cannot be detected are returned as failed results.
func PlanAuto(inputs []string, outDir string) ([]Job, []Result) {
	var (
		jobs   []Job
		failed []Result
	)
	for _, in := range inputs {
		d, err := DetectFile(in)
		if err != nil {
			failed = append(failed, Result{Job: Job{Input: in}, Err: err})
			continue
		}
		targets := aep.TargetsFor(d.Version)
		if len(targets) == 0 {
			failed = append(failed, Result{
				Job:    Job{Input: in},
				Source: d.Version,
				Err:    fmt.Errorf("%w: %s is the oldest supported version", aep.ErrInvalidTarget, d.Version),
			})
			continue
		}
		jobs = append(jobs, Plan([]string{in}, targets, outDir)...)
	}
	return jobs, failed
}

// DetectFile opens path and detects its version.
func DetectFile(path string) (aep.Detection, error) {
	f, err := rifx.Open(path)
	if err != nil {
		return aep.Detection{}, err
	}
	defer func() { _ = f.Close() }()
	return aep.Detect(f.Data)
}

// Expand resolves paths to project files. Directories contribute their .aep
// files (sorted, not recursive); files are kept as given.
func Expand(paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		st, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			add(p)
			continue
		}
		ents, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range ents {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
				continue
			}
			found = append(found, filepath.Join(p, e.Name()))
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no project files given")
	}
	return out, nil
}
