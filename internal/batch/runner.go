package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/aepdown/internal/fsutil"
	"github.com/samcharles93/aepdown/internal/history"
	"github.com/samcharles93/aepdown/internal/logger"
	"github.com/samcharles93/aepdown/internal/report"
	"github.com/samcharles93/aepdown/pkg/aep"
	"github.com/samcharles93/aepdown/pkg/rifx"
)

// Result is the outcome of one job. Err is nil on success.
type Result struct {
	Job
	Source    aep.Version
	Signature aep.Signature
	Bytes     int64
	Duration  time.Duration
	Err       error
}

// OK reports whether the job succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Kind returns a stable error code for r.Err, or "" on success.
func (r Result) Kind() string {
	return Kind(r.Err)
}

// Kind extends aep.ErrorKind with the failure modes of the batch layer.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	if k := aep.ErrorKind(err); k != "" {
		return k
	}
	switch {
	case errors.Is(err, fsutil.ErrExists):
		return "output_exists"
	case errors.Is(err, fsutil.ErrLocked):
		return "output_locked"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "io"
	}
}

// Recorder persists results; *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
}

// Runner executes jobs with bounded parallelism.
type Runner struct {
	Workers   int
	Overwrite bool
	Logger    logger.Logger
	History   Recorder

	// OnProgress is called once per finished job. Calls are serialised.
	OnProgress func(Result)
}

// Run executes jobs and returns their results in job order. It never fails
// as a whole; per-job errors are carried in the results. Once ctx is done no
// further jobs start and the remaining ones report ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	log := r.Logger
	if log == nil {
		log = logger.Discard()
	}
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		results = make([]Result, len(jobs))
	)
	finish := func(i int, res Result) {
		results[i] = res
		r.Record(ctx, res)
		if r.OnProgress != nil {
			mu.Lock()
			r.OnProgress(res)
			mu.Unlock()
		}
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			finish(i, Result{Job: job, Err: err})
			continue
		}
		g.Go(func() error {
			finish(i, r.runOne(ctx, log, job))
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (r *Runner) runOne(ctx context.Context, log logger.Logger, job Job) (res Result) {
	start := time.Now()
	res.Job = job
	defer func() { res.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	f, err := rifx.Open(job.Input)
	if err != nil {
		res.Err = err
		return res
	}
	d, err := aep.Detect(f.Data)
	if err == nil {
		res.Source, res.Signature = d.Version, d.Signature
	}
	out, err := aep.Convert(f.Data, job.Target)
	_ = f.Close()
	if err != nil {
		res.Err = err
		return res
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		res.Err = err
		return res
	}
	if err := fsutil.WriteFileAtomic(job.Output, out, fsutil.WriteOptions{Overwrite: r.Overwrite}); err != nil {
		res.Err = err
		return res
	}
	res.Bytes = int64(len(out))
	log.Debug("converted", "input", job.Input, "output", job.Output,
		"source", res.Source.String(), "target", job.Target.String())
	return res
}

// Record logs a failed result and stores res in the history, when one is
// configured. Run calls it for every job; callers use it for inputs that
// failed before a job could be planned.
func (r *Runner) Record(ctx context.Context, res Result) {
	log := r.Logger
	if log == nil {
		log = logger.Discard()
	}
	if res.Err != nil {
		log.Warn("conversion failed", "input", res.Input, "target", res.Target.String(),
			"kind", res.Kind(), "error", res.Err)
	}
	if r.History == nil {
		return
	}
	// The batch may have been cancelled; history still gets the outcome.
	if _, err := r.History.Record(context.WithoutCancel(ctx), historyEntry(res)); err != nil {
		log.Warn("history record failed", "input", res.Input, "error", err)
	}
}

func historyEntry(res Result) history.Entry {
	e := history.Entry{
		Input:  res.Input,
		Output: res.Output,
		Target: targetString(res.Target),
		Bytes:  res.Bytes,
		Status: history.StatusOK,
	}
	if res.Source != 0 {
		e.Source = res.Source.String()
	}
	if res.Err != nil {
		e.Status = history.StatusFailed
		e.ErrorKind = res.Kind()
		e.Error = res.Err.Error()
		e.Output = ""
	}
	return e
}

// ReportEntries converts results into report entries.
func ReportEntries(results []Result) []report.Entry {
	out := make([]report.Entry, 0, len(results))
	for _, res := range results {
		e := report.Entry{
			Input:      res.Input,
			Target:     targetString(res.Target),
			OK:         res.OK(),
			Bytes:      res.Bytes,
			DurationMS: res.Duration.Milliseconds(),
		}
		if res.Source != 0 {
			e.Source = res.Source.String()
			e.Signature = res.Signature.Hex()
		}
		if res.OK() {
			e.Output = res.Output
		} else {
			e.ErrorKind = res.Kind()
			e.Error = res.Err.Error()
		}
		out = append(out, e)
	}
	return out
}

func targetString(v aep.Version) string {
	if v == 0 {
		return ""
	}
	return v.String()
}
