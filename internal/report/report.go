// Package report builds the JSON debug report written after a batch.
package report

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/samcharles93/aepdown/internal/version"
)

// Platform describes the host that produced the report.
type Platform struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	GoVersion string `json:"go_version"`
	Hostname  string `json:"hostname,omitempty"`
	CPUs      int    `json:"cpus"`
}

// Entry is the outcome of one (input, target) conversion.
type Entry struct {
	Input      string `json:"input"`
	Output     string `json:"output,omitempty"`
	Source     string `json:"source,omitempty"`
	Target     string `json:"target"`
	Signature  string `json:"signature,omitempty"`
	OK         bool   `json:"ok"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Error      string `json:"error,omitempty"`
	Bytes      int64  `json:"bytes,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Report is the document written by `aepdown convert --report`.
type Report struct {
	ID         string    `json:"id"`
	Tool       string    `json:"tool"`
	Version    string    `json:"version"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Platform   Platform  `json:"platform"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Entries    []Entry   `json:"entries"`
}

// New assembles a report for entries produced between started and finished.
func New(started, finished time.Time, entries []Entry) *Report {
	r := &Report{
		ID:         uuid.NewString(),
		Tool:       "aepdown",
		Version:    version.String(),
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Platform:   currentPlatform(),
		Entries:    entries,
	}
	if r.Entries == nil {
		r.Entries = []Entry{}
	}
	for _, e := range entries {
		if e.OK {
			r.Succeeded++
		} else {
			r.Failed++
		}
	}
	return r
}

func currentPlatform() Platform {
	host, _ := os.Hostname()
	return Platform{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		Hostname:  host,
		CPUs:      runtime.NumCPU(),
	}
}

// Encode writes r as indented JSON.
func Encode(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Decode reads a report written by Encode.
func Decode(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// WriteFile encodes r to path.
func WriteFile(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
