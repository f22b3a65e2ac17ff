package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/aepdown/pkg/aep"
)

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `output_dir: /srv/out
targets: ["23", "24"]
workers: 3
overwrite: true
history_db: off
log_level: warn
server_address: 0.0.0.0:9000
max_upload_bytes: 1024
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := loadConfigFile(path)
	if cfg.OutputDir != "/srv/out" || len(cfg.Targets) != 2 || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Workers == nil || *cfg.Workers != 3 {
		t.Fatalf("workers: %v", cfg.Workers)
	}
	if cfg.Overwrite == nil || !*cfg.Overwrite {
		t.Fatalf("overwrite: %v", cfg.Overwrite)
	}
	if cfg.HistoryDB != "off" {
		t.Fatalf("history_db: %q", cfg.HistoryDB)
	}
	if cfg.MaxUploadBytes == nil || *cfg.MaxUploadBytes != 1024 {
		t.Fatalf("max_upload_bytes: %v", cfg.MaxUploadBytes)
	}
}

func TestLoadConfigFileMissingOrInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if cfg := loadConfigFile(filepath.Join(dir, "missing.yaml")); cfg.OutputDir != "" || cfg.Workers != nil {
		t.Fatalf("expected zero config for missing file, got %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("workers: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if cfg := loadConfigFile(bad); cfg.Workers != nil {
		t.Fatalf("expected zero config for invalid file, got %+v", cfg)
	}

	if cfg := loadConfigFile(""); cfg.OutputDir != "" {
		t.Fatalf("expected zero config for empty path, got %+v", cfg)
	}
}

// runConvertFlags parses args against the convert flags and returns the
// options after config defaults are applied.
func runConvertFlags(t *testing.T, cfg Config, args ...string) convertOptions {
	t.Helper()

	var opts convertOptions
	cmd := &cli.Command{
		Name: "convert",
		Flags: append([]cli.Flag{
			&cli.StringSliceFlag{Name: "target"},
			&cli.StringFlag{Name: "out", Destination: &opts.outDir},
			&cli.IntFlag{Name: "workers", Value: 1, Destination: &opts.workers},
			&cli.BoolFlag{Name: "overwrite", Destination: &opts.overwrite},
		}, historyFlags(&opts.history, &opts.noHistory)...),
		Action: func(ctx context.Context, c *cli.Command) error {
			opts.targets = c.StringSlice("target")
			applyConvertConfig(c, cfg, &opts)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"convert"}, args...)); err != nil {
		t.Fatalf("run: %v", err)
	}
	return opts
}

func TestApplyConvertConfig(t *testing.T) {
	workers := 6
	overwrite := true
	cfg := Config{
		OutputDir: "/cfg/out",
		Targets:   []string{"24"},
		Workers:   &workers,
		Overwrite: &overwrite,
		HistoryDB: "/cfg/history.db",
	}

	t.Run("config fills unset flags", func(t *testing.T) {
		opts := runConvertFlags(t, cfg)
		if opts.outDir != "/cfg/out" || opts.workers != 6 || !opts.overwrite || opts.history != "/cfg/history.db" {
			t.Fatalf("unexpected options: %+v", opts)
		}
		if strings.Join(opts.targets, ",") != "24" {
			t.Fatalf("targets: %v", opts.targets)
		}
	})

	t.Run("flags win over config", func(t *testing.T) {
		opts := runConvertFlags(t, cfg, "--target", "23", "--out", "/flag/out", "--workers", "2", "--history-db", "/flag/h.db")
		if opts.outDir != "/flag/out" || opts.workers != 2 || opts.history != "/flag/h.db" {
			t.Fatalf("unexpected options: %+v", opts)
		}
		targets, err := parseTargets(opts.targets)
		if err != nil {
			t.Fatalf("parseTargets: %v", err)
		}
		if len(targets) != 1 || targets[0] != aep.Version23 {
			t.Fatalf("targets: %v", targets)
		}
	})
}
