package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/aepdown/internal/batch"
	"github.com/samcharles93/aepdown/internal/history"
	"github.com/samcharles93/aepdown/internal/logger"
	"github.com/samcharles93/aepdown/internal/report"
)

func convertCmd() *cli.Command {
	var (
		opts       = convertOptions{workers: runtime.NumCPU()}
		reportPath string
		noProgress bool
	)

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "target",
			Aliases: []string{"t"},
			Usage:   "target version (23, 24.x, AE23x); repeatable. Default: every older version",
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "output directory (default: beside each input, or $" + envAepdownOutputDir + ")",
			Destination: &opts.outDir,
		},
		&cli.IntFlag{
			Name:        "workers",
			Aliases:     []string{"j"},
			Usage:       "number of files converted in parallel",
			Value:       opts.workers,
			Destination: &opts.workers,
		},
		&cli.BoolFlag{
			Name:        "overwrite",
			Usage:       "replace existing output files",
			Destination: &opts.overwrite,
		},
		&cli.StringFlag{
			Name:        "report",
			Usage:       "write a JSON conversion report to this path",
			Destination: &reportPath,
		},
		&cli.BoolFlag{
			Name:        "no-progress",
			Usage:       "disable the progress bar",
			Destination: &noProgress,
		},
	}

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert project files to older versions",
		ArgsUsage: "FILE|DIR...",
		Flags:     append(flags, historyFlags(&opts.history, &opts.noHistory)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			opts.targets = cmd.StringSlice("target")
			applyConvertConfig(cmd, appConfig, &opts)

			inputs, err := batch.Expand(cmd.Args().Slice())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			targets, err := parseTargets(opts.targets)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			outDir, err := resolveOutDir(opts.outDir)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: create output directory: %v", err), 1)
			}

			var (
				jobs    []batch.Job
				planned []batch.Result
			)
			if len(targets) > 0 {
				jobs = batch.Plan(inputs, targets, outDir)
			} else {
				jobs, planned = batch.PlanAuto(inputs, outDir)
			}

			runner := &batch.Runner{
				Workers:   opts.workers,
				Overwrite: opts.overwrite,
				Logger:    log,
			}
			if path := resolveHistoryPath(opts.history, opts.noHistory); path != "" {
				store, err := history.Open(ctx, path)
				if err != nil {
					log.Warn("history disabled", "path", path, "error", err)
				} else {
					defer func() { _ = store.Close() }()
					runner.History = store
				}
			}
			for _, res := range planned {
				runner.Record(ctx, res)
			}

			var bar *progressbar.ProgressBar
			if !noProgress && stderrIsTTY() && len(jobs) > 0 {
				bar = progressbar.NewOptions(len(jobs),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription(fmt.Sprintf("Converting %d files", len(inputs))),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				runner.OnProgress = func(batch.Result) { _ = bar.Add(1) }
			}

			log.Debug("starting conversion", "inputs", len(inputs), "jobs", len(jobs), "workers", opts.workers)
			started := time.Now()
			results := append(planned, runner.Run(ctx, jobs)...)
			finished := time.Now()
			if bar != nil {
				_ = bar.Finish()
			}

			fmt.Print(convertTable(results))

			if reportPath != "" {
				r := report.New(started, finished, batch.ReportEntries(results))
				if err := report.WriteFile(reportPath, r); err != nil {
					return cli.Exit(fmt.Sprintf("error: write report: %v", err), 1)
				}
				log.Info("report written", "path", reportPath)
			}

			failed := 0
			for _, res := range results {
				if !res.OK() {
					failed++
				}
			}
			log.Info("conversion finished",
				"succeeded", len(results)-failed,
				"failed", failed,
				"elapsed", finished.Sub(started).Round(time.Millisecond),
			)
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d conversions failed", failed, len(results)), 2)
			}
			return nil
		},
	}
}

func convertTable(results []batch.Result) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		source, target := "", ""
		if res.Source != 0 {
			source = res.Source.String()
		}
		if res.Target != 0 {
			target = res.Target.String()
		}
		status, output := "ok", res.Output
		if !res.OK() {
			status, output = res.Kind(), res.Err.Error()
		}
		rows = append(rows, []string{res.Input, source, target, status, output})
	}
	return renderTable(
		[]string{"Input", "Source", "Target", "Status", "Output"},
		rows,
		nil,
	)
}
