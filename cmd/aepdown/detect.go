package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/aepdown/internal/batch"
	"github.com/samcharles93/aepdown/internal/logger"
	"github.com/samcharles93/aepdown/pkg/aep"
)

type detectLine struct {
	Path       string `json:"path"`
	Version    string `json:"version,omitempty"`
	Signature  string `json:"signature,omitempty"`
	HeadOffset int    `json:"head_offset,omitempty"`
	Kind       string `json:"error_kind,omitempty"`
	Error      string `json:"error,omitempty"`
}

func detectCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "detect",
		Usage:     "Report the version of project files",
		ArgsUsage: "FILE|DIR...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print one JSON object per file", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			paths, err := batch.Expand(cmd.Args().Slice())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			lines := make([]detectLine, 0, len(paths))
			failed := 0
			for _, p := range paths {
				line := detectLine{Path: p}
				d, err := batch.DetectFile(p)
				if err != nil {
					failed++
					line.Kind = batch.Kind(err)
					line.Error = err.Error()
					log.Debug("detect failed", "path", p, "error", err)
				} else {
					line.Version = d.Version.String()
					line.Signature = d.Signature.Hex()
					line.HeadOffset = d.HeadOffset
				}
				lines = append(lines, line)
			}

			if asJSON {
				err = writeDetectJSON(os.Stdout, lines)
			} else {
				_, err = fmt.Fprint(os.Stdout, detectTable(lines))
			}
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: write output: %v", err), 1)
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d files could not be detected", failed, len(paths)), 2)
			}
			return nil
		},
	}
}

func writeDetectJSON(w io.Writer, lines []detectLine) error {
	enc := json.NewEncoder(w)
	for _, l := range lines {
		if err := enc.Encode(l); err != nil {
			return err
		}
	}
	return nil
}

func detectTable(lines []detectLine) string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		if l.Error != "" {
			rows = append(rows, []string{l.Path, "unknown", "", "", l.Error})
			continue
		}
		v, _ := aep.ParseVersion(l.Version)
		rows = append(rows, []string{l.Path, v.Label(), l.Signature, strconv.Itoa(l.HeadOffset), ""})
	}
	return renderTable(
		[]string{"File", "Version", "Signature", "Head", "Error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
