package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/aepdown/internal/history"
)

func historyCmd() *cli.Command {
	var (
		limit  int
		dbPath string
	)

	return &cli.Command{
		Name:  "history",
		Usage: "Show recent conversions",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "number of entries to show", Value: 20, Destination: &limit},
			&cli.StringFlag{Name: "history-db", Usage: "path to the conversion history database", Destination: &dbPath},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if appConfig.HistoryDB != "" && !cmd.IsSet("history-db") {
				dbPath = appConfig.HistoryDB
			}
			path := resolveHistoryPath(dbPath, false)
			if path == "" {
				return cli.Exit("error: history is disabled", 1)
			}
			if _, err := os.Stat(path); err != nil {
				fmt.Println("no conversions recorded")
				return nil
			}

			store, err := history.Open(ctx, path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open history: %v", err), 1)
			}
			defer func() { _ = store.Close() }()

			entries, err := store.List(ctx, limit)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: list history: %v", err), 1)
			}
			if len(entries) == 0 {
				fmt.Println("no conversions recorded")
				return nil
			}
			fmt.Print(historyTable(entries))
			return nil
		},
	}
}

func historyTable(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		detail := e.Output
		if e.Status != history.StatusOK {
			detail = e.ErrorKind
		}
		rows = append(rows, []string{
			e.CreatedAt.Local().Format(time.DateTime),
			e.Input,
			e.Source,
			e.Target,
			e.Status,
			strconv.FormatInt(e.Bytes, 10),
			detail,
		})
	}
	return renderTable(
		[]string{"When", "Input", "Source", "Target", "Status", "Bytes", "Output / error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}
