package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/aepdown/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:   "aepdown",
		Usage:  "Detect and down-convert After Effects project versions",
		Flags:  loggingFlags(),
		Before: setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			detectCmd(),
			convertCmd(),
			inspectCmd(),
			diffCmd(),
			versionsCmd(),
			historyCmd(),
			serveCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config file and installs the logger every command reads
// back with logger.FromContext.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	appConfig = LoadConfig()
	applyLoggingConfig(cmd, appConfig)

	level := logLevel
	if debug {
		level = "debug"
	}
	log := logger.Setup(os.Stderr, logFormat, level)
	return logger.WithContext(ctx, log), nil
}
