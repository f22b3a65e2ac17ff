package main

import "github.com/urfave/cli/v3"

var (
	logLevel  string
	logFormat string
	debug     bool
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func historyFlags(path *string, disabled *bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "history-db",
			Usage:       "path to the conversion history database",
			Destination: path,
		},
		&cli.BoolFlag{
			Name:        "no-history",
			Usage:       "do not record conversions",
			Destination: disabled,
		},
	}
}
