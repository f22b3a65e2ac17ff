package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/aepdown/pkg/aep"
)

func versionsCmd() *cli.Command {
	return &cli.Command{
		Name:  "versions",
		Usage: "List known version signatures",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx
			fmt.Print(versionsTable())
			return nil
		},
	}
}

func versionsTable() string {
	var rows [][]string
	for _, v := range aep.AllVersions() {
		sig, err := aep.SignatureFor(v)
		if err != nil {
			continue
		}
		targets := make([]string, 0, 2)
		for _, t := range aep.TargetsFor(v) {
			targets = append(targets, t.String())
		}
		rows = append(rows, []string{v.Label(), sig.String(), strings.Join(targets, ", "), "yes"})
	}
	rows = append(rows, []string{"AE 22.x", aep.Legacy22Signature.String(), "", "no"})
	return renderTable([]string{"Version", "Signature", "Converts to", "Supported"}, rows, nil)
}
