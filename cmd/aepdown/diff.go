package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/aepdown/pkg/aep"
	"github.com/samcharles93/aepdown/pkg/rifx"
)

func diffCmd() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Compare two project files chunk by chunk",
		ArgsUsage: "A B",
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			if c.Args().Len() != 2 {
				return cli.Exit("error: diff takes exactly two files", 1)
			}
			pathA, pathB := c.Args().Get(0), c.Args().Get(1)

			a, err := rifx.Open(pathA)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open %s: %v", pathA, err), 1)
			}
			defer func() { _ = a.Close() }()
			b, err := rifx.Open(pathB)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open %s: %v", pathB, err), 1)
			}
			defer func() { _ = b.Close() }()

			fmt.Printf("a: %s (%d bytes, %s)\n", pathA, len(a.Data), versionOf(a.Data))
			fmt.Printf("b: %s (%d bytes, %s)\n", pathB, len(b.Data), versionOf(b.Data))

			diffs, err := rifx.Compare(a.Data, b.Data)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: compare: %v", err), 1)
			}
			if len(diffs) == 0 {
				fmt.Println("no chunk differences")
				return nil
			}

			rows := make([][]string, 0, len(diffs))
			for _, d := range diffs {
				rows = append(rows, []string{
					strconv.Itoa(d.Index),
					d.Kind.String(),
					describeChunk(d.A),
					describeChunk(d.B),
					formatOffsets(d.Offsets),
				})
			}
			fmt.Print(renderTable(
				[]string{"#", "Kind", "A", "B", "Data offsets"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
}

func versionOf(data []byte) string {
	v, err := aep.DetectVersion(data)
	if err != nil {
		return "unknown"
	}
	return v.Label()
}

func describeChunk(c *rifx.Chunk) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%s @%d (%d)", c.Name(), c.Offset, c.Size)
}

func formatOffsets(offs []int) string {
	parts := make([]string, len(offs))
	for i, o := range offs {
		parts[i] = strconv.Itoa(o)
	}
	return strings.Join(parts, ",")
}
