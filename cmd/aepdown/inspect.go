package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/aepdown/pkg/aep"
	"github.com/samcharles93/aepdown/pkg/rifx"
)

func inspectCmd() *cli.Command {
	var limit int

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the container header, version and chunk layout of a project file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "limit chunk listing (0 = no limit)", Value: 0, Destination: &limit},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			if c.Args().Len() != 1 {
				return cli.Exit("error: inspect takes exactly one file", 1)
			}
			path := c.Args().First()

			f, err := rifx.Open(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open %s: %v", path, err), 1)
			}
			defer func() { _ = f.Close() }()

			fmt.Printf("file:       %s\n", path)
			fmt.Printf("bytes:      %d\n", len(f.Data))
			fmt.Printf("magic:      %s\n", string(f.Header.Magic[:]))
			fmt.Printf("form:       %s\n", string(f.Header.Form[:]))
			fmt.Printf("size field: %d\n", f.Header.Size)

			if d, err := aep.Detect(f.Data); err != nil {
				fmt.Printf("version:    unknown (%v)\n", err)
			} else {
				fmt.Printf("version:    %s\n", d.Version.Label())
				fmt.Printf("signature:  %s\n", d.Signature)
				fmt.Printf("head data:  offset %d\n", d.HeadOffset)
			}

			// Walk directly so a truncated tail still lists the chunks before it.
			var chunks []rifx.Chunk
			walkErr := rifx.Walk(f.Data, func(ch rifx.Chunk) bool {
				chunks = append(chunks, ch)
				return true
			})
			fmt.Printf("chunks:     %d\n\n", len(chunks))

			shown := chunks
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			rows := make([][]string, 0, len(shown))
			for i, ch := range shown {
				rows = append(rows, []string{
					strconv.Itoa(i),
					ch.Name(),
					ch.ListType(f.Data),
					strconv.Itoa(ch.Offset),
					strconv.FormatUint(uint64(ch.Size), 10),
				})
			}
			fmt.Print(renderTable(
				[]string{"#", "ID", "List", "Offset", "Size"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
			))
			if len(shown) < len(chunks) {
				fmt.Printf("... %d more\n", len(chunks)-len(shown))
			}

			if walkErr != nil {
				return cli.Exit(fmt.Sprintf("error: walk chunks: %v", walkErr), 1)
			}
			return nil
		},
	}
}
