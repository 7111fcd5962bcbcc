package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/JingYiJun/ClassicIndex/internal/client"
	"github.com/JingYiJun/ClassicIndex/internal/render"
)

// SearchCommand runs a single search and prints the outcome
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the classics once and print the ranked passages",
		ArgsUsage: "<query...>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top-k",
				Usage: "Number of passages to request (1-20, remembered for later searches)",
			},
			&cli.IntFlag{
				Name:  "max-chars",
				Usage: "Truncate each passage to this many characters (0 shows it in full)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			s, err := openSession(c)
			if err != nil {
				return err
			}
			defer s.Close()

			if c.IsSet("top-k") {
				s.client.UpdateResultCount(int(c.Int("top-k")))
			}

			query := strings.Join(c.Args().Slice(), " ")
			return runSearch(ctx, s.client, query, render.Options{MaxContentRunes: int(c.Int("max-chars"))}, c.Root().Writer)
		},
	}
}

// runSearch submits query and prints the resulting state. Warning and Error
// states exit non-zero.
func runSearch(ctx context.Context, qc *client.Client, query string, opts render.Options, out io.Writer) error {
	qc.UpdateQuery(query)
	st := qc.SubmitSearch(ctx)

	fmt.Fprintln(out, render.State(st, opts))

	switch st.(type) {
	case client.Warning, client.Error:
		return cli.Exit("", 1)
	}
	return nil
}
