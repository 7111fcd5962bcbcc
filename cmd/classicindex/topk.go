package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"
)

// TopKCommand shows or changes the saved result count
func TopKCommand() *cli.Command {
	return &cli.Command{
		Name:      "top-k",
		Usage:     "Show or set how many passages a search requests",
		ArgsUsage: "[n]",
		Action: func(ctx context.Context, c *cli.Command) error {
			s, err := openSession(c)
			if err != nil {
				return err
			}
			defer s.Close()

			if c.Args().Len() > 0 {
				n, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return fmt.Errorf("invalid result count %q: must be an integer", c.Args().First())
				}
				s.client.UpdateResultCount(n)
			}

			fmt.Fprintln(c.Root().Writer, s.client.ResultCount())
			return nil
		},
	}
}
