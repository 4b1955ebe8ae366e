package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

func templatesCmd() *cli.Command {
	var (
		descriptions bool
		long         bool
	)

	return &cli.Command{
		Name:  "templates",
		Usage: "List the built-in chat templates",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "descriptions",
				Usage:       "list descriptions instead of names",
				Destination: &descriptions,
			},
			&cli.BoolFlag{
				Name:        "long",
				Aliases:     []string{"l"},
				Usage:       "show capabilities next to each name",
				Destination: &long,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg := newRegistry(ctx)
			w := stdout(cmd)

			if descriptions {
				for _, d := range reg.Descriptions() {
					_, _ = fmt.Fprintln(w, d)
				}
				return nil
			}
			if !long {
				for _, n := range reg.Names() {
					_, _ = fmt.Fprintln(w, n)
				}
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tSYSTEM\tTHINKING\tDESCRIPTION")
			for _, n := range reg.Names() {
				v, err := reg.Lookup(n)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Name, yesNo(v.SystemPromptSupported()), yesNo(v.HasThinkingMode()), v.Description)
			}
			return tw.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
