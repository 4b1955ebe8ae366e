package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func stopCmd() *cli.Command {
	var (
		template string
		player   string
		ai       string
	)

	return &cli.Command{
		Name:  "stop",
		Usage: "Print the stop sequences of a chat template, one quoted string per line",
		Flags: append([]cli.Flag{templateFlag(&template)}, nameFlags(&player, &ai)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if template == "" {
				return cli.Exit("--template is required", 1)
			}
			applyNameConfig(cmd, configFrom(ctx), &player, &ai)

			stops, err := newRegistry(ctx).StopSequences(template, player, ai)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			for _, s := range stops {
				_, _ = fmt.Fprintf(stdout(cmd), "%q\n", s)
			}
			return nil
		},
	}
}
