package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/chatfmt/internal/api"
)

func postprocessCmd() *cli.Command {
	var (
		template    string
		inPath      string
		player      string
		ai          string
		inReasoning bool
		asJSON      bool
	)

	return &cli.Command{
		Name:  "postprocess",
		Usage: "Cut raw model output at the first stop sequence and split out reasoning",
		Flags: append([]cli.Flag{
			templateFlag(&template),
			&cli.StringFlag{
				Name:        "in",
				Usage:       "file with raw model output (default stdin)",
				Destination: &inPath,
			},
			&cli.BoolFlag{
				Name:        "in-reasoning",
				Usage:       "output starts inside an open <think> block",
				Destination: &inReasoning,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print a JSON object instead of plain text",
				Destination: &asJSON,
			},
		}, nameFlags(&player, &ai)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if template == "" {
				return cli.Exit("--template is required", 1)
			}
			applyNameConfig(cmd, configFrom(ctx), &player, &ai)

			v, err := newRegistry(ctx).Lookup(template)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			raw, err := readInput(cmd, inPath)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			out := api.Postprocess(v, raw, player, ai, inReasoning)

			w := stdout(cmd)
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			if out.Reasoning != "" {
				_, _ = color.New(color.Faint).Fprintln(cmd.Root().ErrWriter, out.Reasoning)
			}
			_, err = fmt.Fprintln(w, out.Content)
			return err
		},
	}
}

func readInput(cmd *cli.Command, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin(cmd))
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
