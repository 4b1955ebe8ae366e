package main

import (
	"context"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/chatfmt/internal/chattemplate"
	"github.com/samcharles93/chatfmt/internal/conversation"
)

func renderCmd() *cli.Command {
	var (
		messagesPath string
		format       string
		template     string
		ggufPath     string
		modelsDir    string
		player       string
		ai           string
		noPrefix     bool
		highlight    bool
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Render a conversation file into a raw prompt",
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{
				Name:        "messages",
				Usage:       "conversation file (.json, .yaml) or - for stdin",
				Required:    true,
				Destination: &messagesPath,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "conversation format when reading stdin (json, yaml)",
				Value:       string(conversation.FormatJSON),
				Destination: &format,
			},
			templateFlag(&template),
			&cli.BoolFlag{
				Name:        "no-prefix",
				Usage:       "do not end the prompt with the assistant prefix",
				Destination: &noPrefix,
			},
			&cli.BoolFlag{
				Name:        "highlight",
				Usage:       "color template fragments apart from message text",
				Destination: &highlight,
			},
		}, modelFlags(&ggufPath, &modelsDir)...), nameFlags(&player, &ai)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFrom(ctx)
			applyNameConfig(cmd, cfg, &player, &ai)
			applyModelsConfig(cmd, cfg, &modelsDir)

			var (
				msgs []chattemplate.Message
				err  error
			)
			if messagesPath == "-" {
				msgs, err = conversation.Decode(stdin(cmd), conversation.Format(strings.ToLower(format)))
			} else {
				msgs, err = conversation.Load(messagesPath)
			}
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			v, err := selectVariant(ctx, cmd, newRegistry(ctx), template, ggufPath, modelsDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			segs, err := v.Segments(msgs, player, ai, !noPrefix)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return writeSegments(stdout(cmd), segs, highlight)
		},
	}
}

// writeSegments prints the prompt. With highlight, template fragments are
// colored and their control characters made visible.
func writeSegments(w io.Writer, segs []chattemplate.Segment, highlight bool) error {
	frag := color.New(color.FgCyan, color.Bold)
	if highlight {
		frag.EnableColor()
	}
	for _, s := range segs {
		var err error
		if highlight && s.Kind == chattemplate.SegmentFragment {
			_, err = frag.Fprint(w, visibleNewlines(s.Text))
		} else {
			_, err = io.WriteString(w, s.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func visibleNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "\\n\n")
}
