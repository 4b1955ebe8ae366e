package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/chatfmt/internal/chattemplate"
)

const chatHelp = `commands:
  /system TEXT     set the system prompt
  /ai TEXT         append an assistant reply
  /template NAME   switch chat template
  /undo            drop the last message
  /reset           clear the conversation
  /show            print the current prompt
  /stop            print the stop sequences
  /quit            leave
any other line is appended as a user message and the prompt is printed`

func chatCmd() *cli.Command {
	var (
		template  string
		ggufPath  string
		modelsDir string
		player    string
		ai        string
		highlight bool
	)

	return &cli.Command{
		Name:  "chat",
		Usage: "Build a conversation interactively and watch the rendered prompt",
		Flags: append(append([]cli.Flag{
			templateFlag(&template),
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

			reg := newRegistry(ctx)
			v, err := selectVariant(ctx, cmd, reg, template, ggufPath, modelsDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			w := stdout(cmd)
			s := &chatSession{
				registry:  reg,
				variant:   v,
				player:    player,
				ai:        ai,
				highlight: highlight,
			}
			_, _ = fmt.Fprintf(w, "template %s; /help for commands\n", v.Name)

			ed := newLineEditor("> ", stdin(cmd), w)
			for {
				line, err := ed.ReadLine()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				quit, err := s.handle(w, line)
				if err != nil {
					_, _ = fmt.Fprintln(cmd.Root().ErrWriter, "error:", err)
				}
				if quit {
					return nil
				}
			}
		},
	}
}

type chatSession struct {
	registry  *chattemplate.Registry
	variant   *chattemplate.Variant
	player    string
	ai        string
	highlight bool

	system   *chattemplate.Message
	messages []chattemplate.Message
}

func (s *chatSession) conversation() []chattemplate.Message {
	out := make([]chattemplate.Message, 0, len(s.messages)+1)
	if s.system != nil {
		out = append(out, *s.system)
	}
	return append(out, s.messages...)
}

// handle executes one input line and reports whether the session should end.
func (s *chatSession) handle(w io.Writer, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		s.messages = append(s.messages, chattemplate.Message{Role: "user", Content: line})
		return false, s.show(w)
	}

	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch verb {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		_, err := fmt.Fprintln(w, chatHelp)
		return false, err
	case "/system":
		if arg == "" {
			s.system = nil
			return false, nil
		}
		s.system = &chattemplate.Message{Role: chattemplate.RoleSystem, Content: arg}
		return false, nil
	case "/ai":
		s.messages = append(s.messages, chattemplate.Message{Role: "assistant", Content: arg})
		return false, nil
	case "/template":
		v, err := s.registry.Lookup(arg)
		if err != nil {
			return false, err
		}
		s.variant = v
		_, err = fmt.Fprintf(w, "template %s\n", v.Name)
		return false, err
	case "/undo":
		if len(s.messages) > 0 {
			s.messages = s.messages[:len(s.messages)-1]
		}
		return false, nil
	case "/reset":
		s.system = nil
		s.messages = nil
		return false, nil
	case "/show":
		return false, s.show(w)
	case "/stop":
		for _, stop := range s.variant.StopSequences(s.player, s.ai) {
			if _, err := fmt.Fprintf(w, "%q\n", stop); err != nil {
				return false, err
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %s", verb)
	}
}

func (s *chatSession) show(w io.Writer) error {
	segs, err := s.variant.Segments(s.conversation(), s.player, s.ai, true)
	if err != nil {
		return err
	}
	if err := writeSegments(w, segs, s.highlight); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
