package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/chatfmt/internal/chattemplate"
	"github.com/samcharles93/chatfmt/internal/gguf"
)

const templateHeadLen = 120

func inspectCmd() *cli.Command {
	var (
		modelsDir string
		showKV    bool
		showChat  bool
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the metadata of a .gguf model relevant to prompt formatting",
		ArgsUsage: "[FILE.gguf]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "models-path",
				Usage:       "directory of .gguf models to pick from",
				Destination: &modelsDir,
			},
			&cli.BoolFlag{
				Name:        "kv",
				Usage:       "show all metadata key/values",
				Destination: &showKV,
			},
			&cli.BoolFlag{
				Name:        "chat-template",
				Usage:       "print the full embedded chat template",
				Destination: &showChat,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyModelsConfig(cmd, configFrom(ctx), &modelsDir)
			path, err := resolveModelPath(cmd.Args().First(), modelsDir, stdin(cmd), cmd.Root().ErrWriter)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if path == "" {
				return cli.Exit("inspect: a .gguf file or --models-path is required", 1)
			}

			f, err := gguf.Open(path)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			w := stdout(cmd)
			_, _ = fmt.Fprintf(w, "File: %s\n", path)
			_, _ = fmt.Fprintf(w, "GGUF v%d | tensors=%d | kv=%d\n", f.Header.Version, f.Header.TensorCount, f.Header.KVCount)
			for _, key := range []string{gguf.KeyName, gguf.KeyArchitecture, gguf.KeyBOSToken, gguf.KeyEOSToken} {
				if v, ok := f.KV[key]; ok {
					_, _ = fmt.Fprintf(w, "%-32s %s\n", key, gguf.FormatValue(v))
				}
			}

			tpl, hasTemplate := f.GetString(gguf.KeyChatTemplate)
			switch {
			case !hasTemplate:
				_, _ = fmt.Fprintf(w, "%-32s (none)\n", gguf.KeyChatTemplate)
			case showChat:
				_, _ = fmt.Fprintf(w, "%s:\n%s\n", gguf.KeyChatTemplate, tpl)
			default:
				_, _ = fmt.Fprintf(w, "%-32s %q\n", gguf.KeyChatTemplate, head(tpl, templateHeadLen))
			}

			res := newRegistry(ctx).FromMetadata(f, path)
			_, _ = fmt.Fprintf(w, "%-32s %s (%s)\n", "chat format", res.Name, describeSource(res.Source))

			if showKV {
				_, _ = fmt.Fprintln(w)
				keys := make([]string, 0, len(f.KV))
				for k := range f.KV {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					_, _ = fmt.Fprintf(w, "%s [%s] = %s\n", k, f.KV[k].Type, gguf.FormatValue(f.KV[k]))
				}
			}
			return nil
		},
	}
}

func describeSource(src chattemplate.MatchSource) string {
	switch src {
	case chattemplate.SourceTemplate:
		return "matched embedded template"
	case chattemplate.SourceModelName:
		return "matched model name"
	case chattemplate.SourceFilename:
		return "matched filename"
	default:
		return "fallback"
	}
}

func head(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
