package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/chatfmt/internal/chattemplate"
	"github.com/samcharles93/chatfmt/internal/gguf"
	"github.com/samcharles93/chatfmt/internal/logger"
)

// selectVariant picks the variant for a command: an explicit template name
// wins, then the metadata of the selected model, then the fallback.
func selectVariant(ctx context.Context, cmd *cli.Command, reg *chattemplate.Registry, name, ggufFlag, modelsDir string) (*chattemplate.Variant, error) {
	if name != "" {
		return reg.Lookup(name)
	}
	path, err := resolveModelPath(ggufFlag, modelsDir, stdin(cmd), cmd.Root().ErrWriter)
	if err != nil {
		return nil, err
	}
	var res chattemplate.Resolution
	if path == "" {
		res = reg.Resolve(chattemplate.Source{})
	} else {
		f, err := gguf.Open(path)
		if err != nil {
			return nil, err
		}
		res = reg.FromMetadata(f, path)
	}
	logger.FromContext(ctx).Debug("resolved chat template", "template", res.Name, "source", string(res.Source), "model", path)
	return reg.Lookup(res.Name)
}

func resolveCmd() *cli.Command {
	var (
		ggufPath     string
		modelsDir    string
		templateFile string
		modelName    string
		filename     string
		verbose      bool
	)

	return &cli.Command{
		Name:  "resolve",
		Usage: "Print the chat template matching a model",
		Flags: append(modelFlags(&ggufPath, &modelsDir),
			&cli.StringFlag{
				Name:        "template-file",
				Usage:       "file holding a raw Jinja chat template",
				Destination: &templateFile,
			},
			&cli.StringFlag{
				Name:        "name",
				Usage:       "model display name (overrides general.name)",
				Destination: &modelName,
			},
			&cli.StringFlag{
				Name:        "filename",
				Usage:       "model filename to match (overrides the .gguf path)",
				Destination: &filename,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "also print which evidence matched",
				Destination: &verbose,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyModelsConfig(cmd, configFrom(ctx), &modelsDir)
			reg := newRegistry(ctx)

			var src chattemplate.Source
			path, err := resolveModelPath(ggufPath, modelsDir, stdin(cmd), cmd.Root().ErrWriter)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if path != "" {
				f, err := gguf.Open(path)
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				src.Template, _ = f.GetString(chattemplate.KeyChatTemplate)
				src.ModelName, _ = f.GetString(chattemplate.KeyModelName)
				src.Path = path
			}
			if templateFile != "" {
				data, err := os.ReadFile(templateFile)
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				src.Template = string(data)
			}
			if modelName != "" {
				src.ModelName = modelName
			}
			if filename != "" {
				src.Path = filename
			}

			res := reg.Resolve(src)
			if verbose {
				_, _ = fmt.Fprintf(stdout(cmd), "%s\t%s\n", res.Name, res.Source)
				return nil
			}
			_, _ = fmt.Fprintln(stdout(cmd), res.Name)
			return nil
		},
	}
}
