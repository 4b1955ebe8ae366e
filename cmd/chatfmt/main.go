package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/chatfmt/internal/chattemplate"
	"github.com/samcharles93/chatfmt/internal/logger"
)

func main() {
	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "chatfmt",
		Usage: "Render chat prompts for local language models",
		Flags: loggingFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg := LoadConfig(configPath())
			applyLoggingConfig(cmd, cfg)
			level := logger.ParseLevel(logLevel)
			if debug {
				level = slog.LevelDebug
			}
			log := logger.FromFormat(cmd.ErrWriter, logFormat, level)
			ctx = logger.WithContext(ctx, log)
			return withConfig(ctx, cfg), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			templatesCmd(),
			resolveCmd(),
			renderCmd(),
			chatCmd(),
			stopCmd(),
			postprocessCmd(),
			inspectCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}

// newRegistry builds the built-in registry with the context logger and the
// configured fallback.
func newRegistry(ctx context.Context) *chattemplate.Registry {
	opts := []chattemplate.Option{chattemplate.WithLogger(logger.FromContext(ctx))}
	if name := configFrom(ctx).DefaultTemplate; name != "" {
		opts = append(opts, chattemplate.WithFallback(name))
	}
	return chattemplate.NewRegistry(chattemplate.Builtin(), opts...)
}

func stdout(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func stdin(cmd *cli.Command) io.Reader {
	return cmd.Root().Reader
}
