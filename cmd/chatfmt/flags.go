package main

import (
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/chatfmt/internal/api"
)

var (
	logLevel  string
	logFormat string
	debug     bool
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func nameFlags(player, ai *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "player",
			Usage:       "display name of the user speaker",
			Value:       api.DefaultPlayerName,
			Destination: player,
		},
		&cli.StringFlag{
			Name:        "ai",
			Usage:       "display name of the assistant speaker",
			Value:       api.DefaultAIName,
			Destination: ai,
		},
	}
}

// modelFlags select the model whose metadata drives template resolution.
func modelFlags(ggufPath, modelsDir *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gguf",
			Aliases:     []string{"m"},
			Usage:       "path to a .gguf model file",
			Destination: ggufPath,
		},
		&cli.StringFlag{
			Name:        "models-path",
			Usage:       "directory of .gguf models to pick from",
			Destination: modelsDir,
		},
	}
}

func templateFlag(name *string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "template",
		Aliases:     []string{"t"},
		Usage:       "chat template name (see `chatfmt templates`)",
		Destination: name,
	}
}
