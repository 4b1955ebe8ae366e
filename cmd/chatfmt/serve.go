package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/chatfmt/internal/api"
	"github.com/samcharles93/chatfmt/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		storeSize   int64
		player      string
		ai          string
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the chat template REST API",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "store-size",
				Usage:       "number of rendered prompts kept for GET /v1/prompt/:id",
				Value:       api.DefaultStoreCapacity,
				Destination: &storeSize,
			},
		}, nameFlags(&player, &ai)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFrom(ctx)
			applyServeConfig(cmd, cfg, &addr)
			applyNameConfig(cmd, cfg, &player, &ai)
			log := logger.FromContext(ctx)

			server := api.NewServer(newRegistry(ctx), api.NewPromptStore(int(storeSize)), api.Config{
				PlayerName: player,
				AIName:     ai,
				Logger:     log,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
