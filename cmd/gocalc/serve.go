package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/njchilds90/gocalc"
	"github.com/njchilds90/gocalc/internal/httpapi"
	"github.com/njchilds90/gocalc/internal/mcp"
	"github.com/njchilds90/gocalc/internal/version"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the calculator tools over MCP on stdin/stdout",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}
			logger := newLogger(c)
			srv := mcp.NewServer(cfg.MCP.Name, mcp.Defaults{
				Angle:     gocalc.AngleMode(cfg.AngleMode),
				Precision: gocalc.Places(cfg.Precision),
			}, logger)

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			logger.Info("mcp server starting", "name", cfg.MCP.Name, "tools", len(gocalc.ToolSpecs()))
			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the JSON tool API over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Usage: "Port to listen on (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}
			if c.IsSet("port") {
				cfg.Server.Port = c.Int("port")
			}
			logger := newLogger(c)
			srv := httpapi.NewServer(
				fmt.Sprintf(":%d", cfg.Server.Port),
				time.Duration(cfg.Server.ReadTimeoutSec)*time.Second,
				time.Duration(cfg.Server.WriteTimeoutSec)*time.Second,
				logger,
			)

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			fmt.Fprintf(c.App.ErrWriter, "gocalc %s listening on %s\n", version.Info(), srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
