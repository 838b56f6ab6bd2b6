// Command gocalc is the calculator's command line: one-shot evaluation and
// equation solving, an interactive REPL, history management and the MCP and
// HTTP tool servers.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/njchilds90/gocalc"
	"github.com/njchilds90/gocalc/internal/config"
	"github.com/njchilds90/gocalc/internal/version"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %q: %w", configPath, err)
	}
	if c.IsSet("angle") {
		cfg.AngleMode = c.String("angle")
	}
	if c.IsSet("precision") {
		cfg.Precision = c.Int("precision")
	}
	if c.IsSet("storage") {
		cfg.History.Path = c.String("storage")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func evaluatorFor(cfg *config.Config) *gocalc.Evaluator {
	return gocalc.NewEvaluator(gocalc.Options{
		Angle:     gocalc.AngleMode(cfg.AngleMode),
		Precision: gocalc.Places(cfg.Precision),
	})
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "gocalc",
		Usage:                  "Scientific calculator with complex numbers and equation solving",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.kdl or .toml); default looks for .gocalc.kdl then .gocalc.toml",
			},
			&cli.StringFlag{
				Name:    "angle",
				Aliases: []string{"a"},
				Usage:   "Angle mode for trig functions: rad or deg (overrides config)",
			},
			&cli.IntFlag{
				Name:    "precision",
				Aliases: []string{"p"},
				Usage:   "Decimal places shown in results (overrides config)",
			},
			&cli.StringFlag{
				Name:  "storage",
				Usage: "History storage file (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Debug logging to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			gocalc.SetLogger(newLogger(c))
			return nil
		},
		Commands: []*cli.Command{
			evalCommand(),
			solveCommand(),
			rewriteCommand(),
			parseCommand(),
			convertCommand(),
			replCommand(),
			historyCommand(),
			mcpCommand(),
			serveCommand(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return evalAction(c)
			}
			return replAction(c)
		},
	}
}

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintln(c.App.Writer, version.FullInfo())
	}
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gocalc:", err)
		os.Exit(1)
	}
}
