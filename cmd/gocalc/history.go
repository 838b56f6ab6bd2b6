package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/njchilds90/gocalc/internal/config"
	"github.com/njchilds90/gocalc/internal/history"
	"github.com/njchilds90/gocalc/internal/storage"
)

func openHistory(cfg *config.Config, logger *slog.Logger) (*storage.Store, *history.History, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve storage path: %w", err)
	}
	store, err := storage.Open(path, logger)
	if err != nil {
		return nil, nil, err
	}
	h := history.New(store, cfg.History.Limit)
	if err := h.Load(); err != nil {
		return nil, nil, err
	}
	return store, h, nil
}

func historyCommand() *cli.Command {
	withHistory := func(fn func(c *cli.Context, h *history.History) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}
			_, h, err := openHistory(cfg, newLogger(c))
			if err != nil {
				return err
			}
			return fn(c, h)
		}
	}

	return &cli.Command{
		Name:    "history",
		Aliases: []string{"h"},
		Usage:   "Show, export, import or clear the calculation history",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List calculations, newest first",
				Flags:  []cli.Flag{jsonFlag()},
				Action: withHistory(listHistory),
			},
			{
				Name:      "export",
				Usage:     "Write the history as a JSON export file (stdout when no file is given)",
				ArgsUsage: "[file]",
				Action: withHistory(func(c *cli.Context, h *history.History) error {
					if c.NArg() == 0 {
						return h.Export(c.App.Writer)
					}
					f, err := os.Create(c.Args().First())
					if err != nil {
						return err
					}
					if err := h.Export(f); err != nil {
						_ = f.Close()
						return err
					}
					return f.Close()
				}),
			},
			{
				Name:      "import",
				Usage:     "Replace the history with an export file",
				ArgsUsage: "<file>",
				Action: withHistory(func(c *cli.Context, h *history.History) error {
					f, err := os.Open(c.Args().First())
					if err != nil {
						return err
					}
					defer f.Close()
					n, err := h.Import(f)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "imported %d entries\n", n)
					return nil
				}),
			},
			{
				Name:      "merge",
				Usage:     "Merge every export file matching a glob, e.g. \"backups/**/*.json\"",
				ArgsUsage: "<pattern>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "root", Value: ".", Usage: "Directory the pattern is relative to"},
				},
				Action: withHistory(func(c *cli.Context, h *history.History) error {
					n, err := h.ImportGlob(c.String("root"), c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "merged %d new entries\n", n)
					return nil
				}),
			},
			{
				Name:  "clear",
				Usage: "Delete all history entries",
				Action: withHistory(func(c *cli.Context, h *history.History) error {
					return h.Clear()
				}),
			},
		},
		Action: withHistory(listHistory),
	}
}

func listHistory(c *cli.Context, h *history.History) error {
	entries := h.Entries()
	if c.Bool("json") {
		return printJSON(c, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.App.Writer, "no history")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(c.App.Writer, "%-22s %s = %s\n", e.Timestamp, e.Expression, e.Result)
	}
	return nil
}
