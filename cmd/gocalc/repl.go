package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"github.com/njchilds90/gocalc"
	"github.com/njchilds90/gocalc/internal/history"
	"github.com/njchilds90/gocalc/internal/session"
)

const replHelp = `Enter an expression (2(3+4), sqrt(-1), 5!, 30°) or an equation in x (x^2-5x+6=0).
Commands:
  :rad :deg          set angle mode
  :theme light|dark  set theme
  :ms :m+ :m- :mr :mc  memory store, add, subtract, recall, clear
  :ans               insert the previous answer into the next line
  :history           show history
  :clear-history     delete history
  :help              this text
  :quit              exit`

func replCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Interactive calculator",
		Action: replAction,
	}
}

type repl struct {
	out    io.Writer
	store  interface{ Set(key, value string) error }
	hist   *history.History
	mu     sync.Mutex
	state  session.State
	prefix string
}

func replAction(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	logger := newLogger(c)
	store, hist, err := openHistory(cfg, logger)
	if err != nil {
		return err
	}

	angle := gocalc.AngleMode(cfg.AngleMode)
	if saved, ok := store.Get(history.KeyAngleMode); ok && !c.IsSet("angle") {
		if m, err := gocalc.ParseAngleMode(saved); err == nil {
			angle = m
		}
	}

	rl, err := readline.New(prompt(angle))
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	r := &repl{out: rl.Stdout(), store: store, hist: hist, state: session.New(angle, cfg.Precision)}

	ctx, cancel := context.WithCancel(c.Context)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := store.Watch(ctx, 200*time.Millisecond, func() {
			if err := hist.Load(); err != nil {
				logger.Warn("reload history", "err", err)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("watch storage", "err", err)
		}
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	fmt.Fprintf(r.out, "gocalc %s (%s mode), :help for commands\n", c.App.Version, angle)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return nil
		}
		quit := r.handle(strings.TrimSpace(line))
		rl.SetPrompt(prompt(r.state.Angle))
		if quit {
			return nil
		}
	}
}

func prompt(angle gocalc.AngleMode) string { return fmt.Sprintf("[%s] > ", angle) }

// handle runs one line and reports whether the REPL should exit.
func (r *repl) handle(line string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ":") {
		return r.command(line)
	}

	s := r.state.Clear()
	if r.prefix != "" {
		s = s.Insert(r.prefix)
		r.prefix = ""
	}
	next, out := s.Insert(line).Calculate(r.hist)
	r.state = next
	if out.Err != nil && out.Display == session.Error {
		fmt.Fprintf(r.out, "%s: %v\n", session.Error, out.Err)
		return false
	}
	if out.Err != nil {
		fmt.Fprintf(r.out, "warning: %v\n", out.Err)
	}
	fmt.Fprintln(r.out, out.Display)
	return false
}

func (r *repl) command(line string) bool {
	fields := strings.Fields(line)
	var err error
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(r.out, replHelp)
	case ":rad", ":deg":
		r.state.Angle = gocalc.AngleMode(strings.TrimPrefix(fields[0], ":"))
		err = r.store.Set(history.KeyAngleMode, string(r.state.Angle))
	case ":theme":
		if len(fields) != 2 || (fields[1] != "light" && fields[1] != "dark") {
			fmt.Fprintln(r.out, "usage: :theme light|dark")
			return false
		}
		err = r.store.Set(history.KeyTheme, fields[1])
	case ":ms":
		r.state, err = r.state.MemoryStore()
	case ":m+":
		r.state, err = r.state.MemoryAdd()
	case ":m-":
		r.state, err = r.state.MemorySubtract()
	case ":mc":
		r.state = r.state.MemoryClear()
	case ":mr":
		fmt.Fprintln(r.out, gocalc.FormatNumber(r.state.Memory))
	case ":ans":
		r.prefix = r.state.Clear().InsertAnswer().Expression
		fmt.Fprintf(r.out, "next line starts with %s\n", r.prefix)
	case ":history":
		for _, e := range r.hist.Entries() {
			fmt.Fprintf(r.out, "%s = %s\n", e.Expression, e.Result)
		}
	case ":clear-history":
		err = r.hist.Clear()
	default:
		fmt.Fprintf(r.out, "unknown command %s, try :help\n", fields[0])
	}
	if err != nil {
		fmt.Fprintf(r.out, "%s: %v\n", session.Error, err)
	}
	return false
}
