// Package ui provides the top-level entry points that put a bound
// store on a rendering target.
//
// Example usage:
//
//	st := store.New(store.Initial())
//	h := connect.New(st, layerview.Page(""))
//	defer h.Close()
//	if err := ui.Run(ctx, h, ui.Options{}); err != nil {
//		log.Fatal(err)
//	}
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/elizafairlady/layers/ui/connect"
	"github.com/elizafairlady/layers/ui/term"
	"github.com/elizafairlady/layers/ui/theme"
)

// Options configures the runners.
type Options struct {
	Theme *theme.Theme
	Log   logrus.FieldLogger

	// Input and Output override the terminal for Run.
	Input  io.Reader
	Output io.Writer
}

func (o Options) withDefaults() Options {
	if o.Theme == nil {
		o.Theme = theme.Default()
	}
	if o.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Log = l
	}
	return o
}

// Run shows h in the terminal and blocks until the user quits or ctx
// is done.
func Run(ctx context.Context, h *connect.Host, opts Options) error {
	opts = opts.withDefaults()
	m := term.NewModel(h, term.NewRenderer(opts.Theme), opts.Log)

	popts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}

	opts.Log.Info("terminal started")
	_, err := tea.NewProgram(m, popts...).Run()
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("ui: terminal: %w", err)
	}
	opts.Log.Info("terminal stopped")
	return nil
}
