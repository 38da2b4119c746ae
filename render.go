package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"go-playtune/config"
	"go-playtune/debug"
	"go-playtune/notation"
	"go-playtune/output"
	"go-playtune/theme"
	"go-playtune/tui"
)

// renderSession plays the combined events through the configured
// backend, with the full-screen view when stdout is a terminal. With
// noRun the backend shows what it would do instead, if it can.
func renderSession(cfg *config.Config, title string, events []notation.Event, noRun bool) error {
	out, err := output.New(cfg.Output, cfg)
	if err != nil {
		return err
	}
	defer out.Close()

	if noRun {
		pv, ok := out.(output.Previewer)
		if !ok {
			return fmt.Errorf("output %s cannot preview, try beep or dummy", cfg.Output)
		}
		return pv.Preview(os.Stdout, events)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var renderErr error
	if plainRender(cfg, out, isatty.IsTerminal(os.Stdout.Fd())) {
		renderErr = out.Render(ctx, events)
	} else {
		renderErr = renderWithUI(ctx, cfg, title, out, events)
	}

	// A stopped tune is not a failure.
	if errors.Is(renderErr, context.Canceled) {
		debug.Log("play", "interrupted")
		return nil
	}
	return renderErr
}

// plainRender decides whether to skip the full-screen view: when asked
// to, when stdout is not a terminal, or when the backend itself streams
// to stdout (pcm without a file, dummy, beep with -print) and the view
// would trample its output.
func plainRender(cfg *config.Config, out output.Output, tty bool) bool {
	if cfg.UI.Plain || !tty {
		return true
	}
	sw, ok := out.(output.StdoutWriter)
	return ok && sw.WritesStdout()
}

// renderWithUI runs the backend in a goroutine and the player view in
// the foreground. The view owns cancellation; the done channel hands
// the render result back through the final model.
func renderWithUI(ctx context.Context, cfg *config.Config, title string, out output.Output, events []notation.Event) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- out.Render(ctx, events)
	}()

	m := tui.NewModel(title, events, theme.New(loadPalette(cfg)), cancel, done)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return err
	}
	return final.(tui.Model).Err()
}

// loadPalette returns the configured palette, falling back to the
// built-in one.
func loadPalette(cfg *config.Config) *theme.Palette {
	if cfg.UI.Palette == "" {
		return theme.Default()
	}
	p, err := theme.LoadGPL(cfg.UI.Palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "go-playtune: palette %s: %v, using built-in\n", cfg.UI.Palette, err)
		return theme.Default()
	}
	return p
}
