package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go-playtune/config"
	"go-playtune/debug"
	"go-playtune/notation"
)

func init() {
	Register(config.OutputBeep, "external beep(1) tone generator", NewBeep)
}

// BeepOutput performs a tune by invoking the beep(1) executable, which
// drives the PC speaker with millisecond timing of its own. The whole
// tune is translated into as few invocations as the kernel's argument
// size limit allows, so the gaps between notes stay inaudible.
type BeepOutput struct {
	path     string
	maxBytes int
	print    bool
	echo     io.Writer
}

// NewBeep builds the beep backend from cfg, filling in defaults for
// anything unset.
func NewBeep(cfg *config.Config) (Output, error) {
	path := cfg.Beep.Path
	if path == "" {
		path = config.DefaultBeepPath
	}
	maxBytes := cfg.Beep.MaxArgBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxArgBytes
	}
	return &BeepOutput{path: path, maxBytes: maxBytes, print: cfg.Beep.Print, echo: os.Stdout}, nil
}

// Render runs one beep invocation per batch, in order. Cancelling ctx
// interrupts the running invocation with SIGINT, which beep catches to
// silence the speaker before exiting.
func (o *BeepOutput) Render(ctx context.Context, events []notation.Event) error {
	batches := batchArgs(beepGroups(events), o.maxBytes)
	debug.Log("beep", "%d events -> %d invocations of %s", len(events), len(batches), o.path)

	for _, args := range batches {
		if o.print {
			fmt.Fprintln(o.echo, commandLine(o.path, args))
		}
		if err := o.run(ctx, args); err != nil {
			return err
		}
	}
	return nil
}

func (o *BeepOutput) run(ctx context.Context, args []string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, o.path, args...)
	cmd.Stderr = &stderr
	// SIGINT instead of SIGKILL: beep resets the speaker on its way out
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return &ResourceError{Op: "run " + o.path, Err: err}
	}
	return nil
}

// Preview prints the command lines Render would execute.
func (o *BeepOutput) Preview(w io.Writer, events []notation.Event) error {
	for _, args := range batchArgs(beepGroups(events), o.maxBytes) {
		if _, err := fmt.Fprintln(w, commandLine(o.path, args)); err != nil {
			return err
		}
	}
	return nil
}

// WritesStdout reports whether Render echoes command lines there.
func (o *BeepOutput) WritesStdout() bool {
	return o.print
}

func (o *BeepOutput) Close() error {
	return nil
}

// beepGroups translates events into beep argument groups, one per
// audible note. A rest right after a note rides along as that note's
// "-D" delay; any other rest becomes an inaudible zero-length note
// carrying only a delay.
func beepGroups(events []notation.Event) [][]string {
	var groups [][]string
	open := -1 // index of a trailing note group still missing its delay
	for _, e := range events {
		switch e.Kind {
		case notation.KindNote:
			groups = append(groups, []string{"-f", formatNum(e.Frequency), "-l", formatNum(e.Duration)})
			open = len(groups) - 1
		case notation.KindRest:
			if open >= 0 {
				groups[open] = append(groups[open], "-D", formatNum(e.Duration))
				open = -1
			} else {
				groups = append(groups, []string{"-f", "1", "-l", "0", "-D", formatNum(e.Duration)})
			}
		}
	}
	return groups
}

// batchArgs packs groups into invocations, joining neighbours with
// "-n" and keeping each invocation's argument bytes under maxBytes.
// Groups are never split; a single oversized group still goes out
// alone rather than not at all.
func batchArgs(groups [][]string, maxBytes int) [][]string {
	var batches [][]string
	var cur []string
	curBytes := 0

	for _, g := range groups {
		need := argBytes(g)
		if len(cur) > 0 {
			joined := curBytes + len("-n") + 1 + need
			if joined > maxBytes {
				batches = append(batches, cur)
				cur, curBytes = nil, 0
			} else {
				cur = append(cur, "-n")
				curBytes += len("-n") + 1
			}
		}
		cur = append(cur, g...)
		curBytes += need
	}
	if len(cur) > 0 {
		batches = append(batches, cur)
	}
	return batches
}

// argBytes counts the exec argument space a group occupies, one NUL
// terminator per argument, the way the kernel does.
func argBytes(args []string) int {
	n := 0
	for _, a := range args {
		n += len(a) + 1
	}
	return n
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func commandLine(path string, args []string) string {
	return path + " " + strings.Join(args, " ")
}
