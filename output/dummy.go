package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"go-playtune/config"
	"go-playtune/notation"
)

func init() {
	Register(config.OutputDummy, "print events instead of playing them", NewDummy)
}

// DummyOutput prints each event and keeps real time, standing in for
// hardware when trying out tunes or interrupt handling.
type DummyOutput struct {
	w io.Writer
}

func NewDummy(cfg *config.Config) (Output, error) {
	return &DummyOutput{w: os.Stdout}, nil
}

func (o *DummyOutput) Render(ctx context.Context, events []notation.Event) error {
	for _, e := range events {
		fmt.Fprintln(o.w, eventString(e))
		if err := sleep(ctx, e.Wait()); err != nil {
			return err
		}
	}
	return nil
}

// Preview prints the trace without the waiting.
func (o *DummyOutput) Preview(w io.Writer, events []notation.Event) error {
	for _, e := range events {
		if _, err := fmt.Fprintln(w, eventString(e)); err != nil {
			return err
		}
	}
	return nil
}

// WritesStdout reports whether the trace goes to standard output.
func (o *DummyOutput) WritesStdout() bool {
	return o.w == os.Stdout
}

func (o *DummyOutput) Close() error {
	return nil
}

func eventString(e notation.Event) string {
	if e.Kind == notation.KindNote {
		return fmt.Sprintf("note %.3f Hz %.3f ms", e.Frequency, e.Duration)
	}
	return fmt.Sprintf("rest %.3f ms", e.Duration)
}
