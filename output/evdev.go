package output

import (
	"context"
	"io"
	"math"
	"time"

	"go-playtune/config"
	"go-playtune/debug"
	"go-playtune/notation"
)

func init() {
	Register(config.OutputEvdev, "kernel PC-speaker event device", NewEvdev)
}

// EvdevOutput drives the PC speaker directly by injecting SND_TONE
// frames into a kernel input device. A frame starts a tone, a frame
// with value zero stops it; the timing in between is ours.
type EvdevOutput struct {
	dev    io.WriteCloser
	name   string
	layout FrameLayout
	buf    []byte
}

// NewEvdev opens the configured tone device for writing.
func NewEvdev(cfg *config.Config) (Output, error) {
	layout, err := ParseLayout(cfg.Device.Layout)
	if err != nil {
		return nil, err
	}
	path := cfg.Device.Path
	if path == "" {
		path = config.DefaultDevicePath
	}

	dev, name, err := openToneDevice(path)
	if err != nil {
		return nil, &ResourceError{Op: "open " + path, Err: err}
	}
	debug.Log("evdev", "opened %s (%s), %d-byte frames", path, name, layout.Size())

	return &EvdevOutput{dev: dev, name: name, layout: layout, buf: make([]byte, layout.Size())}, nil
}

// Render starts and stops one tone per note, sleeping the note's
// duration in between. Rests only sleep; the speaker is already
// silent after every note.
func (o *EvdevOutput) Render(ctx context.Context, events []notation.Event) error {
	for _, e := range events {
		switch e.Kind {
		case notation.KindNote:
			if err := o.tone(ctx, int32(math.Round(e.Frequency)), e.Wait()); err != nil {
				return err
			}
		default:
			if err := sleep(ctx, e.Wait()); err != nil {
				return err
			}
		}
	}
	return nil
}

// tone sounds hz for d. The stop frame goes out even when the wait is
// cancelled; a tone left running would whine until something else
// claimed the speaker.
func (o *EvdevOutput) tone(ctx context.Context, hz int32, d time.Duration) error {
	if err := o.write(hz); err != nil {
		return err
	}
	waitErr := sleep(ctx, d)
	if err := o.write(0); err != nil && waitErr == nil {
		return err
	}
	return waitErr
}

func (o *EvdevOutput) write(hz int32) error {
	o.layout.EncodeTone(o.buf, hz)
	if _, err := o.dev.Write(o.buf); err != nil {
		return &ResourceError{Op: "write tone frame", Err: err}
	}
	return nil
}

func (o *EvdevOutput) Close() error {
	return o.dev.Close()
}
