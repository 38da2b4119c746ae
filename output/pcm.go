package output

import (
	"context"
	"io"
	"os"

	"go-playtune/config"
	"go-playtune/debug"
	"go-playtune/notation"
)

func init() {
	Register(config.OutputPCM, "raw signed 16-bit little-endian mono samples", NewPCM)
}

// PCMOutput synthesizes the tune into a stream of raw samples, ready
// for a sound tool ("play -t raw -r 48000 -e signed -b 16 -c 1 -") or
// a file. Timing lives in the sample count, so it never sleeps; when
// the sink is a throttled pipe, backpressure paces playback.
type PCMOutput struct {
	sink   io.Writer
	closer io.Closer // nil when writing to stdout
	sy     *synth
}

// NewPCM opens the configured sample sink, stdout by default.
func NewPCM(cfg *config.Config) (Output, error) {
	rate := cfg.PCM.SampleRate
	if rate <= 0 {
		rate = config.DefaultSampleRate
	}

	out := &PCMOutput{sink: os.Stdout, sy: newSynth(rate)}
	if path := cfg.PCM.Path; path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, &ResourceError{Op: "create " + path, Err: err}
		}
		out.sink = f
		out.closer = f
	}
	return out, nil
}

// Render writes every event's samples in order. Notes round their
// sample count up and rests round down, so the stream length stays
// within one sample of the tune's nominal duration.
func (o *PCMOutput) Render(ctx context.Context, events []notation.Event) error {
	debug.Log("pcm", "rendering %d events at %d Hz", len(events), o.sy.rate)

	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch e.Kind {
		case notation.KindNote:
			err = o.sy.writeTone(o.sink, e.Frequency, o.sy.noteSamples(e.Duration))
		default:
			err = o.sy.writeSilence(o.sink, o.sy.restSamples(e.Duration))
		}
		if err != nil {
			return &ResourceError{Op: "write samples", Err: err}
		}
	}
	return nil
}

// WritesStdout reports whether the samples go to standard output
// rather than a file.
func (o *PCMOutput) WritesStdout() bool {
	return o.closer == nil
}

func (o *PCMOutput) Close() error {
	if o.closer != nil {
		return o.closer.Close()
	}
	return nil
}
