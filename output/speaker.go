//go:build !headless

package output

import (
	"bytes"
	"context"
	"time"

	"github.com/ebitengine/oto/v3"

	"go-playtune/config"
	"go-playtune/debug"
	"go-playtune/notation"
)

func init() {
	Register(config.OutputSpeaker, "local sound card", NewSpeaker)
}

// SpeakerOutput synthesizes the tune and plays it on the default sound
// device.
type SpeakerOutput struct {
	ctx  *oto.Context
	rate int
}

// NewSpeaker brings up the audio context and waits until the device is
// ready to accept samples.
func NewSpeaker(cfg *config.Config) (Output, error) {
	rate := cfg.Speaker.SampleRate
	if rate <= 0 {
		rate = config.DefaultSampleRate
	}

	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, &ResourceError{Op: "open sound device", Err: err}
	}
	<-ready

	return &SpeakerOutput{ctx: ctx, rate: rate}, nil
}

// Render synthesizes the whole tune up front and streams it to the
// device, polling until the player drains or ctx is cancelled.
func (o *SpeakerOutput) Render(ctx context.Context, events []notation.Event) error {
	var pcm bytes.Buffer
	sy := newSynth(o.rate)
	for _, e := range events {
		var err error
		switch e.Kind {
		case notation.KindNote:
			err = sy.writeTone(&pcm, e.Frequency, sy.noteSamples(e.Duration))
		default:
			err = sy.writeSilence(&pcm, sy.restSamples(e.Duration))
		}
		if err != nil {
			return err
		}
	}
	debug.Log("speaker", "playing %d bytes at %d Hz", pcm.Len(), o.rate)

	p := o.ctx.NewPlayer(&pcm)
	defer p.Close()
	p.Play()

	for p.IsPlaying() {
		debug.LogEvery(100, "speaker", "buffered %d bytes", p.BufferedSize())
		if err := sleep(ctx, 10*time.Millisecond); err != nil {
			return err
		}
	}
	if err := p.Err(); err != nil {
		return &ResourceError{Op: "play samples", Err: err}
	}
	return nil
}

// Close is a no-op; the audio context stays alive until the process
// exits, which is how the underlying library wants it.
func (o *SpeakerOutput) Close() error {
	return nil
}
