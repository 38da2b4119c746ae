package output

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-playtune/config"
	"go-playtune/debug"
	"go-playtune/notation"
)

func init() {
	Register(config.OutputMIDI, "MIDI synth port", NewMIDI)
}

// MIDIOutput performs the tune on a synth, one NoteOn/NoteOff pair per
// note. Every pitch the letter grammar can produce lands on a MIDI
// key exactly, so nothing is lost in the mapping.
type MIDIOutput struct {
	port    drivers.Out
	send    func(msg gomidi.Message) error
	channel uint8
}

// NewMIDI connects to the configured synth port, or the first port
// when none is named. Matching is a case-insensitive substring, the
// way ALSA client names drift between sessions.
func NewMIDI(cfg *config.Config) (Output, error) {
	port, err := findOutPort(cfg.MIDI.PortName)
	if err != nil {
		return nil, &ResourceError{Op: "open midi port", Err: err}
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, &ResourceError{Op: "open midi port", Err: err}
	}
	debug.Log("midi", "sending to %s on channel %d", port.String(), cfg.MIDI.Channel)

	return &MIDIOutput{port: port, send: send, channel: cfg.MIDI.Channel}, nil
}

// Render holds each key down for the note's duration. NoteOff goes out
// even when the wait is cancelled so no key is left hanging.
func (o *MIDIOutput) Render(ctx context.Context, events []notation.Event) error {
	for _, e := range events {
		key, ok := midiKey(e.Frequency)
		if e.Kind != notation.KindNote || !ok {
			if err := sleep(ctx, e.Wait()); err != nil {
				return err
			}
			continue
		}

		if err := o.send(gomidi.NoteOn(o.channel, key, 100)); err != nil {
			return &ResourceError{Op: "send note on", Err: err}
		}
		waitErr := sleep(ctx, e.Wait())
		if err := o.send(gomidi.NoteOff(o.channel, key)); err != nil && waitErr == nil {
			return &ResourceError{Op: "send note off", Err: err}
		}
		if waitErr != nil {
			return waitErr
		}
	}
	return nil
}

func (o *MIDIOutput) Close() error {
	err := o.port.Close()
	gomidi.CloseDriver()
	return err
}

// midiKey maps a frequency to the nearest equal-tempered key, with
// A440 on key 69. ok is false outside the 0-127 keyboard.
func midiKey(freq float64) (uint8, bool) {
	if freq <= 0 {
		return 0, false
	}
	key := int(math.Round(69 + 12*math.Log2(freq/440)))
	if key < 0 || key > 127 {
		return 0, false
	}
	return uint8(key), true
}

// findOutPort scans the available output ports with a timeout; some
// backends hang the scan when their daemon is wedged.
func findOutPort(name string) (drivers.Out, error) {
	outs, err := scanOutPorts()
	if err != nil {
		return nil, err
	}
	if len(outs) == 0 {
		return nil, fmt.Errorf("no MIDI output ports available")
	}
	if name == "" {
		return outs[0], nil
	}

	want := strings.ToLower(name)
	for _, out := range outs {
		if strings.Contains(strings.ToLower(out.String()), want) {
			return out, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output port matching %q", name)
}

func scanOutPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(3 * time.Second):
		return nil, fmt.Errorf("MIDI port scan timed out")
	}
}

// ListMIDIPorts returns the names of the reachable output ports.
func ListMIDIPorts() ([]string, error) {
	outs, err := scanOutPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names, nil
}
