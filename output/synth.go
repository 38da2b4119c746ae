package output

import (
	"encoding/binary"
	"io"
	"math"
)

const (
	// Quarter of full scale keeps the square wave loud but clip-free
	// even if a sink applies gain.
	synthAmplitude = 1 << 12

	// samples per write; long notes stream instead of ballooning memory
	synthChunk = 1 << 15
)

// synth renders tones as signed 16-bit little-endian mono samples.
type synth struct {
	rate int
	buf  []byte
}

func newSynth(rate int) *synth {
	return &synth{rate: rate, buf: make([]byte, 2*synthChunk)}
}

// noteSamples rounds up so even the shortest staccato blip produces
// at least one sample.
func (s *synth) noteSamples(ms float64) int {
	return int(math.Ceil(float64(s.rate) * ms / 1000.0))
}

// restSamples rounds down, balancing noteSamples so a tune's sample
// count tracks its nominal length.
func (s *synth) restSamples(ms float64) int {
	return int(float64(s.rate) * ms / 1000.0)
}

// writeTone streams n samples of a square wave at freq Hz to w. The
// wave takes its sign from the matching sine so the period is exact
// regardless of how freq divides the sample rate.
func (s *synth) writeTone(w io.Writer, freq float64, n int) error {
	step := 2 * math.Pi * freq / float64(s.rate)
	for off := 0; off < n; off += synthChunk {
		m := n - off
		if m > synthChunk {
			m = synthChunk
		}
		for i := 0; i < m; i++ {
			sample := int16(synthAmplitude)
			if math.Sin(step*float64(off+i)) < 0 {
				sample = -synthAmplitude
			}
			binary.LittleEndian.PutUint16(s.buf[2*i:], uint16(sample))
		}
		if _, err := w.Write(s.buf[:2*m]); err != nil {
			return err
		}
	}
	return nil
}

// writeSilence streams n zero samples to w.
func (s *synth) writeSilence(w io.Writer, n int) error {
	for i := range s.buf {
		s.buf[i] = 0
	}
	for off := 0; off < n; off += synthChunk {
		m := n - off
		if m > synthChunk {
			m = synthChunk
		}
		if _, err := w.Write(s.buf[:2*m]); err != nil {
			return err
		}
	}
	return nil
}
