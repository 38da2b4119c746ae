package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyAnchor(t *testing.T) {
	// A above middle C is the 440Hz reference, by definition.
	assert.Equal(t, 440.0, Frequency('a', 4, 0))
}

func TestFrequencyDoublesPerOctave(t *testing.T) {
	for octave := 0; octave <= 7; octave++ {
		for _, letter := range []byte{'a', 'b', 'c', 'd', 'e', 'f', 'g'} {
			low := Frequency(letter, octave, 0)
			high := Frequency(letter, octave+1, 0)
			assert.InEpsilon(t, 2.0, high/low, 1e-12, "letter %c octave %d", letter, octave)
		}
	}

	// The A column lands on exact powers of two times the reference.
	assert.Equal(t, 27.5, Frequency('a', 0, 0))
	assert.Equal(t, 220.0, Frequency('a', 3, 0))
	assert.Equal(t, 880.0, Frequency('a', 5, 0))
	assert.Equal(t, 7040.0, Frequency('a', 8, 0))
}

func TestScaleSteps(t *testing.T) {
	// C major is whole-whole-half-whole-whole-whole-half. The offset
	// table encodes that directly.
	steps := []struct {
		from, to byte
		semis    int
	}{
		{'c', 'd', 2},
		{'d', 'e', 2},
		{'e', 'f', 1},
		{'f', 'g', 2},
		{'g', 'a', 2},
		{'a', 'b', 2},
	}

	for _, s := range steps {
		assert.Equal(t, s.semis, scaleOffsets[s.to]-scaleOffsets[s.from], "%c to %c", s.from, s.to)
	}
	assert.Equal(t, 12, scaleOffsets['b']-scaleOffsets['c']+1) // full octave span
}

func TestAccidentalIsOneSemitone(t *testing.T) {
	assert.Equal(t, Frequency('c', 4, 1), Frequency('d', 4, -1))
	assert.InEpsilon(t, 1.0594630943592953, Frequency('f', 4, 1)/Frequency('f', 4, 0), 1e-12)
}
