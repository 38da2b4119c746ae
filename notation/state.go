package notation

import (
	"math"
	"time"
)

// Articulation selects how much of a note's nominal duration is
// actually sounded; the remainder becomes an implicit rest.
type Articulation uint8

const (
	Normal   Articulation = iota // MN: 7/8 sounded
	Legato                       // ML: full duration sounded
	Staccato                     // MS: 3/4 sounded
)

// Sounded returns the sounded fraction of the nominal duration.
func (a Articulation) Sounded() float64 {
	switch a {
	case Legato:
		return 1.0
	case Staccato:
		return 3.0 / 4.0
	default:
		return 7.0 / 8.0
	}
}

// State carries the performance settings a tune mutates left to right.
// Every independent parse starts from a fresh State; nothing leaks
// between inputs.
type State struct {
	Octave        int // 0-8
	Tempo         int // beats per minute, positive
	DefaultLength int // note length denominator when a note gives none
	Volume        int // parsed and stored, never consulted by rendering
	Articulation  Articulation
}

// NewState returns the classic PLAY defaults.
func NewState() *State {
	return &State{
		Octave:        4,
		Tempo:         120,
		DefaultLength: 4,
	}
}

// maxNoteMs caps a single duration at what time.Duration can hold.
// Each dot stretches the running duration by half again, so enough of
// them would wrap Event.Wait negative and the wait would vanish.
const maxNoteMs = float64(math.MaxInt64 / int64(time.Millisecond))

// noteMs computes the nominal duration in milliseconds of one note or
// rest: a whole note spans four beats, and every trailing dot stretches
// the running duration by half again, saturating at maxNoteMs.
func (s *State) noteMs(length, dots int) float64 {
	ms := 240000.0 / float64(s.Tempo) / float64(length)
	for i := 0; i < dots; i++ {
		ms *= 1.5
		if ms > maxNoteMs {
			return maxNoteMs
		}
	}
	return ms
}

// validLength reports whether a length denominator is one of the
// supported fractional note lengths.
func validLength(v int) bool {
	switch v {
	case 1, 2, 4, 8, 16, 32, 64:
		return true
	}
	return false
}
