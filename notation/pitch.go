package notation

import "math"

// Chromatic positions of the note letters within one octave, on the
// classic PLAY scale where C sits at the bottom and B at the top.
var scaleOffsets = map[byte]int{
	'c': 1,
	'd': 3,
	'e': 5,
	'f': 6,
	'g': 8,
	'a': 10,
	'b': 12,
}

// A4 anchors the tuning: octave 4, offset 10, exactly 440 Hz.
const (
	refFrequency = 440.0
	refIndex     = 12*4 + 10
)

// Frequency returns the equal-tempered frequency of a note letter
// ('a'-'g', lowercase) in an octave, shifted by accidental semitones
// (+1 for sharp, -1 for flat).
func Frequency(letter byte, octave, accidental int) float64 {
	index := 12*octave + scaleOffsets[letter] + accidental
	return refFrequency * math.Pow(2, float64(index-refIndex)/12.0)
}
