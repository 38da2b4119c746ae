package notation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretDefaults(t *testing.T) {
	// One note with everything defaulted: octave 4, tempo 120, quarter
	// note, normal articulation (7/8 sounded).
	events, err := Interpret("c")
	require.NoError(t, err)
	require.Len(t, events, 2)

	note, gap := events[0], events[1]
	assert.Equal(t, KindNote, note.Kind)
	assert.InDelta(t, 261.6255653005986, note.Frequency, 1e-9) // middle C
	assert.Equal(t, 437.5, note.Duration)                      // 500ms * 7/8
	assert.Equal(t, KindRest, gap.Kind)
	assert.Equal(t, 62.5, gap.Duration)
}

func TestTempoDurations(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		nominalMs float64
	}{
		{"quarter at 120", "ml t120 l4 c", 500},
		{"quarter at 60", "ml t60 l4 c", 1000},
		{"eighth at 120", "ml t120 l8 c", 250},
		{"whole at 240", "ml t240 l1 c", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Interpret(tt.input)
			require.NoError(t, err)
			require.Len(t, events, 1) // legato: no trailing gap
			assert.Equal(t, tt.nominalMs, events[0].Duration)
		})
	}
}

func TestDotsCompound(t *testing.T) {
	// Each dot multiplies the running duration by 1.5.
	tests := []struct {
		input string
		ms    float64
	}{
		{"ml c", 500},
		{"ml c.", 750},
		{"ml c..", 1125},
		{"ml c...", 1687.5},
	}

	for _, tt := range tests {
		events, err := Interpret(tt.input)
		require.NoError(t, err, tt.input)
		require.Len(t, events, 1, tt.input)
		assert.Equal(t, tt.ms, events[0].Duration, tt.input)
	}
}

func TestExtremeDotsSaturate(t *testing.T) {
	// Enough dots on a slow whole note would push the duration past
	// what time.Duration can hold; it pins at the ceiling instead of
	// wrapping the wait negative.
	events, err := Interpret("t1 ml l1 c" + strings.Repeat(".", 80))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, maxNoteMs, events[0].Duration)
	assert.Positive(t, events[0].Wait())
}

func TestExplicitNoteLength(t *testing.T) {
	// An explicit denominator overrides the default length for that
	// note only.
	events, err := Interpret("t120 c8")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 218.75, events[0].Duration) // 250ms * 7/8
	assert.Equal(t, 31.25, events[1].Duration)

	// c8 must behave exactly like l8 c.
	viaDefault, err := Interpret("t120 l8 c")
	require.NoError(t, err)
	assert.Equal(t, viaDefault, events)

	// The default is untouched afterwards.
	events, err = Interpret("t120 ml c8 c")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 250.0, events[0].Duration)
	assert.Equal(t, 500.0, events[1].Duration)
}

func TestArticulationSplits(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		sounded float64
		gap     float64
	}{
		{"normal", "mn t120 c", 437.5, 62.5},
		{"staccato", "ms t120 c", 375, 125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Interpret(tt.input)
			require.NoError(t, err)
			require.Len(t, events, 2)
			assert.Equal(t, tt.sounded, events[0].Duration)
			assert.Equal(t, tt.gap, events[1].Duration)
		})
	}

	// Legato sounds the full duration and emits no gap.
	events, err := Interpret("ml t120 c")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 500.0, events[0].Duration)
}

func TestInertModifiers(t *testing.T) {
	// MF and MB are recognized, change nothing and emit nothing.
	plain, err := Interpret("c d")
	require.NoError(t, err)
	decorated, err := Interpret("mf c mb d")
	require.NoError(t, err)
	assert.Equal(t, plain, decorated)
}

func TestUnknownModifierSequence(t *testing.T) {
	_, err := Interpret("mx")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Msg, "mx")
}

func TestVolumeParsedButInert(t *testing.T) {
	plain, err := Interpret("c")
	require.NoError(t, err)
	loud, err := Interpret("v15 c")
	require.NoError(t, err)
	assert.Equal(t, plain, loud)

	_, err = Interpret("v c")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
}

func TestOctaveCommands(t *testing.T) {
	events, err := Interpret("ml o3 a")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 220.0, events[0].Frequency)

	events, err = Interpret("ml o4 > a")
	require.NoError(t, err)
	assert.Equal(t, 880.0, events[0].Frequency)

	events, err = Interpret("ml < a")
	require.NoError(t, err)
	assert.Equal(t, 220.0, events[0].Frequency)
}

func TestOctaveRangeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value int
	}{
		{"absolute too high", "o9", 9},
		{"shorthand above top", "o8 >", 9},
		{"shorthand below bottom", "o0 <", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Interpret(tt.input)
			var rerr *RangeError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, "octave", rerr.What)
			assert.Equal(t, tt.value, rerr.Value)
			assert.Nil(t, events)
		})
	}

	// The boundaries themselves are valid.
	_, err := Interpret("o0 c o8 c")
	assert.NoError(t, err)
}

func TestLengthAndTempoRangeErrors(t *testing.T) {
	for _, input := range []string{"l0", "l3", "l65", "l128", "c0", "c3", "p0", "p5"} {
		events, err := Interpret(input)
		var rerr *RangeError
		require.ErrorAs(t, err, &rerr, input)
		assert.Equal(t, "length", rerr.What, input)
		assert.Nil(t, events, input)
	}

	events, err := Interpret("t0")
	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "tempo", rerr.What)
	assert.Nil(t, events)

	// Any positive tempo is accepted, even far beyond the classic range.
	_, err = Interpret("t1 ml l1 c")
	assert.NoError(t, err)
	_, err = Interpret("t1000 c")
	assert.NoError(t, err)
}

func TestRestHonorsItsLength(t *testing.T) {
	events, err := Interpret("t120 p4")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, KindRest, events[0].Kind)
	assert.Equal(t, 500.0, events[0].Duration)

	events, err = Interpret("t120 p2.")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, events[0].Duration)

	// The denominator is required.
	_, err = Interpret("p")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Msg, "expected number after 'p'")
}

func TestAbsoluteNoteAlwaysRejected(t *testing.T) {
	for _, input := range []string{"n", "n0", "n42", "n84", "c n12 d"} {
		events, err := Interpret(input)
		var serr *SyntaxError
		require.ErrorAs(t, err, &serr, input)
		assert.Contains(t, serr.Msg, "absolute-note", input)
		assert.Nil(t, events, input)
	}
}

func TestAccidentals(t *testing.T) {
	sharp, err := Interpret("ml c+")
	require.NoError(t, err)
	hash, err := Interpret("ml c#")
	require.NoError(t, err)
	assert.Equal(t, sharp, hash)

	// C sharp and D flat are the same key.
	flat, err := Interpret("ml d-")
	require.NoError(t, err)
	assert.Equal(t, sharp[0].Frequency, flat[0].Frequency)

	// One accidental is one semitone.
	plain, err := Interpret("ml c")
	require.NoError(t, err)
	ratio := sharp[0].Frequency / plain[0].Frequency
	assert.InEpsilon(t, 1.0594630943592953, ratio, 1e-12) // 2^(1/12)
}

func TestCommentsIgnored(t *testing.T) {
	plain, err := Interpret("C")
	require.NoError(t, err)

	commented, err := Interpret(";this is ignored\nC")
	require.NoError(t, err)
	assert.Equal(t, plain, commented)

	// Trailing comment without a final newline.
	commented, err = Interpret("C ;end of tune")
	require.NoError(t, err)
	assert.Equal(t, plain, commented)
}

func TestCaseInsensitive(t *testing.T) {
	upper, err := Interpret("T120 L4 O4 MS C+ P4")
	require.NoError(t, err)
	lowered, err := Interpret("t120 l4 o4 ms c+ p4")
	require.NoError(t, err)
	assert.Equal(t, upper, lowered)
}

func TestScale(t *testing.T) {
	events, err := Interpret("T120 L4 O4 C D E F G A B")
	require.NoError(t, err)
	require.Len(t, events, 14) // 7 notes, each with its articulation gap

	var notes []Event
	for _, e := range events {
		if e.Kind == KindNote {
			notes = append(notes, e)
		}
	}
	require.Len(t, notes, 7)

	for i, n := range notes {
		assert.Equal(t, 437.5, n.Duration, "note %d", i) // 500ms nominal
		if i > 0 {
			assert.Greater(t, n.Frequency, notes[i-1].Frequency, "note %d", i)
		}
	}
	assert.Equal(t, 440.0, notes[5].Frequency) // A4
}

func TestErrorsCarryPosition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{"first byte", "z", 1, 1},
		{"after notes", "c d z", 1, 5},
		{"second line", "c\n z", 2, 2},
		{"after comment", ";noise\nc z", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Interpret(tt.input)
			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, Pos{Line: tt.line, Column: tt.col}, serr.Pos)
			assert.Contains(t, err.Error(), "line")
			assert.Nil(t, events)
		})
	}
}

func TestNumberMustBeAdjacent(t *testing.T) {
	_, err := Interpret("o 4")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Msg, "expected number after 'o'")
}

func TestStatePersistsWithinOneParse(t *testing.T) {
	events, err := Interpret("ml t60 c t120 c")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 1000.0, events[0].Duration)
	assert.Equal(t, 500.0, events[1].Duration)
}

func TestStateFreshAcrossParses(t *testing.T) {
	_, err := Interpret("t240 o8 l1 ms c")
	require.NoError(t, err)

	// Nothing from the previous tune leaks into the next one.
	events, err := Interpret("c")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 437.5, events[0].Duration)
	assert.InDelta(t, 261.6255653005986, events[0].Frequency, 1e-9)
}

func TestDeterminism(t *testing.T) {
	const tune = "t90 l8 o3 ms c d+ e. p4 > f g16.. < a- b mf v10 p2"
	first, err := Interpret(tune)
	require.NoError(t, err)
	second, err := Interpret(tune)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTotalDuration(t *testing.T) {
	events, err := Interpret("ml t120 c d p4")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, TotalDuration(events))
}
