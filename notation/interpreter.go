package notation

import "fmt"

// Interpret parses one tune in the classic PLAY grammar and returns the
// timed events it performs. The same input always yields the same
// events; every call starts from fresh performance state. The first
// syntax or range error aborts the whole parse and no events escape.
func Interpret(src string) ([]Event, error) {
	in := &interpreter{sc: newScanner(src), state: NewState()}
	if err := in.run(); err != nil {
		return nil, err
	}
	return in.events, nil
}

// interpreter dispatches commands left to right, threading the mutable
// performance state and collecting events.
type interpreter struct {
	sc     *scanner
	state  *State
	events []Event
}

func (in *interpreter) run() error {
	for {
		b, pos, ok := in.sc.next()
		if !ok {
			return nil
		}
		var err error
		switch {
		case b >= 'a' && b <= 'g':
			err = in.note(b, pos)
		case b == 'o':
			err = in.setOctave(pos)
		case b == '>':
			err = in.shiftOctave(1, pos)
		case b == '<':
			err = in.shiftOctave(-1, pos)
		case b == 'l':
			err = in.setLength(pos)
		case b == 't':
			err = in.setTempo(pos)
		case b == 'v':
			err = in.setVolume(pos)
		case b == 'p':
			err = in.rest(pos)
		case b == 'm':
			err = in.modifier(pos)
		case b == 'n':
			// The absolute-note command is rejected on purpose for
			// every argument value; tunes must spell notes by letter.
			in.sc.number()
			err = &SyntaxError{Pos: pos, Msg: "the absolute-note command 'n' is not supported"}
		default:
			err = &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unknown character %q", b)}
		}
		if err != nil {
			return err
		}
	}
}

// note handles A-G with optional accidental, explicit length and dots.
// Articulation splits the nominal duration into a sounded note and,
// when anything is left over, an implicit trailing rest.
func (in *interpreter) note(letter byte, pos Pos) error {
	accidental := 0
	switch in.sc.peek() {
	case '#', '+':
		accidental = 1
		in.sc.advance()
	case '-':
		accidental = -1
		in.sc.advance()
	}

	length := in.state.DefaultLength
	if v, ok := in.sc.number(); ok {
		if !validLength(v) {
			return &RangeError{Pos: pos, What: "length", Value: v}
		}
		length = v
	}
	dots := in.sc.dots()

	nominal := in.state.noteMs(length, dots)
	sounded := nominal * in.state.Articulation.Sounded()
	in.events = append(in.events, Note(Frequency(letter, in.state.Octave, accidental), sounded))
	if gap := nominal - sounded; gap > 0 {
		in.events = append(in.events, Rest(gap))
	}
	return nil
}

// rest handles Pn: a silence spanning the full nominal duration of the
// given length denominator, dots included.
func (in *interpreter) rest(pos Pos) error {
	v, ok := in.sc.number()
	if !ok {
		return &SyntaxError{Pos: pos, Msg: "expected number after 'p'"}
	}
	if !validLength(v) {
		return &RangeError{Pos: pos, What: "length", Value: v}
	}
	dots := in.sc.dots()
	in.events = append(in.events, Rest(in.state.noteMs(v, dots)))
	return nil
}

func (in *interpreter) setOctave(pos Pos) error {
	v, ok := in.sc.number()
	if !ok {
		return &SyntaxError{Pos: pos, Msg: "expected number after 'o'"}
	}
	if v > 8 {
		return &RangeError{Pos: pos, What: "octave", Value: v}
	}
	in.state.Octave = v
	return nil
}

// shiftOctave handles the > and < shorthands. Stepping past either end
// of the 0-8 range is a range error, never a silent clamp.
func (in *interpreter) shiftOctave(delta int, pos Pos) error {
	v := in.state.Octave + delta
	if v < 0 || v > 8 {
		return &RangeError{Pos: pos, What: "octave", Value: v}
	}
	in.state.Octave = v
	return nil
}

func (in *interpreter) setLength(pos Pos) error {
	v, ok := in.sc.number()
	if !ok {
		return &SyntaxError{Pos: pos, Msg: "expected number after 'l'"}
	}
	if !validLength(v) {
		return &RangeError{Pos: pos, What: "length", Value: v}
	}
	in.state.DefaultLength = v
	return nil
}

func (in *interpreter) setTempo(pos Pos) error {
	v, ok := in.sc.number()
	if !ok {
		return &SyntaxError{Pos: pos, Msg: "expected number after 't'"}
	}
	if v < 1 {
		return &RangeError{Pos: pos, What: "tempo", Value: v}
	}
	in.state.Tempo = v
	return nil
}

// setVolume parses and stores Vn. Rendering never consults it; the
// command is kept for compatibility with tunes that carry it.
func (in *interpreter) setVolume(pos Pos) error {
	v, ok := in.sc.number()
	if !ok {
		return &SyntaxError{Pos: pos, Msg: "expected number after 'v'"}
	}
	in.state.Volume = v
	return nil
}

// modifier handles the two-letter M commands: MS/MN/ML select
// articulation, MF and MB are recognized and intentionally inert.
func (in *interpreter) modifier(pos Pos) error {
	b := in.sc.peek()
	switch b {
	case 's':
		in.state.Articulation = Staccato
	case 'n':
		in.state.Articulation = Normal
	case 'l':
		in.state.Articulation = Legato
	case 'f', 'b':
		// music foreground/background: no state, no event
	case 0:
		return &SyntaxError{Pos: pos, Msg: "unknown character sequence 'm'"}
	default:
		return &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unknown character sequence %q", "m"+string(b))}
	}
	in.sc.advance()
	return nil
}
