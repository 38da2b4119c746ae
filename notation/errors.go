package notation

import "fmt"

// Pos locates a command in the source text (1-based).
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// SyntaxError reports an unrecognized or deliberately unsupported
// command. The position points at the first byte of the command.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Msg, e.Pos)
}

// RangeError reports a numeric parameter outside its supported bounds.
type RangeError struct {
	Pos   Pos
	What  string // the parameter: "octave", "tempo", "length"
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range (%s)", e.What, e.Value, e.Pos)
}
