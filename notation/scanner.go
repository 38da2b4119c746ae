package notation

// scanner walks the raw tune text one byte at a time. Whitespace and
// ";" comments separate commands and are skipped there, but a command's
// suffix (accidental, length digits, dots) must follow it directly, so
// the interpreter reads those through peek/advance without skipping.
type scanner struct {
	src  string
	at   int
	line int
	col  int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1, col: 1}
}

// next skips insignificant bytes and consumes the next command byte,
// lowercased, along with its position. ok is false at end of input.
func (s *scanner) next() (b byte, pos Pos, ok bool) {
	for s.at < len(s.src) {
		c := s.src[s.at]
		switch {
		case c == ';':
			// comment runs to end of line
			for s.at < len(s.src) && s.src[s.at] != '\n' {
				s.advance()
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		default:
			pos = Pos{Line: s.line, Column: s.col}
			s.advance()
			return lower(c), pos, true
		}
	}
	return 0, Pos{}, false
}

// peek returns the immediately following byte, lowercased, without
// consuming it. Returns 0 at end of input.
func (s *scanner) peek() byte {
	if s.at >= len(s.src) {
		return 0
	}
	return lower(s.src[s.at])
}

// advance consumes one byte and keeps line/column current.
func (s *scanner) advance() {
	if s.src[s.at] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.at++
}

// number consumes a run of adjacent digits. ok is false when no digit
// follows. Values saturate far above any supported parameter so that
// absurd inputs still land in range checks instead of overflowing.
func (s *scanner) number() (v int, ok bool) {
	start := s.at
	for s.at < len(s.src) && isDigit(s.src[s.at]) {
		if v < 100000000 {
			v = v*10 + int(s.src[s.at]-'0')
		}
		s.advance()
	}
	return v, s.at > start
}

// dots counts a run of adjacent dots.
func (s *scanner) dots() int {
	n := 0
	for s.at < len(s.src) && s.src[s.at] == '.' {
		n++
		s.advance()
	}
	return n
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
