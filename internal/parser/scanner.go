package parser

// LexState classifies a single byte of PHP source.
type LexState int

const (
	StateCode LexState = iota
	StateSingleQuote
	StateDoubleQuote
	StateLineComment
	StateBlockComment
)

func (s LexState) String() string {
	switch s {
	case StateSingleQuote:
		return "single-quote-string"
	case StateDoubleQuote:
		return "double-quote-string"
	case StateLineComment:
		return "line-comment"
	case StateBlockComment:
		return "block-comment"
	default:
		return "code"
	}
}

// Position locates a byte within a file. Line is 1-based, Col is a
// 0-based byte column.
type Position struct {
	Offset int
	Line   int
	Col    int
}

// Event is one step of the scan: the byte at Pos, the lexical state it
// belongs to, and the brace nesting depth after the byte takes effect.
// Braces inside strings and comments never change Depth.
type Event struct {
	Pos   Position
	Ch    byte
	State LexState
	Depth int
}

// Scanner walks PHP source one byte at a time, classifying each
// position as code, string literal or comment. It holds no state
// beyond the file being scanned; create a fresh Scanner per file.
//
// Heredoc/nowdoc bodies are not recognized: braces inside them are
// counted as code. This is an accepted approximation.
type Scanner struct {
	src   []byte
	pos   int
	line  int
	col   int
	state LexState

	depth int

	// escaped marks that the previous byte inside a string state was
	// an unconsumed backslash.
	escaped bool
	// opening suppresses the closing check for the '*' that is part of
	// a block comment opener ("/*/" must not end at its own star).
	opening  bool
	prevStar bool
}

// NewScanner returns a scanner positioned at the start of src.
func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Next returns the next scan event, or ok=false at end of input.
// Unterminated strings and comments are closed implicitly at EOF; the
// scanner never fails.
func (s *Scanner) Next() (Event, bool) {
	if s.pos >= len(s.src) {
		return Event{}, false
	}
	ch := s.src[s.pos]
	pos := Position{Offset: s.pos, Line: s.line, Col: s.col}

	var ev Event
	switch s.state {
	case StateCode:
		ev = s.stepCode(ch, pos)
	case StateSingleQuote, StateDoubleQuote:
		ev = s.stepString(ch, pos)
	case StateLineComment:
		ev = s.stepLineComment(ch, pos)
	case StateBlockComment:
		ev = s.stepBlockComment(ch, pos)
	}

	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return ev, true
}

// Unterminated reports whether the scan ended inside a string or
// comment. Only meaningful once Next has returned ok=false.
func (s *Scanner) Unterminated() bool {
	return s.pos >= len(s.src) && s.state != StateCode
}

func (s *Scanner) stepCode(ch byte, pos Position) Event {
	switch ch {
	case '/':
		switch s.peek() {
		case '/':
			s.state = StateLineComment
			return Event{Pos: pos, Ch: ch, State: StateLineComment, Depth: s.depth}
		case '*':
			s.state = StateBlockComment
			s.opening = true
			s.prevStar = false
			return Event{Pos: pos, Ch: ch, State: StateBlockComment, Depth: s.depth}
		}
	case '#':
		s.state = StateLineComment
		return Event{Pos: pos, Ch: ch, State: StateLineComment, Depth: s.depth}
	case '\'':
		s.state = StateSingleQuote
		s.escaped = false
		return Event{Pos: pos, Ch: ch, State: StateSingleQuote, Depth: s.depth}
	case '"':
		s.state = StateDoubleQuote
		s.escaped = false
		return Event{Pos: pos, Ch: ch, State: StateDoubleQuote, Depth: s.depth}
	case '{':
		s.depth++
		return Event{Pos: pos, Ch: ch, State: StateCode, Depth: s.depth}
	case '}':
		s.depth--
		return Event{Pos: pos, Ch: ch, State: StateCode, Depth: s.depth}
	}
	return Event{Pos: pos, Ch: ch, State: StateCode, Depth: s.depth}
}

func (s *Scanner) stepString(ch byte, pos Position) Event {
	state := s.state
	quote := byte('\'')
	if state == StateDoubleQuote {
		quote = '"'
	}
	switch {
	case s.escaped:
		s.escaped = false
	case ch == '\\':
		s.escaped = true
	case ch == quote:
		s.state = StateCode
	}
	return Event{Pos: pos, Ch: ch, State: state, Depth: s.depth}
}

func (s *Scanner) stepLineComment(ch byte, pos Position) Event {
	if ch == '\n' {
		// The newline itself is code again.
		s.state = StateCode
		return Event{Pos: pos, Ch: ch, State: StateCode, Depth: s.depth}
	}
	return Event{Pos: pos, Ch: ch, State: StateLineComment, Depth: s.depth}
}

func (s *Scanner) stepBlockComment(ch byte, pos Position) Event {
	switch {
	case s.opening:
		// The '*' of the opener.
		s.opening = false
		s.prevStar = false
	case ch == '/' && s.prevStar:
		s.state = StateCode
		s.prevStar = false
		return Event{Pos: pos, Ch: ch, State: StateBlockComment, Depth: s.depth}
	default:
		s.prevStar = ch == '*'
	}
	return Event{Pos: pos, Ch: ch, State: StateBlockComment, Depth: s.depth}
}

func (s *Scanner) peek() byte {
	if s.pos+1 < len(s.src) {
		return s.src[s.pos+1]
	}
	return 0
}
