package lexer

import "github.com/pkg/errors"

// Position is a 1-based line and column in the input document. The column
// refers to the most recently consumed character.
type Position struct {
	Line int
	Col  int
}

// inputStream is the tokenizer's cursor over a fully received document. It
// yields one rune at a time, supports arbitrary lookahead (the document is
// already in memory, so peeking is just an index), and supports exactly one
// pending reconsume so a state can hand the current character back to the
// next state.
//
// Exhaustion is an explicit sentinel (the second return value of Consume and
// the peek methods), never a rune value.
type inputStream struct {
	input     []rune
	pos       int
	line      int
	col       int
	newline   bool // last consumed rune ended a line
	pending   bool // one reconsume is waiting to be re-yielded
	exhausted bool // the end-of-input sentinel has been yielded
}

func newInputStream(document string) *inputStream {
	return &inputStream{input: []rune(document), line: 1}
}

// Consume advances the cursor and returns the next rune. It returns false
// once the input is exhausted, and keeps returning false on further calls.
func (s *inputStream) Consume() (rune, bool) {
	if s.pending {
		s.pending = false
		return s.input[s.pos-1], true
	}
	if s.pos >= len(s.input) {
		s.exhausted = true
		return 0, false
	}
	r := s.input[s.pos]
	s.pos++
	if s.newline {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.newline = r == '\n'
	return r, true
}

// Reconsume steps the cursor back so the next Consume re-yields the character
// it yielded last. At most one reconsume may be pending; a second call
// without an intervening Consume is a logic error in the caller.
func (s *inputStream) Reconsume() {
	if s.pending {
		panic(errors.New("lexer: reconsume already pending"))
	}
	if s.pos == 0 || s.exhausted {
		// Nothing consumed yet, or the cursor is past the end; the next
		// Consume already re-yields the right thing.
		return
	}
	s.pending = true
}

// Peek returns the next rune without advancing.
func (s *inputStream) Peek() (rune, bool) {
	return s.PeekAt(0)
}

// PeekAt returns the rune n positions past the next one without advancing.
func (s *inputStream) PeekAt(n int) (rune, bool) {
	i := s.index() + n
	if i >= len(s.input) {
		return 0, false
	}
	return s.input[i], true
}

// Lookahead returns up to n upcoming runes as a string without advancing.
// Near the end of input the result is shorter than n.
func (s *inputStream) Lookahead(n int) string {
	start := s.index()
	end := start + n
	if end > len(s.input) {
		end = len(s.input)
	}
	if start >= end {
		return ""
	}
	return string(s.input[start:end])
}

// Discard consumes and drops the next n runes.
func (s *inputStream) Discard(n int) {
	for i := 0; i < n; i++ {
		s.Consume()
	}
}

// Position reports the line and column of the most recently consumed rune.
func (s *inputStream) Position() Position {
	return Position{Line: s.line, Col: s.col}
}

func (s *inputStream) index() int {
	if s.pending {
		return s.pos - 1
	}
	return s.pos
}
