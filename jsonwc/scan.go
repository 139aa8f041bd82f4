package jsonwc

import (
	"fmt"
	"unicode/utf8"
)

// Scanner replaces the comments of JSON-with-comments text by spaces. It
// accepts input in arbitrary chunks; a UTF-8 sequence split across two
// Writes is held back until it is complete.
//
// Every character outside a comment is copied byte for byte. Every comment
// character becomes one space, except CR and LF which are copied, so each
// non-comment character keeps its line and column.
type Scanner struct {
	state State
	out   []byte

	pending  [utf8.UTFMax]byte
	npending int

	pos   position // of the next input character
	intro position // of the last '/' that moved us to StateCommentIntro
}

type position struct {
	line, col int
	off       int64
}

func NewScanner(sizeHint int) *Scanner {
	return &Scanner{
		out: make([]byte, 0, sizeHint),
		pos: position{line: 1, col: 1},
	}
}

// State returns the state reached after the characters written so far.
func (s *Scanner) State() State { return s.state }

// Write scans p. It never fails; malformed input is reported by Finish.
func (s *Scanner) Write(p []byte) (int, error) {
	n := len(p)
	if s.npending > 0 {
		p = append(s.pending[:s.npending:s.npending], p...)
		s.npending = 0
	}
	rest := s.consume(p, false)
	s.npending = copy(s.pending[:], rest)
	return n, nil
}

// Finish ends the input and returns the stripped text. The returned slice
// is owned by the scanner until the next Write.
func (s *Scanner) Finish() ([]byte, error) {
	if s.npending > 0 {
		s.consume(s.pending[:s.npending], true)
		s.npending = 0
	}
	switch s.state {
	case StateCommentIntro:
		// The withheld '/' was not a comment after all; give it back so the
		// JSON parser can reject it.
		s.out = append(s.out, '/')
		s.state = StateDefault
	case StateBlockComment, StateBlockCommentStar:
		return nil, &Error{
			Kind:   KindUnterminatedBlockComment,
			Line:   s.intro.line,
			Column: s.intro.col,
			Offset: s.intro.off,
		}
	}
	return s.out, nil
}

// take hands out the output produced so far. The slice is reused by the
// next Write.
func (s *Scanner) take() []byte {
	out := s.out
	s.out = s.out[:0]
	return out
}

func (s *Scanner) consume(p []byte, final bool) []byte {
	for len(p) > 0 {
		if p[0] < utf8.RuneSelf {
			s.step(rune(p[0]), p[:1])
			p = p[1:]
			continue
		}
		if !final && !utf8.FullRune(p) {
			break
		}
		r, size := utf8.DecodeRune(p)
		s.step(r, p[:size])
		p = p[size:]
	}
	return p
}

func (s *Scanner) step(r rune, raw []byte) {
	action, next := Transition(s.state, Classify(r))
	switch action {
	case EmitNothing:
	case EmitCurrent:
		s.out = append(s.out, raw...)
	case EmitFSlashThenCurrent:
		s.out = append(s.out, '/')
		s.out = append(s.out, raw...)
	case EmitOneSpace:
		s.out = append(s.out, ' ')
	case EmitTwoSpaces:
		s.out = append(s.out, ' ', ' ')
	default:
		panic(fmt.Sprintf("jsonwc: unknown action %d", action))
	}
	if next == StateCommentIntro {
		s.intro = s.pos
	}
	s.state = next

	s.pos.off += int64(len(raw))
	if r == '\n' {
		s.pos.line++
		s.pos.col = 1
	} else {
		s.pos.col++
	}
}

// Strip returns data with every comment replaced by spaces.
func Strip(data []byte) ([]byte, error) {
	s := NewScanner(len(data) + 1)
	s.Write(data)
	return s.Finish()
}

// StripComments is Strip for strings.
func StripComments(text string) (string, error) {
	out, err := Strip([]byte(text))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
