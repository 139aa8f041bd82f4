package jsonwc

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminatedBlockComment = errors.New("jsonwc: unterminated block comment")
	ErrInvalidJSON              = errors.New("jsonwc: comment removal did not yield valid JSON")
)

// Kind tells which stage rejected the input.
type Kind uint8

const (
	KindUnterminatedBlockComment Kind = iota + 1
	KindInvalidJSON
)

func (k Kind) String() string {
	switch k {
	case KindUnterminatedBlockComment:
		return "unterminated-block-comment"
	case KindInvalidJSON:
		return "invalid-json"
	}
	return "unknown"
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnterminatedBlockComment:
		return ErrUnterminatedBlockComment
	case KindInvalidJSON:
		return ErrInvalidJSON
	}
	return nil
}

// Error is returned by every stripping and parsing operation. Line and Column
// are 1-based, Column counts characters; Offset is a byte offset into the
// original input. For KindUnterminatedBlockComment the position is that of
// the '/*' opening the comment.
type Error struct {
	Kind   Kind
	Line   int
	Column int
	Offset int64
	Err    error // parser diagnostic, KindInvalidJSON only
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel()
	if msg == nil {
		msg = errors.New("jsonwc: error")
	}
	if e.Err != nil {
		return fmt.Sprintf("%v at line %d, column %d: %v", msg, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%v at line %d, column %d", msg, e.Line, e.Column)
}

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func (e *Error) Unwrap() error { return e.Err }
