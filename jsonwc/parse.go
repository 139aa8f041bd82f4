package jsonwc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

type decodeOptions struct {
	numbers         NumberMode
	disallowUnknown bool
}

// Parse strips the comments from text and parses the result as JSON.
func Parse(text string) (any, error) {
	var v any
	if err := Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Unmarshal is json.Unmarshal for JSON-with-comments. Syntax errors are
// reported as *Error with positions in data.
func Unmarshal(data []byte, v any) error {
	return unmarshal(data, v, decodeOptions{})
}

// ReadFile parses the JSON-with-comments file at path.
func ReadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v any
	if err := Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func unmarshal(data []byte, v any, opts decodeOptions) error {
	clean, err := Strip(data)
	if err != nil {
		return err
	}
	return decodeStripped(data, clean, v, opts)
}

// decodeStripped decodes clean, the stripped form of input, into v.
func decodeStripped(input, clean []byte, v any, opts decodeOptions) error {
	dec := json.NewDecoder(bytes.NewReader(clean))
	if opts.numbers != NumberFloat64 {
		dec.UseNumber()
	}
	if opts.disallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return wrapSyntaxError(input, clean, err)
	}
	if i := firstNonSpace(clean, dec.InputOffset()); i >= 0 {
		return invalidAt(input, clean, i, fmt.Errorf("invalid character %q after top-level value", clean[i]))
	}
	if opts.numbers == NumberDecimal {
		return convertDecimals(v)
	}
	return nil
}

func wrapSyntaxError(input, clean []byte, err error) error {
	var se *json.SyntaxError
	switch {
	case errors.As(err, &se):
		i := se.Offset - 1
		if i < 0 {
			i = 0
		}
		return invalidAt(input, clean, i, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return invalidAt(input, clean, int64(len(clean)), io.ErrUnexpectedEOF)
	}
	return err
}

// invalidAt builds a KindInvalidJSON error for byte i of clean. Stripping
// keeps lines and columns, so the position found in clean is also the
// position in input.
func invalidAt(input, clean []byte, i int64, err error) *Error {
	line, col := positionOf(clean, i)
	return &Error{
		Kind:   KindInvalidJSON,
		Line:   line,
		Column: col,
		Offset: offsetOf(input, line, col),
		Err:    err,
	}
}

func firstNonSpace(b []byte, from int64) int64 {
	for i := from; i < int64(len(b)); i++ {
		switch b[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return i
		}
	}
	return -1
}
