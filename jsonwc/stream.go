package jsonwc

import (
	"errors"
	"io"
)

// Writer strips comments from everything written to it and forwards the
// result to the underlying writer as it goes. Close must be called to flush a
// trailing '/' and to detect an unterminated block comment; it does not close
// the underlying writer.
//
// Output reaches the underlying writer before the input is known to be
// complete, so a failing Close can leave a stripped prefix behind. Callers
// that need all-or-nothing output use Strip, or write into a buffer and
// discard it on error. After any error the Writer only returns that error.
type Writer struct {
	w   io.Writer
	s   *Scanner
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, s: NewScanner(4096)}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, _ := w.s.Write(p)
	if err := w.flush(w.s.take()); err != nil {
		// p has been consumed by the scanner either way.
		return n, err
	}
	return n, nil
}

func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	out, err := w.s.Finish()
	if err != nil {
		w.err = err
		return err
	}
	if err := w.flush(out); err != nil {
		return err
	}
	w.err = errClosed
	return nil
}

func (w *Writer) flush(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := w.w.Write(b); err != nil {
		w.err = err
		return err
	}
	return nil
}

var errClosed = errors.New("jsonwc: writer is closed")

// StripTo copies r to w with every comment replaced by spaces. Like Writer,
// it may have written part of the output when it returns an error.
func StripTo(w io.Writer, r io.Reader) error {
	sw := NewWriter(w)
	if _, err := io.Copy(sw, r); err != nil {
		return err
	}
	return sw.Close()
}
