package jsonwc_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/chandan-cmd-dev/jsonwc-go/jsonwc"
)

func TestWriterMatchesStripAtEverySplit(t *testing.T) {
	docs := []string{
		stressTest,
		"{\"a\":1}//c\n{\"b\":2}",
		"// é♥🎈\n\"é♥🎈\" /* ♥ */",
		`{"a":1}/`,
		"\"a\\\"b\" /**/ 1",
	}
	for _, doc := range docs {
		want, err := jsonwc.StripComments(doc)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i <= len(doc); i++ {
			var buf bytes.Buffer
			w := jsonwc.NewWriter(&buf)
			if _, err := w.Write([]byte(doc[:i])); err != nil {
				t.Fatal(err)
			}
			if _, err := w.Write([]byte(doc[i:])); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}
			if buf.String() != want {
				t.Fatalf("split at %d of %q:\n got %q\nwant %q", i, doc, buf.String(), want)
			}
		}
	}
}

func TestStripToOneByteReader(t *testing.T) {
	var buf bytes.Buffer
	r := iotest.OneByteReader(strings.NewReader(stressTest))
	if err := jsonwc.StripTo(&buf, r); err != nil {
		t.Fatal(err)
	}
	want, _ := jsonwc.StripComments(stressTest)
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestStripToUnterminatedBlockComment(t *testing.T) {
	var buf bytes.Buffer
	err := jsonwc.StripTo(&buf, strings.NewReader("[1,\n /* 2"))
	if !errors.Is(err, jsonwc.ErrUnterminatedBlockComment) {
		t.Fatalf("got %v", err)
	}
	var e *jsonwc.Error
	if !errors.As(err, &e) || e.Line != 2 || e.Column != 2 {
		t.Fatalf("got %+v", e)
	}
	// Everything scanned before Close has already been forwarded.
	if got := buf.String(); got != "[1,\n     " {
		t.Fatalf("forwarded %q", got)
	}
}

func TestWriterAfterClose(t *testing.T) {
	var buf bytes.Buffer
	w := jsonwc.NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("1")); err == nil {
		t.Fatal("write after close succeeded")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterPropagatesWriteError(t *testing.T) {
	w := jsonwc.NewWriter(failingWriter{})
	n, err := w.Write([]byte("12"))
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("got %v", err)
	}
	if n != 2 {
		t.Fatalf("consumed %d bytes, want 2", n)
	}
	if _, err := w.Write([]byte("3")); err == nil || err.Error() != "disk full" {
		t.Fatalf("write after failure: %v", err)
	}
	if err := w.Close(); err == nil {
		t.Fatal("close after failed write succeeded")
	}
}
