package jsonwc_test

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chandan-cmd-dev/jsonwc-go/jsonwc"
)

func TestStripComments(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", ``, ``},
		{"no comments", `{"a": [1, 2.5, true, null]}`, `{"a": [1, 2.5, true, null]}`},
		{"string immunity", `{"a": "// not a comment"}`, `{"a": "// not a comment"}`},
		{"block marker in string", `{"a": "/* no */"}`, `{"a": "/* no */"}`},
		{"line comment", "{\"a\":1}//c\n{\"b\":2}", "{\"a\":1}   \n{\"b\":2}"},
		{"block across lines", "/*\nx\n*/", "  \n \n  "},
		{"empty block", `/**/`, `    `},
		{"stars before close", `/* a **/1`, `        1`},
		{"star inside block", `/* a * b */1`, `           1`},
		{"line comment at eof", `1 // end`, `1       `},
		{"crlf line comment", "1 // x\r\n2", "1     \r\n2"},
		{"cr inside block", "/*\r\n*/2", "  \r\n  2"},
		{"lone slash", `[1 /2]`, `[1 /2]`},
		{"slash before newline", "1/\n", "1/\n"},
		{"slash before quote", `/"//x"`, `/"    `},
		{"dangling slash", `{"a":1}/`, `{"a":1}/`},
		{"escaped quote", `"a\"b"`, `"a\"b"`},
		{"escaped quote then marker", `"a\"//b"`, `"a\"//b"`},
		{"escaped backslash ends string", `"a\\"//b`, `"a\\"   `},
		{"unterminated string", `"abc // x`, `"abc // x`},
		{"comment in comment", `/* // */1`, `        1`},
		{"unicode in comment", "// héllo\n1", "        \n1"},
		{"unicode in block", "/*♥*/\"é\"", "     \"é\""},
		{"quote in comment", "// \"\n\"//\"", "    \n\"//\""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jsonwc.StripComments(tc.in)
			if err != nil {
				t.Fatalf("StripComments(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("StripComments(%q)\n got %q\nwant %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripUnterminatedBlockComment(t *testing.T) {
	cases := []struct {
		in           string
		line, column int
		offset       int64
	}{
		{`{"a":1} /* oops`, 1, 9, 8},
		{`/*`, 1, 1, 0},
		{`/* *`, 1, 1, 0},
		{"{\n  /* x\n", 2, 3, 4},
		{"// é\n/* é", 2, 1, 6},
		{"/* a */ /* b", 1, 9, 8},
	}
	for _, tc := range cases {
		_, err := jsonwc.StripComments(tc.in)
		if !errors.Is(err, jsonwc.ErrUnterminatedBlockComment) {
			t.Fatalf("StripComments(%q): got %v, want unterminated block comment", tc.in, err)
		}
		var e *jsonwc.Error
		if !errors.As(err, &e) {
			t.Fatalf("StripComments(%q): %T is not *jsonwc.Error", tc.in, err)
		}
		if e.Kind != jsonwc.KindUnterminatedBlockComment {
			t.Fatalf("kind = %v", e.Kind)
		}
		if e.Line != tc.line || e.Column != tc.column || e.Offset != tc.offset {
			t.Fatalf("StripComments(%q): position %d:%d@%d, want %d:%d@%d",
				tc.in, e.Line, e.Column, e.Offset, tc.line, tc.column, tc.offset)
		}
		if errors.Is(err, jsonwc.ErrInvalidJSON) {
			t.Fatal("unterminated comment must not match ErrInvalidJSON")
		}
	}
}

func TestStripInvalidUTF8PassesThrough(t *testing.T) {
	in := []byte{'"', 0xff, 0xfe, '"', ' ', '/', '/', 0xff, '\n'}
	got, err := jsonwc.Strip(in)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'"', 0xff, 0xfe, '"', ' ', ' ', ' ', ' ', '\n'}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestStripGolden(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "config.jsonc"))
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(filepath.Join("testdata", "config.golden"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := jsonwc.Strip(src)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("golden mismatch\n got %q\nwant %q", got, want)
	}
	if bytes.Count(got, []byte("\n")) != bytes.Count(src, []byte("\n")) {
		t.Fatal("line count changed")
	}
}

// randomDoc draws from the characters the scanner distinguishes, plus a
// few ordinary ones.
func randomDoc(r *rand.Rand, n int) string {
	const alphabet = "/*\"\\\r\n a1{}"
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[r.Intn(len(alphabet))])
	}
	return b.String()
}

func TestStripProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		in := randomDoc(r, r.Intn(40))
		out, err := jsonwc.StripComments(in)
		if errors.Is(err, jsonwc.ErrUnterminatedBlockComment) {
			continue
		}
		if err != nil {
			t.Fatalf("StripComments(%q): %v", in, err)
		}
		if len(out) != len(in) {
			t.Fatalf("StripComments(%q) = %q: length %d, want %d", in, out, len(out), len(in))
		}
		for j := 0; j < len(in); j++ {
			if out[j] != in[j] && out[j] != ' ' {
				t.Fatalf("StripComments(%q) = %q: byte %d is %q", in, out, j, out[j])
			}
			if (in[j] == '\n') != (out[j] == '\n') || (in[j] == '\r') != (out[j] == '\r') {
				t.Fatalf("StripComments(%q) = %q: line break moved at %d", in, out, j)
			}
		}
		again, err := jsonwc.StripComments(out)
		if err != nil {
			t.Fatalf("second pass over %q: %v", out, err)
		}
		if again != out {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, out, again)
		}
	}
}

func TestStripWithoutCommentsIsIdentity(t *testing.T) {
	docs := []string{
		`{"key": "value", "list": [1, -0, 0e0, "♥", "\\", "\/", "\""]}`,
		"[\r\n  1,\r\n  2\r\n]",
		`"Mötorhead 🎈"`,
		`{"url": "https://example.com/*path*/"}`,
	}
	for _, d := range docs {
		got, err := jsonwc.StripComments(d)
		if err != nil {
			t.Fatal(err)
		}
		if got != d {
			t.Fatalf("got %q want %q", got, d)
		}
	}
}

func TestScannerState(t *testing.T) {
	cases := []struct {
		in   string
		want jsonwc.State
	}{
		{``, jsonwc.StateDefault},
		{`/`, jsonwc.StateCommentIntro},
		{`// x`, jsonwc.StateLineComment},
		{`/* x`, jsonwc.StateBlockComment},
		{`/* x *`, jsonwc.StateBlockCommentStar},
		{`"x`, jsonwc.StateString},
		{`"x\`, jsonwc.StateStringEscape},
		{`"x" /* y */`, jsonwc.StateDefault},
	}
	for _, tc := range cases {
		s := jsonwc.NewScanner(0)
		s.Write([]byte(tc.in))
		if got := s.State(); got != tc.want {
			t.Fatalf("%q: state %v, want %v", tc.in, got, tc.want)
		}
	}
}

func BenchmarkStrip(b *testing.B) {
	src, err := os.ReadFile(filepath.Join("testdata", "config.jsonc"))
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonwc.Strip(src); err != nil {
			b.Fatal(err)
		}
	}
}
