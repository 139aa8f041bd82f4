package jsonwc

import "unicode/utf8"

// positionOf returns the 1-based line and character column of byte index i
// in data. An index at or past the end points just after the last character.
func positionOf(data []byte, i int64) (line, col int) {
	line, col = 1, 1
	if i > int64(len(data)) {
		i = int64(len(data))
	}
	for p := int64(0); p < i; {
		r, size := utf8.DecodeRune(data[p:])
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		p += int64(size)
	}
	return line, col
}

// offsetOf is the inverse of positionOf. Positions past the end of a line or
// of data are clamped.
func offsetOf(data []byte, line, col int) int64 {
	var p int
	for l := 1; l < line && p < len(data); p++ {
		if data[p] == '\n' {
			l++
		}
	}
	for c := 1; c < col && p < len(data) && data[p] != '\n'; c++ {
		_, size := utf8.DecodeRune(data[p:])
		p += size
	}
	return int64(p)
}
