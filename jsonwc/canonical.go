package jsonwc

import (
	"bytes"
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"
)

// Canonical returns data as compact JSON with comments removed, object keys
// sorted, string escapes normalised and numbers reduced to their shortest
// exact spelling, so "1.50", "1.5" and "15e-1" all become 1.5.
func Canonical(data []byte) ([]byte, error) {
	var v any
	if err := unmarshal(data, &v, decodeOptions{numbers: NumberDecimal}); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(reduce(v)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// Fingerprint is the hex BLAKE2b-256 digest of Canonical(data). Documents
// that differ only in comments, layout, key order or number spelling share
// a fingerprint.
func Fingerprint(data []byte) (string, error) {
	c, err := Canonical(data)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(c)
	return hex.EncodeToString(sum[:]), nil
}
