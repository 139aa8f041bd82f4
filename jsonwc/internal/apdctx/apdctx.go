package apdctx

import "github.com/cockroachdb/apd/v3"

// Ctx is the base context for decimal conversion: 34 digits (decimal128-like),
// bankers rounding. Decimal widens its precision per literal.
var Ctx = apd.Context{
	Precision:   34,
	MaxExponent: apd.MaxExponent,
	MinExponent: apd.MinExponent,
	Rounding:    apd.RoundHalfEven,
}

// Decimal parses a JSON number literal exactly. The precision of Ctx is
// raised to the length of s, which bounds its digit count, so no literal is
// rounded.
func Decimal(s string) (*apd.Decimal, error) {
	c := Ctx
	if n := uint32(len(s)); n > c.Precision {
		c.Precision = n
	}
	d := new(apd.Decimal)
	if _, _, err := c.SetString(d, s); err != nil {
		return nil, err
	}
	return d, nil
}
