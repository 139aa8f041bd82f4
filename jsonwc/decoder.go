package jsonwc

import "io"

// Decoder reads one JSON-with-comments document from a stream.
type Decoder struct {
	r    io.Reader
	opts decodeOptions
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// UseNumber makes Decode store numbers held in interface values as json.Number.
func (d *Decoder) UseNumber() { d.opts.numbers = NumberJSON }

// UseDecimal makes Decode store numbers held in interface values as
// *apd.Decimal. Only *any, *map[string]any and *[]any targets are converted;
// other targets see json.Number.
func (d *Decoder) UseDecimal() { d.opts.numbers = NumberDecimal }

func (d *Decoder) SetNumberMode(m NumberMode) { d.opts.numbers = m }

func (d *Decoder) DisallowUnknownFields() { d.opts.disallowUnknown = true }

// Decode reads the rest of the stream and decodes it into v.
func (d *Decoder) Decode(v any) error {
	input, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	return unmarshal(input, v, d.opts)
}
