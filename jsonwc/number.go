package jsonwc

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/chandan-cmd-dev/jsonwc-go/jsonwc/internal/apdctx"
)

// NumberMode selects how JSON numbers decoded into interface values are
// represented.
type NumberMode uint8

const (
	NumberFloat64 NumberMode = iota // float64, as encoding/json does
	NumberJSON                      // json.Number, the literal text
	NumberDecimal                   // *apd.Decimal, 34 significant digits
)

func (m NumberMode) String() string {
	switch m {
	case NumberFloat64:
		return "float64"
	case NumberJSON:
		return "number"
	case NumberDecimal:
		return "decimal"
	}
	return fmt.Sprintf("NumberMode(%d)", uint8(m))
}

func ParseNumberMode(s string) (NumberMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float", "float64":
		return NumberFloat64, nil
	case "number", "json":
		return NumberJSON, nil
	case "decimal", "dec":
		return NumberDecimal, nil
	}
	return 0, fmt.Errorf("jsonwc: unknown number mode %q", s)
}

// decimals replaces every json.Number inside v by an *apd.Decimal.
func decimals(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		return apdctx.Decimal(x.String())
	case map[string]any:
		for k, it := range x {
			d, err := decimals(it)
			if err != nil {
				return nil, err
			}
			x[k] = d
		}
		return x, nil
	case []any:
		for i, it := range x {
			d, err := decimals(it)
			if err != nil {
				return nil, err
			}
			x[i] = d
		}
		return x, nil
	}
	return v, nil
}

// convertDecimals applies decimals to the targets that can hold them.
func convertDecimals(v any) error {
	var err error
	switch p := v.(type) {
	case *any:
		*p, err = decimals(*p)
	case *map[string]any:
		_, err = decimals(*p)
	case *[]any:
		_, err = decimals(*p)
	}
	return err
}

// reduce normalises every decimal in v so that equal values print alike.
func reduce(v any) any {
	switch x := v.(type) {
	case *apd.Decimal:
		d := new(apd.Decimal)
		d.Reduce(x)
		return json.Number(d.String())
	case map[string]any:
		for k, it := range x {
			x[k] = reduce(it)
		}
	case []any:
		for i, it := range x {
			x[i] = reduce(it)
		}
	}
	return v
}
