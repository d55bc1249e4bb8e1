package schema

import (
	"encoding/json"
	"math"
)

// Normalize converts every numeric value to int when it is a whole integer
// kind and to float64 otherwise, so rule expressions and typed decoding see
// the same kinds no matter how the values were produced. Non-numeric values
// pass through unchanged.
func Normalize(v Values) Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = normalizeValue(val)
	}
	return out
}

func normalizeValue(v any) any {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case int64:
		return int(n)
	case uint64:
		if n <= math.MaxInt64 {
			return int(n)
		}
		return float64(n)
	case float32:
		return float64(n)
	case int32, int16, int8, uint32, uint16, uint8, uint:
		f, _ := AsFloat(n)
		return int(f)
	}
	return v
}
