package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Result is the outcome of validating a parameter set against a Schema.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate checks every declared parameter of s against instance and
// collects all violations. It never stops at the first error and performs no
// cross-parameter checks. Keys of instance that the schema does not declare
// are ignored here.
func Validate(s *Schema, instance Values) Result {
	errs := []string{}
	for _, p := range s.params {
		v, present := instance[p.Key]
		if !present || v == nil {
			if p.Required {
				errs = append(errs, p.Label+" is required")
			}
			continue
		}
		if msg := checkValue(p, v); msg != "" {
			errs = append(errs, msg)
		}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// checkValue returns the violation message for a present value, or "".
func checkValue(p Parameter, v any) string {
	switch p.Type {
	case TypeNumber:
		n, ok := AsFloat(v)
		if !ok {
			return p.Label + " must be a number"
		}
		if p.Integer && n != math.Trunc(n) {
			return p.Label + " must be a whole number"
		}
		switch {
		case p.Min != nil && p.Max != nil:
			if n < *p.Min || n > *p.Max {
				return fmt.Sprintf("%s must be between %s and %s", p.Label, formatNumber(*p.Min), formatNumber(*p.Max))
			}
		case p.Min != nil:
			if n < *p.Min {
				return fmt.Sprintf("%s must be at least %s", p.Label, formatNumber(*p.Min))
			}
		case p.Max != nil:
			if n > *p.Max {
				return fmt.Sprintf("%s must be at most %s", p.Label, formatNumber(*p.Max))
			}
		}
	case TypeSelect:
		s, ok := v.(string)
		if !ok || !slices.Contains(p.OptionValues(), s) {
			return fmt.Sprintf("%s must be one of: %s", p.Label, strings.Join(p.OptionValues(), ", "))
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return p.Label + " must be true or false"
		}
	default:
		return fmt.Sprintf("%s has unsupported type %q", p.Label, p.Type)
	}
	return ""
}

// AsFloat converts any Go numeric kind (or json.Number) to float64. NaN and
// infinities are not numbers for validation purposes.
func AsFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
