// Package sampling implements bounded rejection sampling with a
// deterministic fallback, for constraints that plain range sampling cannot
// express (for example "these addends must not carry").
package sampling

import (
	"fmt"
	"slices"
)

// DefaultMaxAttempts bounds the number of candidates drawn per call.
const DefaultMaxAttempts = 100

// Result is the outcome of UnderConstraint.
type Result[T any] struct {
	// Values always has exactly the requested number of elements.
	Values []T

	// Attempts is the number of candidates drawn.
	Attempts int

	// FallbackCount is the number of trailing slots filled by the fallback
	// after the attempt budget ran out. Those slots may not satisfy the
	// constraint.
	FallbackCount int
}

// FallbackUsed reports whether any slot came from the fallback.
func (r Result[T]) FallbackUsed() bool { return r.FallbackCount > 0 }

// UnderConstraint fills target slots with candidates from sample.
//
// The first candidate is always kept. Every later candidate is appended
// tentatively and accept is called with the whole accumulated set; the
// candidate is kept only if accept returns true. At most maxAttempts
// candidates are drawn. Slots still empty after that are filled with
// fallback(i), where i is the slot index, so the call always returns target
// values. Exhaustion is not an error; errors come only from sample. Each
// set passed to accept is freshly allocated, so accept may keep it.
func UnderConstraint[T any](
	target, maxAttempts int,
	sample func() (T, error),
	accept func(set []T) bool,
	fallback func(i int) T,
) (Result[T], error) {
	if target <= 0 {
		return Result[T]{Values: []T{}}, nil
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	res := Result[T]{Values: make([]T, 0, target)}
	for len(res.Values) < target && res.Attempts < maxAttempts {
		res.Attempts++
		candidate, err := sample()
		if err != nil {
			return Result[T]{}, fmt.Errorf("draw candidate %d: %w", res.Attempts, err)
		}
		if len(res.Values) == 0 {
			res.Values = append(res.Values, candidate)
			continue
		}
		tentative := append(slices.Clip(res.Values), candidate)
		if accept(tentative) {
			res.Values = tentative
		}
	}

	for i := len(res.Values); i < target; i++ {
		res.Values = append(res.Values, fallback(i))
		res.FallbackCount++
	}
	return res, nil
}
