// Package rng is the randomness port used by problem generators. All
// sampling goes through a Source so tests can inject seeded sources and get
// reproducible problems.
package rng

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

var (
	// ErrInvalidRange is returned by Int when max < min.
	ErrInvalidRange = errors.New("rng: invalid range")

	// ErrEmptyCollection is returned by Element when there is nothing to pick.
	ErrEmptyCollection = errors.New("rng: empty collection")
)

// Source yields uniformly distributed floats in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// New returns a seeded PCG source. It is not safe for concurrent use; wrap
// it with Locked when it is shared between goroutines.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Locked makes src safe for concurrent use.
func Locked(src Source) Source {
	if _, ok := src.(*lockedSource); ok {
		return src
	}
	return &lockedSource{src: src}
}

type globalSource struct{}

// Float64 uses the runtime-seeded top-level generator, which is already
// safe for concurrent use.
func (globalSource) Float64() float64 { return rand.Float64() }

// Default returns the process-wide source. It is unseeded and safe for
// concurrent use.
func Default() Source { return globalSource{} }

// Int returns a uniform integer in [min, max], both ends inclusive, using
// floor(u*(max-min+1)) + min.
func Int(src Source, min, max int) (int, error) {
	if max < min {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, min, max)
	}
	span := float64(max) - float64(min) + 1
	n := int(math.Floor(src.Float64()*span)) + min
	// Guard against float rounding at the top of very wide ranges.
	if n > max {
		n = max
	}
	return n, nil
}

// Element returns a uniformly chosen element of items.
func Element[T any](src Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyCollection
	}
	i := int(math.Floor(src.Float64() * float64(len(items))))
	if i >= len(items) {
		i = len(items) - 1
	}
	return items[i], nil
}

// Bool returns true with probability one half.
func Bool(src Source) bool {
	return src.Float64() < 0.5
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := int(math.Floor(src.Float64() * float64(i+1)))
		if j > i {
			j = i
		}
		items[i], items[j] = items[j], items[i]
	}
}
