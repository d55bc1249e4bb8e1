package rng

import (
	"errors"
	"sync"
	"testing"
)

// fixedSource returns the same value on every call.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestInt_Bounds(t *testing.T) {
	src := New(42)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		n, err := Int(src, 1, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n < 1 || n > 3 {
			t.Fatalf("Int(1, 3) = %d, out of range", n)
		}
		seen[n] = true
	}
	for _, want := range []int{1, 2, 3} {
		if !seen[want] {
			t.Errorf("value %d never produced in 10000 draws", want)
		}
	}
}

func TestInt_Formula(t *testing.T) {
	tests := []struct {
		u        float64
		min, max int
		want     int
	}{
		{0, 1, 3, 1},
		{0.34, 1, 3, 2},
		{0.999999, 1, 3, 3},
		{0.5, -5, 5, 0},
		{0.7, 4, 4, 4},
	}
	for _, tc := range tests {
		got, err := Int(fixedSource(tc.u), tc.min, tc.max)
		if err != nil {
			t.Fatalf("Int(%v, %d, %d): %v", tc.u, tc.min, tc.max, err)
		}
		if got != tc.want {
			t.Errorf("Int(%v, %d, %d) = %d, want %d", tc.u, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestInt_InvalidRange(t *testing.T) {
	_, err := Int(New(1), 5, 4)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestElement(t *testing.T) {
	src := New(7)
	for i := 0; i < 100; i++ {
		got, err := Element(src, []string{"a"})
		if err != nil || got != "a" {
			t.Fatalf("Element([a]) = %q, %v", got, err)
		}
	}

	if _, err := Element(src, []int{}); !errors.Is(err, ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}

	got, _ := Element(fixedSource(0.5), []int{10, 20, 30, 40})
	if got != 30 {
		t.Errorf("Element(u=0.5) = %d, want 30", got)
	}
}

func TestNew_Reproducible(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 50; i++ {
		x, _ := Int(a, 0, 1000)
		y, _ := Int(b, 0, 1000)
		if x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestShuffle_Permutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	Shuffle(New(3), items)
	sum := 0
	for _, v := range items {
		sum += v
	}
	if sum != 21 || len(items) != 6 {
		t.Errorf("shuffle lost elements: %v", items)
	}
}

func TestLocked_Concurrent(t *testing.T) {
	src := Locked(New(5))
	if Locked(src) != src {
		t.Error("Locked should not double wrap")
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if n, err := Int(src, 0, 9); err != nil || n < 0 || n > 9 {
					t.Errorf("Int = %d, %v", n, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestDefault(t *testing.T) {
	n, err := Int(Default(), 10, 20)
	if err != nil || n < 10 || n > 20 {
		t.Fatalf("Int(Default) = %d, %v", n, err)
	}
}
