// Package generators holds the built-in problem generators. Each one
// declares its parameter schema once at package level and produces problems
// through problemgen.Run.
package generators

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/rng"
)

// Factory builds a generator that draws from src.
type Factory func(src rng.Source) problemgen.Generator

// Factories returns a constructor for every built-in generator, in
// presentation order.
func Factories() []Factory {
	return []Factory{
		func(src rng.Source) problemgen.Generator { return NewAddition(src) },
		func(src rng.Source) problemgen.Generator { return NewSubtraction(src) },
		func(src rng.Source) problemgen.Generator { return NewMultiplication(src) },
		func(src rng.Source) problemgen.Generator { return NewFractionSimplification(src) },
		func(src rng.Source) problemgen.Generator { return NewUnitConversion(src) },
	}
}

// All builds every built-in generator over one shared source.
func All(src rng.Source) []problemgen.Generator {
	factories := Factories()
	out := make([]problemgen.Generator, len(factories))
	for i, f := range factories {
		out[i] = f(src)
	}
	return out
}

var placeNames = []string{"ones", "tens", "hundreds", "thousands", "ten thousands", "hundred thousands", "millions"}

func placeName(i int) string {
	if i < len(placeNames) {
		return placeNames[i]
	}
	return fmt.Sprintf("10^%d", i)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func digitCount(n int) int {
	return len(strconv.Itoa(abs(n)))
}

// operand renders n for a question, with negatives in parentheses.
func operand(n int) string {
	if n < 0 {
		return "(" + strconv.Itoa(n) + ")"
	}
	return strconv.Itoa(n)
}

// difficultyFor grades a problem by the widest operand.
func difficultyFor(nums ...int) problemgen.Difficulty {
	width := 0
	for _, n := range nums {
		width = max(width, digitCount(n))
	}
	switch {
	case width <= 2:
		return problemgen.DifficultyBeginner
	case width == 3:
		return problemgen.DifficultyIntermediate
	default:
		return problemgen.DifficultyAdvanced
	}
}

func estimate(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	}
	minutes := (seconds + 59) / 60
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// carries reports whether adding nums column by column produces a carry in
// any column. The check runs on magnitudes of same-sign addends; a set that
// mixes signs is a difference in disguise and never carries.
func carries(nums []int) bool {
	if mixedSigns(nums) {
		return false
	}
	vals := make([]int, len(nums))
	for i, n := range nums {
		vals[i] = abs(n)
	}
	for {
		sum, rest := 0, false
		for i, v := range vals {
			sum += v % 10
			vals[i] = v / 10
			if vals[i] > 0 {
				rest = true
			}
		}
		if sum >= 10 {
			return true
		}
		if !rest {
			return false
		}
	}
}

// mixedSigns reports whether nums holds both a negative and a positive value.
func mixedSigns(nums []int) bool {
	neg, pos := false, false
	for _, n := range nums {
		neg = neg || n < 0
		pos = pos || n > 0
	}
	return neg && pos
}

// borrows reports whether a - b needs a borrow in any column, for
// a >= b >= 0.
func borrows(a, b int) bool {
	for b > 0 {
		if a%10 < b%10 {
			return true
		}
		a /= 10
		b /= 10
	}
	return false
}

func gcd(a, b int) int {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
