package generators

import (
	"testing"

	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtraction_NonNegativeByDefault(t *testing.T) {
	g := NewSubtraction(rng.New(8))
	for i := 0; i < 100; i++ {
		p, err := g.GenerateProblem(nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.Metadata["minuend"], p.Metadata["subtrahend"], p.Question)
		assert.NotContains(t, p.Answer, "-")
	}
}

func TestSubtraction_Borrowing(t *testing.T) {
	g := NewSubtraction(rng.New(4))
	for _, policy := range []string{RegroupRequire, RegroupAvoid} {
		for i := 0; i < 50; i++ {
			p, err := g.GenerateProblem(schema.Values{"minValue": 100, "maxValue": 999, "borrowing": policy})
			require.NoError(t, err)
			if p.Metadata.Bool("samplingFallback") {
				continue
			}
			assert.Equal(t, policy == RegroupRequire, p.Metadata.Bool("borrowing"), "%s: %s", policy, p.Question)
		}
	}
}

func TestSubtraction_NegativeResults(t *testing.T) {
	g := NewSubtraction(rng.New(2))
	sawNegative := false
	for i := 0; i < 100; i++ {
		p, err := g.GenerateProblem(schema.Values{"allowNegativeResults": true, "maxValue": 20})
		require.NoError(t, err)
		if p.Answer[0] == '-' {
			sawNegative = true
		}
	}
	assert.True(t, sawNegative)
}

func TestSubtractionSteps(t *testing.T) {
	assert.Equal(t, []string{
		"Subtract the ones: 2 is less than 8, so borrow 1 from the tens. 12 - 8 = 4.",
		"Subtract the tens: 4 - 2 = 2.",
		"The difference is 24.",
	}, subtractionSteps(52, 28))

	assert.Equal(t, []string{
		"8 is larger than 3, so the result is negative.",
		"Compute 8 - 3 = 5.",
		"The difference is -5.",
	}, subtractionSteps(3, 8))
}
