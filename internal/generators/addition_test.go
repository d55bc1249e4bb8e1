package generators

import (
	"testing"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addends(t *testing.T, p *problemgen.Problem) []int {
	t.Helper()
	v, ok := p.Metadata["addends"].([]int)
	require.True(t, ok, "addends metadata missing")
	return v
}

func TestAddition_Carrying(t *testing.T) {
	g := NewAddition(rng.New(3))

	t.Run("Should carry when required", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			p, err := g.GenerateProblem(schema.Values{"minValue": 10, "maxValue": 99, "carrying": RegroupRequire})
			require.NoError(t, err)
			if !p.Metadata.Bool(problemgen.MetaSamplingFallback) {
				assert.True(t, carries(addends(t, p)), p.Question)
			}
		}
	})

	t.Run("Should not carry when avoided", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			p, err := g.GenerateProblem(schema.Values{"minValue": 10, "maxValue": 99, "addendCount": 3, "carrying": RegroupAvoid})
			require.NoError(t, err)
			if !p.Metadata.Bool(problemgen.MetaSamplingFallback) {
				assert.False(t, carries(addends(t, p)), p.Question)
			}
		}
	})
}

func TestAddition_MixedSignsSkipCarryPolicy(t *testing.T) {
	g := NewAddition(rng.New(5))
	mixed := 0
	for i := 0; i < 200; i++ {
		p, err := g.GenerateProblem(schema.Values{
			"minValue": -5, "maxValue": 7, "allowNegatives": true, "carrying": RegroupAvoid,
		})
		require.NoError(t, err)
		got := addends(t, p)
		if mixedSigns(got) {
			mixed++
			assert.False(t, p.Metadata.Bool(problemgen.MetaSamplingFallback), p.Question)
			assert.False(t, p.Metadata.Bool("carrying"), p.Question)
		} else if !p.Metadata.Bool(problemgen.MetaSamplingFallback) {
			assert.False(t, carries(got), p.Question)
		}
	}
	assert.Positive(t, mixed)
	assert.False(t, carries([]int{-5, 7}))
}

func TestAddition_FallbackOnUnsatisfiableConstraint(t *testing.T) {
	g := NewAddition(rng.New(11))

	// Any two values in 95..99 carry in the ones column.
	p, err := g.GenerateProblem(schema.Values{"minValue": 95, "maxValue": 99, "addendCount": 4, "carrying": RegroupAvoid})
	require.NoError(t, err)

	got := addends(t, p)
	require.Len(t, got, 4)
	assert.Equal(t, []int{1, 1, 1}, got[1:])
	assert.True(t, p.Metadata.Bool(problemgen.MetaSamplingFallback))
	assert.Equal(t, 100, p.Metadata["samplingAttempts"])
}

func TestAddition_FallbackRespectsSign(t *testing.T) {
	g := NewAddition(rng.New(11))
	// -10 + -10 never carries, so every slot after the first falls back.
	p, err := g.GenerateProblem(schema.Values{
		"minValue": -10, "maxValue": -10, "allowNegatives": true, "carrying": RegroupRequire,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{-10, -9}, addends(t, p))
	assert.Equal(t, "What is (-10) + (-9)?", p.Question)
	assert.Equal(t, "-19", p.Answer)
}

func TestAddition_Rules(t *testing.T) {
	g := NewAddition(rng.New(1))

	_, err := g.GenerateProblem(schema.Values{"minValue": 50, "maxValue": 10})
	require.Error(t, err)
	assert.Equal(t, "Minimum value cannot be greater than maximum value", err.Error())

	_, err = g.GenerateProblem(schema.Values{"minValue": -5})
	require.Error(t, err)
	assert.Equal(t, "Minimum value cannot be negative unless negative numbers are allowed", err.Error())

	_, err = g.GenerateProblem(schema.Values{"addendCount": 9, "carrying": "sometimes"})
	require.Error(t, err)
	assert.Equal(t, "Number of Addends must be between 2 and 6, Carrying must be one of: any, require, avoid", err.Error())
}

func TestAddition_NegativesWidenRange(t *testing.T) {
	g := NewAddition(rng.New(21))
	sawNegative := false
	for i := 0; i < 50; i++ {
		p, err := g.GenerateProblem(schema.Values{"minValue": 0, "maxValue": 20, "allowNegatives": true})
		require.NoError(t, err)
		for _, n := range addends(t, p) {
			assert.GreaterOrEqual(t, n, -20)
			assert.LessOrEqual(t, n, 20)
			if n < 0 {
				sawNegative = true
			}
		}
	}
	assert.True(t, sawNegative)
}

func TestAddition_Display(t *testing.T) {
	g := NewAddition(rng.New(5))

	p, err := g.GenerateProblem(schema.Values{"layout": LayoutVertical, "showSteps": false})
	require.NoError(t, err)
	assert.Contains(t, p.QuestionLaTeX, `\begin{array}{r}`)
	assert.Empty(t, p.Steps)

	p, err = g.GenerateProblem(schema.Values{"minValue": 345, "maxValue": 345})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Add the ones: 5 + 5 = 10. Write 0, carry 1.",
		"Add the tens: 4 + 4 + 1 (carried) = 9.",
		"Add the hundreds: 3 + 3 = 6.",
		"The sum is 690.",
	}, p.Steps)
}

func TestAdditionSteps_FinalCarry(t *testing.T) {
	steps := additionSteps([]int{95, 7}, 102)
	assert.Equal(t, []string{
		"Add the ones: 5 + 7 = 12. Write 2, carry 1.",
		"Add the tens: 9 + 1 (carried) = 10. Write 0, carry 1.",
		"Bring down the carried 1 into the hundreds.",
		"The sum is 102.",
	}, steps)
}
