package generators

import (
	"fmt"
	"testing"

	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractionSimplification(t *testing.T) {
	g := NewFractionSimplification(rng.New(12))
	params := schema.Values{"maxDenominator": 30, "minFactor": 3, "maxFactor": 5}
	for i := 0; i < 100; i++ {
		p, err := g.GenerateProblem(params)
		require.NoError(t, err)

		var shownNum, shownDen, num, den int
		_, err = fmt.Sscanf(p.Question, "Simplify %d/%d.", &shownNum, &shownDen)
		require.NoError(t, err)
		_, err = fmt.Sscanf(p.Answer, "%d/%d", &num, &den)
		require.NoError(t, err)

		assert.LessOrEqual(t, shownDen, 30)
		assert.Equal(t, 1, gcd(num, den), p.Answer)
		assert.Greater(t, den, 1)
		assert.Less(t, num, den, "proper fractions only")

		common := p.Metadata["commonFactor"].(int)
		assert.GreaterOrEqual(t, common, 3)
		assert.LessOrEqual(t, common, 5)
		assert.Equal(t, shownNum, num*common)
		assert.Equal(t, shownDen, den*common)
	}
}

func TestFractionSimplification_Improper(t *testing.T) {
	g := NewFractionSimplification(rng.New(3))
	sawImproper := false
	for i := 0; i < 100; i++ {
		p, err := g.GenerateProblem(schema.Values{"allowImproper": true})
		require.NoError(t, err)
		if p.Metadata.Bool("improper") {
			sawImproper = true
		}
	}
	assert.True(t, sawImproper)
}

func TestFractionSimplification_Rules(t *testing.T) {
	g := NewFractionSimplification(rng.New(1))
	_, err := g.GenerateProblem(schema.Values{"maxDenominator": 10, "minFactor": 6, "maxFactor": 8})
	require.Error(t, err)
	assert.Equal(t, "Maximum denominator must be at least twice the minimum factor", err.Error())
}
