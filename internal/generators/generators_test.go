package generators

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	gens := All(rng.New(1))
	require.Len(t, gens, len(Factories()))

	names := map[string]bool{}
	for _, g := range gens {
		d := g.Descriptor()
		assert.NotEmpty(t, d.Name)
		assert.False(t, names[d.Name], "duplicate generator name %q", d.Name)
		names[d.Name] = true
		assert.NotNil(t, g.ParameterSchema())
		assert.True(t, g.ValidateParameters(g.DefaultParameters()).IsValid, d.Name)
	}
}

func TestGenerators_ProblemsAreCheckable(t *testing.T) {
	for i, factory := range Factories() {
		g := factory(rng.New(uint64(100 + i)))
		name := g.Descriptor().Name

		overrides := []schema.Values{nil}
		for _, p := range g.ParameterSchema().Presets() {
			overrides = append(overrides, p.Values)
		}

		for _, partial := range overrides {
			for n := 0; n < 50; n++ {
				p, err := g.GenerateProblem(partial)
				require.NoError(t, err, "%s with %v", name, partial)

				for _, key := range []string{problemgen.MetaOperation, problemgen.MetaDifficulty, problemgen.MetaEstimatedTime} {
					assert.NotEmpty(t, p.Metadata.String(key), "%s: metadata %q", name, key)
				}
				assert.True(t, problemgen.CheckAnswer(p.Answer, p), "%s: own answer %q rejected for %q", name, p.Answer, p.Question)
				assert.NotNil(t, p.Steps)
			}
		}
	}
}

func TestGenerators_Reproducible(t *testing.T) {
	for _, factory := range Factories() {
		a, b := factory(rng.New(9)), factory(rng.New(9))
		for n := 0; n < 10; n++ {
			pa, err := a.GenerateProblem(nil)
			require.NoError(t, err)
			pb, err := b.GenerateProblem(nil)
			require.NoError(t, err)
			assert.Equal(t, pa, pb)
		}
	}
}

func TestGenerators_RejectUnknownParameters(t *testing.T) {
	for _, g := range All(rng.New(1)) {
		_, err := g.GenerateProblem(schema.Values{"noSuchParameter": 1})
		require.Error(t, err)
		assert.True(t, problemgen.IsConfigurationError(err))
		assert.Contains(t, err.Error(), `unknown parameter "noSuchParameter"`)
	}
}

// convertNumbers rewrites every numeric value of v with conv.
func convertNumbers(v schema.Values, conv func(f float64) any) schema.Values {
	out := v.Clone()
	for k, val := range out {
		if f, ok := schema.AsFloat(val); ok {
			out[k] = conv(f)
		}
	}
	return out
}

func TestGenerators_ResolvedParametersStayValid(t *testing.T) {
	for _, g := range All(rng.New(4)) {
		name := g.Descriptor().Name
		resolver, ok := g.(problemgen.Resolver)
		require.True(t, ok, name)

		for n := 0; n < 2; n++ {
			params, err := resolver.Resolve(nil)
			require.NoError(t, err, name)
			assert.True(t, g.ValidateParameters(params).IsValid, "%s: call %d", name, n)

			_, err = g.GenerateProblem(params)
			require.NoError(t, err, "%s: call %d", name, n)
		}
	}
}

func TestGenerators_AcceptEveryNumberKind(t *testing.T) {
	kinds := []struct {
		name string
		conv func(f float64) any
	}{
		{"json.Number", func(f float64) any { return json.Number(strconv.FormatFloat(f, 'f', -1, 64)) }},
		{"int64", func(f float64) any { return int64(f) }},
		{"uint16", func(f float64) any {
			if f < 0 {
				return int32(f)
			}
			return uint16(f)
		}},
		{"float64", func(f float64) any { return f }},
		{"float32", func(f float64) any { return float32(f) }},
	}
	for _, kind := range kinds {
		t.Run(kind.name, func(t *testing.T) {
			for _, g := range All(rng.New(8)) {
				name := g.Descriptor().Name
				partial := convertNumbers(g.DefaultParameters(), kind.conv)
				require.True(t, g.ValidateParameters(partial).IsValid, name)

				for n := 0; n < 5; n++ {
					_, err := g.GenerateProblem(partial)
					require.NoError(t, err, "%s with %v", name, partial)
				}
			}
		})
	}

	t.Run("mixed kinds", func(t *testing.T) {
		g := NewAddition(rng.New(1))
		for _, partial := range []schema.Values{
			{"minValue": json.Number("9"), "maxValue": json.Number("10")},
			{"minValue": int8(9), "maxValue": json.Number("10")},
			{"minValue": 9.0, "maxValue": uint64(10)},
		} {
			params, err := g.Resolve(partial)
			require.NoError(t, err, "%v", partial)
			require.True(t, g.ValidateParameters(params).IsValid)
			p, err := g.GenerateProblem(partial)
			require.NoError(t, err, "%v", partial)
			for _, n := range addends(t, p) {
				assert.True(t, n >= 9 && n <= 10, p.Question)
			}
		}

		_, err := g.GenerateProblem(schema.Values{"minValue": json.Number("12"), "maxValue": json.Number("10")})
		require.Error(t, err)
		assert.Equal(t, "Minimum value cannot be greater than maximum value", err.Error())
	})
}

func TestCarries(t *testing.T) {
	cases := []struct {
		nums []int
		want bool
	}{
		{[]int{12, 34}, false},
		{[]int{15, 5}, true},
		{[]int{45, 73}, true},
		{[]int{111, 222, 333}, false},
		{[]int{3, 3, 4}, true},
		{[]int{-15, -5}, true},
		{[]int{-15, 5}, false},
		{[]int{-5, 7}, false},
		{[]int{0, 0}, false},
		{[]int{1000, 9}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, carries(tc.nums), "%v", tc.nums)
	}
}

func TestBorrows(t *testing.T) {
	cases := []struct {
		a, b int
		want bool
	}{
		{58, 23, false},
		{52, 28, true},
		{500, 1, true},
		{999, 999, false},
		{100, 0, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, borrows(tc.a, tc.b), "%d - %d", tc.a, tc.b)
	}
}

func TestEstimate(t *testing.T) {
	assert.Equal(t, "30 seconds", estimate(30))
	assert.Equal(t, "1 minute", estimate(60))
	assert.Equal(t, "2 minutes", estimate(61))
}
