package generators

import (
	"fmt"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
)

var fractionSchema = schema.MustNew(
	[]schema.Category{
		{
			ID:       "fractions",
			Label:    "Fractions",
			Expanded: true,
			Parameters: []schema.Parameter{
				schema.Number("maxDenominator", "Maximum Denominator", schema.Range(4, 144), schema.Integer(), schema.Required(),
					schema.Describe("Largest denominator shown in the unsimplified fraction")),
				schema.Number("minFactor", "Minimum Common Factor", schema.Range(2, 12), schema.Integer(), schema.Required()),
				schema.Number("maxFactor", "Maximum Common Factor", schema.Range(2, 12), schema.Integer(), schema.Required()),
				schema.Boolean("allowImproper", "Allow Improper Fractions",
					schema.HelpText("The numerator may exceed the denominator")),
			},
		},
		{
			ID:    "display",
			Label: "Display",
			Order: 1,
			Parameters: []schema.Parameter{
				schema.Boolean("showSteps", "Show Steps"),
			},
		},
	},
	[]schema.Preset{
		{ID: "halves-and-quarters", Label: "Small Denominators", Values: schema.Values{"maxDenominator": 12, "minFactor": 2, "maxFactor": 3}},
		{ID: "improper", Label: "Improper Fractions", Values: schema.Values{"maxDenominator": 36, "allowImproper": true}},
	},
)

type fractionConfig struct {
	MaxDenominator int  `mapstructure:"maxDenominator"`
	MinFactor      int  `mapstructure:"minFactor"`
	MaxFactor      int  `mapstructure:"maxFactor"`
	AllowImproper  bool `mapstructure:"allowImproper"`
	ShowSteps      bool `mapstructure:"showSteps"`
}

// FractionSimplification asks for a fraction in lowest terms. The shown
// fraction is a reduced fraction scaled by a common factor.
type FractionSimplification struct {
	problemgen.Base
}

// NewFractionSimplification returns a fraction simplification generator
// drawing from src.
func NewFractionSimplification(src rng.Source) *FractionSimplification {
	return &FractionSimplification{Base: problemgen.NewBase(problemgen.Config{
		Descriptor: problemgen.Descriptor{
			Name:          "Fraction Simplification",
			Description:   "Reduce fractions to lowest terms",
			Category:      "fractions",
			Difficulty:    problemgen.DifficultyIntermediate,
			Icon:          "½",
			Tags:          []string{"fractions", "simplify", "lowest terms", "gcd"},
			GradeLevel:    "4-6",
			EstimatedTime: "1 minute",
			ExampleProblem: problemgen.Problem{
				Question:      "Simplify 12/18.",
				QuestionLaTeX: `\frac{12}{18}`,
				Answer:        "2/3",
				AnswerLaTeX:   `\frac{2}{3}`,
			},
		},
		Defaults: schema.Values{
			"maxDenominator": 24,
			"minFactor":      2,
			"maxFactor":      6,
			"allowImproper":  false,
			"showSteps":      true,
		},
		Schema: fractionSchema,
		Rules: []problemgen.Rule{
			problemgen.MustExprRule("minFactor <= maxFactor", "Minimum factor cannot be greater than maximum factor"),
			problemgen.MustExprRule("maxDenominator >= 2 * minFactor", "Maximum denominator must be at least twice the minimum factor"),
		},
		Source: src,
	})}
}

func (g *FractionSimplification) GenerateProblem(partial schema.Values) (*problemgen.Problem, error) {
	return problemgen.Run(&g.Base, partial, g.produce)
}

func (g *FractionSimplification) produce(cfg fractionConfig) (*problemgen.Problem, error) {
	factor, err := g.RandomNumber(cfg.MinFactor, min(cfg.MaxFactor, cfg.MaxDenominator/2))
	if err != nil {
		return nil, err
	}
	den, err := g.RandomNumber(2, cfg.MaxDenominator/factor)
	if err != nil {
		return nil, err
	}
	maxNum := den - 1
	if cfg.AllowImproper {
		maxNum = 2 * den
	}
	num, err := g.RandomNumber(1, maxNum)
	if err != nil {
		return nil, err
	}

	// Whole numbers are nudged down one so the answer stays a fraction.
	if num%den == 0 {
		num--
	}
	d := gcd(num, den)
	num, den = num/d, den/d

	shownNum, shownDen := num*factor, den*factor
	common := gcd(shownNum, shownDen)

	steps := []string{}
	if cfg.ShowSteps {
		steps = []string{
			fmt.Sprintf("Find the greatest common factor of %d and %d: %d.", shownNum, shownDen, common),
			fmt.Sprintf("Divide both by %d: %d ÷ %d = %d and %d ÷ %d = %d.", common, shownNum, common, num, shownDen, common, den),
			fmt.Sprintf("%d/%d = %d/%d.", shownNum, shownDen, num, den),
		}
	}

	meta := problemgen.NewMetadata("fraction-simplification", problemgen.DifficultyIntermediate, estimate(20+5*digitCount(shownDen)))
	meta[problemgen.MetaAnswerType] = string(problemgen.AnswerTypeFraction)
	meta["commonFactor"] = common
	meta["improper"] = num > den

	answer := fmt.Sprintf("%d/%d", num, den)
	return &problemgen.Problem{
		Question:      fmt.Sprintf("Simplify %d/%d.", shownNum, shownDen),
		QuestionLaTeX: fmt.Sprintf(`\frac{%d}{%d}`, shownNum, shownDen),
		Answer:        answer,
		AnswerLaTeX:   fmt.Sprintf(`\frac{%d}{%d}`, num, den),
		Steps:         steps,
		Metadata:      meta,
	}, nil
}
