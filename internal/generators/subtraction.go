package generators

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/sampling"
	"github.com/abhisek/mathgen/internal/schema"
)

var subtractionSchema = schema.MustNew(
	[]schema.Category{
		{
			ID:       "numbers",
			Label:    "Numbers",
			Icon:     "🔢",
			Expanded: true,
			Parameters: []schema.Parameter{
				schema.Number("minValue", "Minimum Value", schema.Range(0, 99999), schema.Integer(), schema.Required()),
				schema.Number("maxValue", "Maximum Value", schema.Range(0, 99999), schema.Integer(), schema.Required(),
					schema.QuickValues(10, 20, 100, 1000)),
				schema.Boolean("allowNegativeResults", "Allow Negative Results",
					schema.HelpText("The second number may be larger than the first")),
			},
		},
		{
			ID:    "regrouping",
			Label: "Regrouping",
			Order: 1,
			Parameters: []schema.Parameter{
				schema.Select("borrowing", "Borrowing", regroupOptions("borrowing"), schema.Required(), schema.Variant("radio")),
			},
		},
		{
			ID:    "display",
			Label: "Display",
			Order: 2,
			Parameters: []schema.Parameter{
				schema.Select("layout", "Layout", layoutOptions, schema.Variant("buttons")),
				schema.Boolean("showSteps", "Show Steps"),
			},
		},
	},
	[]schema.Preset{
		{ID: "basic", Label: "Within 20", Values: schema.Values{"minValue": 0, "maxValue": 20, "borrowing": RegroupAny}},
		{ID: "no-borrowing", Label: "No Borrowing", Values: schema.Values{"minValue": 10, "maxValue": 99, "borrowing": RegroupAvoid}},
		{ID: "borrowing", Label: "With Borrowing", Values: schema.Values{"minValue": 100, "maxValue": 999, "borrowing": RegroupRequire}},
	},
)

type subtractionConfig struct {
	MinValue             int    `mapstructure:"minValue"`
	MaxValue             int    `mapstructure:"maxValue"`
	AllowNegativeResults bool   `mapstructure:"allowNegativeResults"`
	Borrowing            string `mapstructure:"borrowing"`
	Layout               string `mapstructure:"layout"`
	ShowSteps            bool   `mapstructure:"showSteps"`
}

// Subtraction generates differences of two whole numbers with an optional
// borrowing policy.
type Subtraction struct {
	problemgen.Base
}

// NewSubtraction returns a subtraction generator drawing from src.
func NewSubtraction(src rng.Source) *Subtraction {
	return &Subtraction{Base: problemgen.NewBase(problemgen.Config{
		Descriptor: problemgen.Descriptor{
			Name:          "Subtraction",
			Description:   "Subtract whole numbers, with control over borrowing",
			Category:      "arithmetic",
			Difficulty:    problemgen.DifficultyBeginner,
			Icon:          "➖",
			Tags:          []string{"subtraction", "difference", "borrowing", "regrouping"},
			GradeLevel:    "1-4",
			EstimatedTime: "1 minute",
			ExampleProblem: problemgen.Problem{
				Question:      "What is 503 - 278?",
				QuestionLaTeX: "503 - 278",
				Answer:        "225",
				AnswerLaTeX:   "225",
			},
		},
		Defaults: schema.Values{
			"minValue":             0,
			"maxValue":             100,
			"allowNegativeResults": false,
			"borrowing":            RegroupAny,
			"layout":               LayoutHorizontal,
			"showSteps":            true,
		},
		Schema: subtractionSchema,
		Rules: []problemgen.Rule{
			problemgen.MustExprRule("minValue <= maxValue", "Minimum value cannot be greater than maximum value"),
		},
		Source: src,
	})}
}

func (g *Subtraction) GenerateProblem(partial schema.Values) (*problemgen.Problem, error) {
	return problemgen.Run(&g.Base, partial, g.produce)
}

// ordered returns the operands as minuend and subtrahend, larger first
// unless negative results are allowed.
func (cfg subtractionConfig) ordered(a, b int) (int, int) {
	if !cfg.AllowNegativeResults && a < b {
		return b, a
	}
	return a, b
}

func (g *Subtraction) produce(cfg subtractionConfig) (*problemgen.Problem, error) {
	fallbackValue := 1
	if cfg.Borrowing == RegroupRequire {
		fallbackValue = 9
	}

	res, err := sampling.UnderConstraint(2, sampling.DefaultMaxAttempts,
		func() (int, error) { return g.RandomNumber(cfg.MinValue, cfg.MaxValue) },
		func(set []int) bool {
			a, b := cfg.ordered(set[0], set[1])
			switch cfg.Borrowing {
			case RegroupRequire:
				return needsBorrow(a, b)
			case RegroupAvoid:
				return !needsBorrow(a, b)
			default:
				return true
			}
		},
		func(int) int { return fallbackValue },
	)
	if err != nil {
		return nil, err
	}
	a, b := cfg.ordered(res.Values[0], res.Values[1])
	diff := a - b

	expression := fmt.Sprintf("%d - %d", a, b)
	questionLaTeX := expression
	if cfg.Layout == LayoutVertical {
		questionLaTeX = verticalLaTeX("-", []int{a, b})
	}

	steps := []string{}
	if cfg.ShowSteps {
		steps = subtractionSteps(a, b)
	}

	meta := problemgen.NewMetadata("subtraction", difficultyFor(a, b), estimate(15*digitCount(max(a, b))))
	meta[problemgen.MetaAnswerType] = string(problemgen.AnswerTypeInteger)
	meta[problemgen.MetaSamplingFallback] = res.FallbackUsed()
	meta["samplingAttempts"] = res.Attempts
	meta["minuend"] = a
	meta["subtrahend"] = b
	meta["borrowing"] = needsBorrow(a, b)
	meta["layout"] = cfg.Layout

	answer := strconv.Itoa(diff)
	return &problemgen.Problem{
		Question:      fmt.Sprintf("What is %s?", expression),
		QuestionLaTeX: questionLaTeX,
		Answer:        answer,
		AnswerLaTeX:   answer,
		Steps:         steps,
		Metadata:      meta,
	}, nil
}

// needsBorrow checks the magnitude subtraction, so a - b with a < b is
// judged as b - a.
func needsBorrow(a, b int) bool {
	if a < b {
		a, b = b, a
	}
	return borrows(a, b)
}

func subtractionSteps(a, b int) []string {
	if a < b {
		return []string{
			fmt.Sprintf("%d is larger than %d, so the result is negative.", b, a),
			fmt.Sprintf("Compute %d - %d = %d.", b, a, b-a),
			fmt.Sprintf("The difference is %d.", a-b),
		}
	}

	var steps []string
	top, bottom := a, b
	borrowed := 0
	for col := 0; bottom > 0 || borrowed > 0; col++ {
		td := top%10 - borrowed
		bd := bottom % 10
		borrowed = 0
		if td < bd {
			steps = append(steps, fmt.Sprintf("Subtract the %s: %d is less than %d, so borrow 1 from the %s. %d - %d = %d.",
				placeName(col), td, bd, placeName(col+1), td+10, bd, td+10-bd))
			borrowed = 1
		} else {
			steps = append(steps, fmt.Sprintf("Subtract the %s: %d - %d = %d.", placeName(col), td, bd, td-bd))
		}
		top /= 10
		bottom /= 10
	}
	return append(steps, fmt.Sprintf("The difference is %d.", a-b))
}
