package generators

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/sampling"
	"github.com/abhisek/mathgen/internal/schema"
)

// Regrouping policies shared by addition (carrying) and subtraction
// (borrowing).
const (
	RegroupAny     = "any"
	RegroupRequire = "require"
	RegroupAvoid   = "avoid"
)

// Layouts for written arithmetic.
const (
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"
)

func regroupOptions(verb string) []schema.Option {
	return []schema.Option{
		{Value: RegroupAny, Label: "Any", Description: "Do not constrain " + verb},
		{Value: RegroupRequire, Label: "Require", Description: "Every problem needs " + verb},
		{Value: RegroupAvoid, Label: "Avoid", Description: "No problem needs " + verb},
	}
}

var layoutOptions = []schema.Option{
	{Value: LayoutHorizontal, Label: "Horizontal"},
	{Value: LayoutVertical, Label: "Vertical", Description: "Stacked in columns"},
}

var additionSchema = schema.MustNew(
	[]schema.Category{
		{
			ID:       "numbers",
			Label:    "Numbers",
			Icon:     "🔢",
			Expanded: true,
			Parameters: []schema.Parameter{
				schema.Number("minValue", "Minimum Value", schema.Range(-9999, 99999), schema.Integer(), schema.Required(),
					schema.Describe("Smallest addend")),
				schema.Number("maxValue", "Maximum Value", schema.Range(-9999, 99999), schema.Integer(), schema.Required(),
					schema.Describe("Largest addend"), schema.QuickValues(10, 20, 100, 1000)),
				schema.Number("addendCount", "Number of Addends", schema.Range(2, 6), schema.Integer(), schema.Required(),
					schema.Slider()),
				schema.Boolean("allowNegatives", "Allow Negative Numbers",
					schema.HelpText("Addends may be negative")),
			},
		},
		{
			ID:    "regrouping",
			Label: "Regrouping",
			Order: 1,
			Parameters: []schema.Parameter{
				schema.Select("carrying", "Carrying", regroupOptions("carrying"), schema.Required(), schema.Variant("radio"),
					schema.HelpText("Applies to addends that share a sign")),
			},
		},
		{
			ID:    "display",
			Label: "Display",
			Order: 2,
			Parameters: []schema.Parameter{
				schema.Select("layout", "Layout", layoutOptions, schema.Variant("buttons")),
				schema.Boolean("showSteps", "Show Steps", schema.HelpText("Include a worked solution")),
			},
		},
	},
	[]schema.Preset{
		{ID: "basic", Label: "Basic Facts", Icon: "🌱", Category: "numbers",
			Values: schema.Values{"minValue": 0, "maxValue": 10, "addendCount": 2, "carrying": RegroupAny}},
		{ID: "regrouping", Label: "Two-Digit Carrying", Category: "regrouping",
			Values: schema.Values{"minValue": 10, "maxValue": 99, "addendCount": 2, "carrying": RegroupRequire}},
		{ID: "challenge", Label: "Challenge", Icon: "🏆",
			Values: schema.Values{"minValue": 100, "maxValue": 9999, "addendCount": 4, "layout": LayoutVertical}},
	},
)

var additionRules = []problemgen.Rule{
	problemgen.MustExprRule("minValue <= maxValue", "Minimum value cannot be greater than maximum value"),
	problemgen.MustExprRule("allowNegatives || minValue >= 0", "Minimum value cannot be negative unless negative numbers are allowed"),
}

type additionConfig struct {
	MinValue       int    `mapstructure:"minValue"`
	MaxValue       int    `mapstructure:"maxValue"`
	AddendCount    int    `mapstructure:"addendCount"`
	AllowNegatives bool   `mapstructure:"allowNegatives"`
	Carrying       string `mapstructure:"carrying"`
	Layout         string `mapstructure:"layout"`
	ShowSteps      bool   `mapstructure:"showSteps"`
}

// Addition generates sums of two or more addends with an optional carrying
// policy.
type Addition struct {
	problemgen.Base
}

// NewAddition returns an addition generator drawing from src. A nil src
// uses the process-wide source.
func NewAddition(src rng.Source) *Addition {
	return &Addition{Base: problemgen.NewBase(problemgen.Config{
		Descriptor: problemgen.Descriptor{
			Name:          "Addition",
			Description:   "Add whole numbers, with control over carrying",
			Category:      "arithmetic",
			Difficulty:    problemgen.DifficultyBeginner,
			Icon:          "➕",
			Tags:          []string{"addition", "sum", "carrying", "regrouping"},
			GradeLevel:    "1-4",
			EstimatedTime: "1 minute",
			ExampleProblem: problemgen.Problem{
				Question:      "What is 345 + 278?",
				QuestionLaTeX: "345 + 278",
				Answer:        "623",
				AnswerLaTeX:   "623",
			},
		},
		Defaults: schema.Values{
			"minValue":       1,
			"maxValue":       100,
			"addendCount":    2,
			"allowNegatives": false,
			"carrying":       RegroupAny,
			"layout":         LayoutHorizontal,
			"showSteps":      true,
		},
		Schema: additionSchema,
		Rules:  additionRules,
		Source: src,
	})}
}

func (g *Addition) GenerateProblem(partial schema.Values) (*problemgen.Problem, error) {
	return problemgen.Run(&g.Base, partial, g.produce)
}

func (g *Addition) produce(cfg additionConfig) (*problemgen.Problem, error) {
	lo, hi := cfg.MinValue, cfg.MaxValue
	if cfg.AllowNegatives && lo >= 0 {
		lo = -hi
	}

	fallbackValue := 1
	if cfg.Carrying == RegroupRequire {
		fallbackValue = 9
	}
	if cfg.MaxValue < 0 {
		fallbackValue = -fallbackValue
	}

	res, err := sampling.UnderConstraint(cfg.AddendCount, sampling.DefaultMaxAttempts,
		func() (int, error) { return g.RandomNumber(lo, hi) },
		func(set []int) bool {
			if mixedSigns(set) {
				return true
			}
			switch cfg.Carrying {
			case RegroupRequire:
				return carries(set)
			case RegroupAvoid:
				return !carries(set)
			default:
				return true
			}
		},
		func(int) int { return fallbackValue },
	)
	if err != nil {
		return nil, err
	}
	addends := res.Values

	sum := 0
	terms := make([]string, len(addends))
	for i, n := range addends {
		sum += n
		terms[i] = operand(n)
	}
	expression := strings.Join(terms, " + ")

	questionLaTeX := expression
	if cfg.Layout == LayoutVertical {
		questionLaTeX = verticalLaTeX("+", addends)
	}

	steps := []string{}
	if cfg.ShowSteps {
		steps = additionSteps(addends, sum)
	}

	difficulty := difficultyFor(addends...)
	meta := problemgen.NewMetadata("addition", difficulty, estimate(10*len(addends)*digitCount(sum)))
	meta[problemgen.MetaAnswerType] = string(problemgen.AnswerTypeInteger)
	meta[problemgen.MetaSamplingFallback] = res.FallbackUsed()
	meta["samplingAttempts"] = res.Attempts
	meta["addends"] = addends
	meta["carrying"] = carries(addends)
	meta["layout"] = cfg.Layout

	answer := strconv.Itoa(sum)
	return &problemgen.Problem{
		Question:      fmt.Sprintf("What is %s?", expression),
		QuestionLaTeX: questionLaTeX,
		Answer:        answer,
		AnswerLaTeX:   answer,
		Steps:         steps,
		Metadata:      meta,
	}, nil
}

// verticalLaTeX stacks operands right-aligned with the operator on the
// last row.
func verticalLaTeX(op string, nums []int) string {
	var b strings.Builder
	b.WriteString(`\begin{array}{r} `)
	for i, n := range nums {
		if i == len(nums)-1 {
			b.WriteString(op + `\ `)
		}
		b.WriteString(strconv.Itoa(n))
		b.WriteString(` \\ `)
	}
	b.WriteString(`\hline \end{array}`)
	return b.String()
}

func additionSteps(addends []int, sum int) []string {
	for _, n := range addends {
		if n < 0 {
			return runningTotalSteps(addends, sum)
		}
	}

	var steps []string
	vals := append([]int(nil), addends...)
	carry := 0
	for col := 0; ; col++ {
		var digits []string
		colSum := carry
		rest := false
		for i, v := range vals {
			if v == 0 && col > 0 {
				continue
			}
			d := v % 10
			colSum += d
			digits = append(digits, strconv.Itoa(d))
			vals[i] = v / 10
			if vals[i] > 0 {
				rest = true
			}
		}
		if len(digits) == 0 {
			if carry > 0 {
				steps = append(steps, fmt.Sprintf("Bring down the carried %d into the %s.", carry, placeName(col)))
			}
			break
		}
		expr := strings.Join(digits, " + ")
		if carry > 0 {
			expr += fmt.Sprintf(" + %d (carried)", carry)
		}
		carry = colSum / 10
		if carry > 0 {
			steps = append(steps, fmt.Sprintf("Add the %s: %s = %d. Write %d, carry %d.", placeName(col), expr, colSum, colSum%10, carry))
		} else {
			steps = append(steps, fmt.Sprintf("Add the %s: %s = %d.", placeName(col), expr, colSum))
		}
		if !rest && carry == 0 {
			break
		}
	}
	return append(steps, fmt.Sprintf("The sum is %d.", sum))
}

func runningTotalSteps(addends []int, sum int) []string {
	steps := []string{fmt.Sprintf("Start with %d.", addends[0])}
	total := addends[0]
	for _, n := range addends[1:] {
		next := total + n
		steps = append(steps, fmt.Sprintf("Add %s: %d + %s = %d.", operand(n), total, operand(n), next))
		total = next
	}
	return append(steps, fmt.Sprintf("The sum is %d.", sum))
}
