package generators

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
)

// Multiplication modes.
const (
	ModeTable = "table"
	ModeRange = "range"
)

var multiplicationSchema = schema.MustNew(
	[]schema.Category{
		{
			ID:       "factors",
			Label:    "Factors",
			Expanded: true,
			Parameters: []schema.Parameter{
				schema.Select("mode", "Mode", []schema.Option{
					{Value: ModeTable, Label: "Times Table", Description: "One factor is fixed"},
					{Value: ModeRange, Label: "Range", Description: "Both factors come from the range"},
				}, schema.Required(), schema.Variant("buttons")),
				schema.Number("table", "Times Table", schema.Range(1, 20), schema.Integer(),
					schema.Describe("The fixed factor in times-table mode"), schema.QuickValues(2, 5, 10)),
				schema.Number("minFactor", "Minimum Factor", schema.Range(0, 9999), schema.Integer(), schema.Required()),
				schema.Number("maxFactor", "Maximum Factor", schema.Range(0, 9999), schema.Integer(), schema.Required()),
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
		{ID: "times-tables", Label: "Times Tables", Values: schema.Values{"mode": ModeTable, "minFactor": 1, "maxFactor": 12}},
		{ID: "two-by-one", Label: "Two-Digit by One-Digit", Values: schema.Values{"mode": ModeRange, "minFactor": 2, "maxFactor": 99}},
		{ID: "long", Label: "Long Multiplication", Values: schema.Values{"mode": ModeRange, "minFactor": 10, "maxFactor": 999}},
	},
)

type multiplicationConfig struct {
	Mode      string `mapstructure:"mode"`
	Table     int    `mapstructure:"table"`
	MinFactor int    `mapstructure:"minFactor"`
	MaxFactor int    `mapstructure:"maxFactor"`
	ShowSteps bool   `mapstructure:"showSteps"`
}

// Multiplication generates products of two factors, either drilling one
// times table or drawing both factors from a range.
type Multiplication struct {
	problemgen.Base
}

// NewMultiplication returns a multiplication generator drawing from src.
func NewMultiplication(src rng.Source) *Multiplication {
	return &Multiplication{Base: problemgen.NewBase(problemgen.Config{
		Descriptor: problemgen.Descriptor{
			Name:          "Multiplication",
			Description:   "Times tables and multi-digit products",
			Category:      "arithmetic",
			Difficulty:    problemgen.DifficultyIntermediate,
			Icon:          "✖️",
			Tags:          []string{"multiplication", "product", "times tables"},
			GradeLevel:    "3-5",
			EstimatedTime: "1 minute",
			ExampleProblem: problemgen.Problem{
				Question:      "What is 7 × 8?",
				QuestionLaTeX: `7 \times 8`,
				Answer:        "56",
				AnswerLaTeX:   "56",
			},
		},
		Defaults: schema.Values{
			"mode":      ModeTable,
			"table":     7,
			"minFactor": 1,
			"maxFactor": 12,
			"showSteps": true,
		},
		Schema: multiplicationSchema,
		Rules: []problemgen.Rule{
			problemgen.MustExprRule("minFactor <= maxFactor", "Minimum factor cannot be greater than maximum factor"),
			problemgen.MustExprRule(`mode != "table" || table != nil`, "Times table mode needs a table"),
		},
		Source: src,
	})}
}

func (g *Multiplication) GenerateProblem(partial schema.Values) (*problemgen.Problem, error) {
	return problemgen.Run(&g.Base, partial, g.produce)
}

func (g *Multiplication) produce(cfg multiplicationConfig) (*problemgen.Problem, error) {
	other, err := g.RandomNumber(cfg.MinFactor, cfg.MaxFactor)
	if err != nil {
		return nil, err
	}

	var a, b int
	switch cfg.Mode {
	case ModeTable:
		a, b = cfg.Table, other
		if rng.Bool(g.Source()) {
			a, b = b, a
		}
	default:
		first, err := g.RandomNumber(cfg.MinFactor, cfg.MaxFactor)
		if err != nil {
			return nil, err
		}
		a, b = first, other
	}
	product := a * b

	steps := []string{}
	if cfg.ShowSteps {
		steps = multiplicationSteps(a, b)
	}

	meta := problemgen.NewMetadata("multiplication", difficultyFor(a, b), estimate(10*digitCount(a)*digitCount(b)))
	meta[problemgen.MetaAnswerType] = string(problemgen.AnswerTypeInteger)
	meta["factors"] = []int{a, b}
	meta["mode"] = cfg.Mode

	answer := strconv.Itoa(product)
	return &problemgen.Problem{
		Question:      fmt.Sprintf("What is %d × %d?", a, b),
		QuestionLaTeX: fmt.Sprintf(`%d \times %d`, a, b),
		Answer:        answer,
		AnswerLaTeX:   answer,
		Steps:         steps,
		Metadata:      meta,
	}, nil
}

// multiplicationSteps splits the second factor by place value and adds the
// partial products.
func multiplicationSteps(a, b int) []string {
	if b < 10 {
		return []string{fmt.Sprintf("%d × %d = %d.", a, b, a*b)}
	}

	var parts []int
	place := 1
	for n := b; n > 0; n /= 10 {
		if d := n % 10; d > 0 {
			parts = append([]int{d * place}, parts...)
		}
		place *= 10
	}

	split := make([]string, len(parts))
	products := make([]string, len(parts))
	steps := []string{}
	for i, p := range parts {
		split[i] = strconv.Itoa(p)
		products[i] = strconv.Itoa(a * p)
	}
	steps = append(steps, fmt.Sprintf("Split %d into %s.", b, strings.Join(split, " + ")))
	for _, p := range parts {
		steps = append(steps, fmt.Sprintf("%d × %d = %d.", a, p, a*p))
	}
	if len(parts) > 1 {
		steps = append(steps, fmt.Sprintf("Add the partial products: %s = %d.", strings.Join(products, " + "), a*b))
	}
	return append(steps, fmt.Sprintf("The product is %d.", a*b))
}
