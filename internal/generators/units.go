package generators

import (
	"fmt"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
	"github.com/shopspring/decimal"
)

// Measurement systems and quantities for unit conversion.
const (
	SystemMetric    = "metric"
	SystemCustomary = "customary"

	QuantityLength   = "length"
	QuantityMass     = "mass"
	QuantityCapacity = "capacity"
)

// unit is a measurement unit expressed as a multiple of the smallest unit
// of its table.
type unit struct {
	Symbol   string
	Singular string
	Plural   string
	Factor   decimal.Decimal
}

func (un unit) name(v decimal.Decimal) string {
	if v.Equal(decimal.NewFromInt(1)) {
		return un.Singular
	}
	return un.Plural
}

func newUnit(symbol, singular, plural string, factor int64) unit {
	return unit{Symbol: symbol, Singular: singular, Plural: plural, Factor: decimal.NewFromInt(factor)}
}

// unitTables holds, per system and quantity, units ordered from smallest
// to largest.
var unitTables = map[string]map[string][]unit{
	SystemMetric: {
		QuantityLength: {
			newUnit("mm", "millimetre", "millimetres", 1),
			newUnit("cm", "centimetre", "centimetres", 10),
			newUnit("m", "metre", "metres", 1000),
			newUnit("km", "kilometre", "kilometres", 1000000),
		},
		QuantityMass: {
			newUnit("mg", "milligram", "milligrams", 1),
			newUnit("g", "gram", "grams", 1000),
			newUnit("kg", "kilogram", "kilograms", 1000000),
		},
		QuantityCapacity: {
			newUnit("mL", "millilitre", "millilitres", 1),
			newUnit("cL", "centilitre", "centilitres", 10),
			newUnit("L", "litre", "litres", 1000),
		},
	},
	SystemCustomary: {
		QuantityLength: {
			newUnit("in", "inch", "inches", 1),
			newUnit("ft", "foot", "feet", 12),
			newUnit("yd", "yard", "yards", 36),
			newUnit("mi", "mile", "miles", 63360),
		},
		QuantityMass: {
			newUnit("oz", "ounce", "ounces", 1),
			newUnit("lb", "pound", "pounds", 16),
			newUnit("ton", "ton", "tons", 32000),
		},
		QuantityCapacity: {
			newUnit("fl oz", "fluid ounce", "fluid ounces", 1),
			newUnit("c", "cup", "cups", 8),
			newUnit("pt", "pint", "pints", 16),
			newUnit("qt", "quart", "quarts", 32),
			newUnit("gal", "gallon", "gallons", 128),
		},
	},
}

var unitSchema = schema.MustNew(
	[]schema.Category{
		{
			ID:       "units",
			Label:    "Units",
			Icon:     "📏",
			Expanded: true,
			Parameters: []schema.Parameter{
				schema.Select("system", "Measurement System", []schema.Option{
					{Value: SystemMetric, Label: "Metric"},
					{Value: SystemCustomary, Label: "US Customary"},
				}, schema.Required(), schema.Variant("buttons")),
				schema.Select("quantity", "Quantity", []schema.Option{
					{Value: QuantityLength, Label: "Length"},
					{Value: QuantityMass, Label: "Mass"},
					{Value: QuantityCapacity, Label: "Capacity"},
				}, schema.Required()),
			},
		},
		{
			ID:    "values",
			Label: "Values",
			Order: 1,
			Parameters: []schema.Parameter{
				schema.Number("maxValue", "Maximum Value", schema.Range(1, 10000), schema.Integer(), schema.Required()),
				schema.Number("decimalPlaces", "Decimal Places", schema.Range(0, 3), schema.Integer(), schema.Required(),
					schema.Describe("Decimal places in the value to convert"), schema.Slider()),
			},
		},
		{
			ID:    "display",
			Label: "Display",
			Order: 2,
			Parameters: []schema.Parameter{
				schema.Boolean("showSteps", "Show Steps"),
			},
		},
	},
	[]schema.Preset{
		{ID: "metric-length", Label: "Metric Length", Values: schema.Values{"system": SystemMetric, "quantity": QuantityLength}},
		{ID: "kitchen", Label: "Kitchen Measures", Values: schema.Values{"system": SystemCustomary, "quantity": QuantityCapacity, "maxValue": 20}},
		{ID: "decimals", Label: "Decimal Values", Values: schema.Values{"decimalPlaces": 2}},
	},
)

type unitConfig struct {
	System        string `mapstructure:"system"`
	Quantity      string `mapstructure:"quantity"`
	MaxValue      int    `mapstructure:"maxValue"`
	DecimalPlaces int    `mapstructure:"decimalPlaces"`
	ShowSteps     bool   `mapstructure:"showSteps"`
}

// UnitConversion converts a measurement between two units of one system.
// Arithmetic is exact; customary conversions always go to a smaller unit
// so the answer terminates.
type UnitConversion struct {
	problemgen.Base
}

// NewUnitConversion returns a unit conversion generator drawing from src.
func NewUnitConversion(src rng.Source) *UnitConversion {
	return &UnitConversion{Base: problemgen.NewBase(problemgen.Config{
		Descriptor: problemgen.Descriptor{
			Name:          "Unit Conversion",
			Description:   "Convert lengths, masses and capacities within a measurement system",
			Category:      "measurement",
			Difficulty:    problemgen.DifficultyIntermediate,
			Icon:          "📏",
			Tags:          []string{"measurement", "units", "conversion", "metric", "customary"},
			GradeLevel:    "4-6",
			EstimatedTime: "1 minute",
			ExampleProblem: problemgen.Problem{
				Question:      "Convert 2.5 kilometres to metres.",
				QuestionLaTeX: `2.5\,\text{km} = \,?\,\text{m}`,
				Answer:        "2500",
				AnswerLaTeX:   `2500\,\text{m}`,
			},
		},
		Defaults: schema.Values{
			"system":        SystemMetric,
			"quantity":      QuantityLength,
			"maxValue":      100,
			"decimalPlaces": 1,
			"showSteps":     true,
		},
		Schema: unitSchema,
		Source: src,
	})}
}

func (g *UnitConversion) GenerateProblem(partial schema.Values) (*problemgen.Problem, error) {
	return problemgen.Run(&g.Base, partial, g.produce)
}

func (g *UnitConversion) produce(cfg unitConfig) (*problemgen.Problem, error) {
	table := unitTables[cfg.System][cfg.Quantity]
	if len(table) < 2 {
		return nil, problemgen.Reject(fmt.Sprintf("no %s units for %s", cfg.System, cfg.Quantity))
	}

	i, err := g.RandomNumber(0, len(table)-1)
	if err != nil {
		return nil, err
	}
	j, err := g.RandomNumber(0, len(table)-2)
	if err != nil {
		return nil, err
	}
	if j >= i {
		j++
	}
	from, to := table[i], table[j]
	if cfg.System == SystemCustomary && from.Factor.LessThan(to.Factor) {
		from, to = to, from
	}

	scale := int64(1)
	for k := 0; k < cfg.DecimalPlaces; k++ {
		scale *= 10
	}
	raw, err := g.RandomNumber(1, cfg.MaxValue*int(scale))
	if err != nil {
		return nil, err
	}
	value := decimal.New(int64(raw), -int32(cfg.DecimalPlaces))

	var result decimal.Decimal
	var ratio decimal.Decimal
	multiply := from.Factor.GreaterThan(to.Factor)
	if multiply {
		ratio = from.Factor.Div(to.Factor)
		result = value.Mul(ratio)
	} else {
		ratio = to.Factor.Div(from.Factor)
		result = value.Div(ratio)
	}

	steps := []string{}
	if cfg.ShowSteps {
		if multiply {
			steps = append(steps,
				fmt.Sprintf("1 %s = %s %s.", from.Singular, ratio, to.Plural),
				fmt.Sprintf("Multiply: %s × %s = %s.", value, ratio, result))
		} else {
			steps = append(steps,
				fmt.Sprintf("1 %s = %s %s.", to.Singular, ratio, from.Plural),
				fmt.Sprintf("Divide: %s ÷ %s = %s.", value, ratio, result))
		}
		steps = append(steps, fmt.Sprintf("%s %s = %s %s.", value, from.Symbol, result, to.Symbol))
	}

	meta := problemgen.NewMetadata("unit-conversion", difficultyForConversion(cfg, multiply), estimate(30+15*cfg.DecimalPlaces))
	meta[problemgen.MetaAnswerType] = string(problemgen.AnswerTypeDecimal)
	meta["system"] = cfg.System
	meta["quantity"] = cfg.Quantity
	meta["fromUnit"] = from.Symbol
	meta["toUnit"] = to.Symbol

	answer := result.String()
	return &problemgen.Problem{
		Question:      fmt.Sprintf("Convert %s %s to %s.", value, from.name(value), to.Plural),
		QuestionLaTeX: fmt.Sprintf(`%s\,\text{%s} = \,?\,\text{%s}`, value, from.Symbol, to.Symbol),
		Answer:        answer,
		AnswerLaTeX:   fmt.Sprintf(`%s\,\text{%s}`, answer, to.Symbol),
		Steps:         steps,
		Metadata:      meta,
	}, nil
}

func difficultyForConversion(cfg unitConfig, multiply bool) problemgen.Difficulty {
	switch {
	case cfg.DecimalPlaces == 0 && multiply:
		return problemgen.DifficultyBeginner
	case cfg.DecimalPlaces >= 2 || cfg.System == SystemCustomary:
		return problemgen.DifficultyAdvanced
	default:
		return problemgen.DifficultyIntermediate
	}
}
