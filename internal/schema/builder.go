package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidSchema is returned by New when the declared categories,
// parameters or presets break a schema invariant.
var ErrInvalidSchema = errors.New("schema: invalid schema")

var descriptorValidator = validator.New()

// ParamOption customizes a Parameter built by Number, Boolean or Select.
type ParamOption func(*Parameter)

// Required marks the parameter as required.
func Required() ParamOption {
	return func(p *Parameter) { p.Required = true }
}

// Describe sets the help description shown next to the parameter.
func Describe(description string) ParamOption {
	return func(p *Parameter) { p.Description = description }
}

// Order sets the presentation order within the category.
func Order(n int) ParamOption {
	return func(p *Parameter) { p.Order = n }
}

// Range sets both numeric bounds (inclusive).
func Range(min, max float64) ParamOption {
	return func(p *Parameter) {
		p.Min = &min
		p.Max = &max
	}
}

// Min sets the inclusive lower bound.
func Min(min float64) ParamOption {
	return func(p *Parameter) { p.Min = &min }
}

// Max sets the inclusive upper bound.
func Max(max float64) ParamOption {
	return func(p *Parameter) { p.Max = &max }
}

// Integer restricts a number parameter to whole numbers.
func Integer() ParamOption {
	return func(p *Parameter) { p.Integer = true }
}

// Slider hints that the parameter renders as a slider.
func Slider() ParamOption {
	return func(p *Parameter) { p.Slider = true }
}

// QuickValues lists suggested values offered next to a number input.
func QuickValues(values ...float64) ParamOption {
	return func(p *Parameter) { p.QuickValues = slices.Clone(values) }
}

// Variant selects the presentation variant of a select parameter
// ("dropdown", "radio", "buttons").
func Variant(v string) ParamOption {
	return func(p *Parameter) { p.Variant = v }
}

// HelpText sets the inline help of a boolean parameter.
func HelpText(text string) ParamOption {
	return func(p *Parameter) { p.HelpText = text }
}

// Number declares a numeric parameter.
func Number(key, label string, opts ...ParamOption) Parameter {
	return build(Parameter{Key: key, Type: TypeNumber, Label: label}, opts)
}

// Boolean declares a true/false parameter.
func Boolean(key, label string, opts ...ParamOption) Parameter {
	return build(Parameter{Key: key, Type: TypeBoolean, Label: label}, opts)
}

// Select declares a parameter whose value must be one of options.
func Select(key, label string, options []Option, opts ...ParamOption) Parameter {
	return build(Parameter{Key: key, Type: TypeSelect, Label: label, Options: slices.Clone(options)}, opts)
}

func build(p Parameter, opts []ParamOption) Parameter {
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewCategory returns a copy of c that does not share its parameter slice
// with the caller.
func NewCategory(c Category) Category {
	c.Parameters = slices.Clone(c.Parameters)
	return c
}

// NewPreset returns a copy of p that does not share its values with the
// caller.
func NewPreset(p Preset) Preset {
	p.Values = p.Values.Clone()
	return p
}

// Overlay returns base with every key of overlay applied on top. Keys not
// present in overlay keep their base value; base is not modified.
func Overlay(base, overlay Values) (Values, error) {
	out := base.Clone()
	if len(overlay) == 0 {
		return out, nil
	}
	if err := mergo.Merge(&out, overlay.Clone(), mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("overlay values: %w", err)
	}
	return out, nil
}

// ApplyPreset overlays the preset's values on defaults.
func ApplyPreset(defaults Values, p Preset) (Values, error) {
	return Overlay(defaults, p.Values)
}

// New assembles categories and presets into an immutable Schema. Every
// invariant is checked up front and all violations are reported together.
func New(categories []Category, presets []Preset) (*Schema, error) {
	s := &Schema{
		byKey:      make(map[string]int),
		presetByID: make(map[string]int, len(presets)),
	}

	var errs []string
	categoryIDs := make(map[string]bool, len(categories))

	for _, c := range categories {
		c = NewCategory(c)
		if err := descriptorValidator.Struct(c); err != nil {
			errs = append(errs, describeFieldErrors(fmt.Sprintf("category %q", c.ID), err)...)
		}
		if categoryIDs[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate category id %q", c.ID))
		}
		categoryIDs[c.ID] = true

		for _, p := range c.Parameters {
			if _, dup := s.byKey[p.Key]; dup {
				errs = append(errs, fmt.Sprintf("duplicate parameter key %q", p.Key))
				continue
			}
			errs = append(errs, checkParameter(p)...)
			s.byKey[p.Key] = len(s.params)
			s.params = append(s.params, p)
		}
		s.categories = append(s.categories, c)
	}

	for _, p := range presets {
		p = NewPreset(p)
		if err := descriptorValidator.Struct(p); err != nil {
			errs = append(errs, describeFieldErrors(fmt.Sprintf("preset %q", p.ID), err)...)
		}
		if _, dup := s.presetByID[p.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate preset id %q", p.ID))
			continue
		}
		for _, key := range sortedKeys(p.Values) {
			param, ok := s.Parameter(key)
			if !ok {
				errs = append(errs, fmt.Sprintf("preset %q sets undeclared parameter %q", p.ID, key))
				continue
			}
			if msg := checkValue(param, p.Values[key]); msg != "" {
				errs = append(errs, fmt.Sprintf("preset %q: %s", p.ID, msg))
			}
		}
		s.presetByID[p.ID] = len(s.presets)
		s.presets = append(s.presets, p)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w:\n  %s", ErrInvalidSchema, strings.Join(errs, "\n  "))
	}
	return s, nil
}

// MustNew is New for package-level schema declarations; it panics on an
// invalid schema.
func MustNew(categories []Category, presets []Preset) *Schema {
	s, err := New(categories, presets)
	if err != nil {
		panic(err)
	}
	return s
}

// checkParameter reports type-specific invariant violations of p.
func checkParameter(p Parameter) []string {
	var errs []string
	if err := descriptorValidator.Struct(p); err != nil {
		errs = append(errs, describeFieldErrors(fmt.Sprintf("parameter %q", p.Key), err)...)
	}
	switch p.Type {
	case TypeNumber:
		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			errs = append(errs, fmt.Sprintf("parameter %q: min %s exceeds max %s",
				p.Key, formatNumber(*p.Min), formatNumber(*p.Max)))
		}
	case TypeSelect:
		if len(p.Options) == 0 {
			errs = append(errs, fmt.Sprintf("parameter %q: select requires at least one option", p.Key))
		}
		seen := make(map[string]bool, len(p.Options))
		for _, o := range p.Options {
			if seen[o.Value] {
				errs = append(errs, fmt.Sprintf("parameter %q: duplicate option value %q", p.Key, o.Value))
			}
			seen[o.Value] = true
		}
	}
	return errs
}

func describeFieldErrors(where string, err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{fmt.Sprintf("%s: %v", where, err)}
	}
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fmt.Sprintf("%s: %s failed %q", where, fe.Namespace(), fe.Tag()))
	}
	return out
}

func sortedKeys(v Values) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
