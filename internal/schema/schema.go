// Package schema describes the configurable surface of a problem generator:
// typed parameters grouped into categories, plus named presets, and the
// structural validation of a concrete parameter set against that description.
package schema

import "slices"

// ParamType is the value type of a Parameter.
type ParamType string

const (
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeSelect  ParamType = "select"
)

// Values is a parameter set: parameter key to value. Values produced by
// decoding JSON or YAML documents are accepted as-is; numbers may be any Go
// integer or float kind.
type Values map[string]any

// Clone returns a shallow copy of v. Parameter values are scalars, so a
// shallow copy is a full copy.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Option is one allowed value of a select Parameter.
type Option struct {
	Value       string `json:"value" validate:"required"`
	Label       string `json:"label" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Parameter is a single typed, described configuration field.
type Parameter struct {
	Key         string    `json:"key" validate:"required"`
	Type        ParamType `json:"type" validate:"oneof=number boolean select"`
	Label       string    `json:"label" validate:"required"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required"`
	Order       int       `json:"order"`

	// number
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Integer     bool      `json:"integer,omitempty"`
	Slider      bool      `json:"slider,omitempty"`
	QuickValues []float64 `json:"presets,omitempty"`

	// select
	Options []Option `json:"options,omitempty" validate:"dive"`
	Variant string   `json:"variant,omitempty"`

	// boolean
	HelpText string `json:"helpText,omitempty"`
}

// OptionValues returns the allowed values of a select parameter in
// declaration order.
func (p Parameter) OptionValues() []string {
	out := make([]string, len(p.Options))
	for i, o := range p.Options {
		out[i] = o.Value
	}
	return out
}

// Category groups parameters for presentation. It carries no validation
// semantics of its own.
type Category struct {
	ID          string      `json:"id" validate:"required"`
	Label       string      `json:"label" validate:"required"`
	Description string      `json:"description,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	Color       string      `json:"color,omitempty"`
	Order       int         `json:"order"`
	Expanded    bool        `json:"expanded,omitempty"`
	Parameters  []Parameter `json:"parameters"`
}

// Preset is a named, possibly partial, bundle of parameter values applied as
// an overlay on top of a generator's defaults.
type Preset struct {
	ID          string `json:"id" validate:"required"`
	Label       string `json:"label" validate:"required"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category,omitempty"`
	Values      Values `json:"values"`
}

// Schema is the full declarative description of a generator's parameters.
// A Schema is immutable once built by New and safe for concurrent reads.
type Schema struct {
	categories []Category
	presets    []Preset
	params     []Parameter
	byKey      map[string]int
	presetByID map[string]int
}

// Categories returns the categories in declaration order.
func (s *Schema) Categories() []Category {
	out := make([]Category, len(s.categories))
	for i, c := range s.categories {
		out[i] = c
		out[i].Parameters = slices.Clone(c.Parameters)
	}
	return out
}

// SortedCategories returns the categories ordered by their Order field,
// with parameters inside each category ordered the same way. Ties keep
// declaration order.
func (s *Schema) SortedCategories() []Category {
	out := s.Categories()
	slices.SortStableFunc(out, func(a, b Category) int { return a.Order - b.Order })
	for i := range out {
		slices.SortStableFunc(out[i].Parameters, func(a, b Parameter) int { return a.Order - b.Order })
	}
	return out
}

// Presets returns the presets in declaration order.
func (s *Schema) Presets() []Preset {
	out := make([]Preset, len(s.presets))
	for i, p := range s.presets {
		out[i] = p
		out[i].Values = p.Values.Clone()
	}
	return out
}

// Parameters returns every parameter in category-then-declaration order.
func (s *Schema) Parameters() []Parameter {
	return slices.Clone(s.params)
}

// Parameter returns the parameter declared under key.
func (s *Schema) Parameter(key string) (Parameter, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return Parameter{}, false
	}
	return s.params[i], true
}

// Has reports whether key names a declared parameter.
func (s *Schema) Has(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

// Keys returns every parameter key in validation order.
func (s *Schema) Keys() []string {
	out := make([]string, len(s.params))
	for i, p := range s.params {
		out[i] = p.Key
	}
	return out
}

// Preset returns the preset with the given id.
func (s *Schema) Preset(id string) (Preset, bool) {
	i, ok := s.presetByID[id]
	if !ok {
		return Preset{}, false
	}
	p := s.presets[i]
	p.Values = p.Values.Clone()
	return p, true
}
