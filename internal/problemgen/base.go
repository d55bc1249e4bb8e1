package problemgen

import (
	"fmt"
	"slices"

	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
)

// Base carries the parts of a generator that are the same for every
// domain: descriptor, defaults, schema, rules, output validators and the
// random source. Concrete generators embed it and implement
// GenerateProblem on top of Run.
type Base struct {
	descriptor Descriptor
	defaults   schema.Values
	schema     *schema.Schema
	rules      []Rule
	validators []Validator
	src        rng.Source
}

// NewBase builds a Base from cfg. Generators call it from their
// constructors with package-level declarations, so an inconsistent
// declaration (no schema, defaults that do not validate) is a programming
// error and panics.
func NewBase(cfg Config) Base {
	if cfg.Schema == nil {
		panic(fmt.Sprintf("problemgen: generator %q has no parameter schema", cfg.Descriptor.Name))
	}
	for _, key := range sortedKeys(cfg.Defaults) {
		if !cfg.Schema.Has(key) {
			panic(fmt.Sprintf("problemgen: generator %q default %q is not a declared parameter", cfg.Descriptor.Name, key))
		}
	}
	if res := schema.Validate(cfg.Schema, cfg.Defaults); !res.IsValid {
		panic(fmt.Sprintf("problemgen: generator %q has invalid defaults: %v", cfg.Descriptor.Name, res.Errors))
	}

	validators := cfg.Validators
	if validators == nil {
		validators = DefaultValidators()
	}
	src := cfg.Source
	if src == nil {
		src = rng.Default()
	}

	return Base{
		descriptor: cfg.Descriptor,
		defaults:   cfg.Defaults.Clone(),
		schema:     cfg.Schema,
		rules:      slices.Clone(cfg.Rules),
		validators: slices.Clone(validators),
		src:        src,
	}
}

// Descriptor returns the static description of the generator.
func (b *Base) Descriptor() Descriptor { return b.descriptor }

// DefaultParameters returns a fresh copy of the defaults.
func (b *Base) DefaultParameters() schema.Values { return b.defaults.Clone() }

// ParameterSchema returns the generator's schema.
func (b *Base) ParameterSchema() *schema.Schema { return b.schema }

// ValidateParameters runs the structural validation engine on instance.
func (b *Base) ValidateParameters(instance schema.Values) schema.Result {
	return schema.Validate(b.schema, instance)
}

// Source returns the random source the generator draws from.
func (b *Base) Source() rng.Source { return b.src }

// RandomNumber returns a uniform integer in [min, max], inclusive.
func (b *Base) RandomNumber(min, max int) (int, error) {
	return rng.Int(b.src, min, max)
}
