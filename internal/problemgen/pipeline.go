package problemgen

import (
	"fmt"
	"slices"

	"github.com/abhisek/mathgen/internal/schema"
	"github.com/go-viper/mapstructure/v2"
)

// Merge overlays partial on defaults. Keys absent from partial keep their
// default value; neither argument is modified.
func Merge(defaults, partial schema.Values) (schema.Values, error) {
	return schema.Overlay(defaults, partial)
}

// Resolve turns a caller's partial override into a fully resolved,
// validated parameter set: unknown keys are rejected, the override is
// merged over the defaults, numbers are normalized to int or float64, the
// result is checked against the schema, and the generator's rules run only
// if that structural check passed. Every violation is reported in one
// *ConfigurationError.
func (b *Base) Resolve(partial schema.Values) (schema.Values, error) {
	var structural []string
	for _, key := range sortedKeys(partial) {
		if !b.schema.Has(key) {
			structural = append(structural, fmt.Sprintf("unknown parameter %q", key))
		}
	}

	merged, err := Merge(b.defaults, partial)
	if err != nil {
		return nil, err
	}
	params := schema.Normalize(merged)

	res := schema.Validate(b.schema, params)
	structural = append(structural, res.Errors...)
	if len(structural) > 0 {
		return nil, &ConfigurationError{Structural: structural}
	}

	var custom []string
	for _, rule := range b.rules {
		if msg := rule(params); msg != "" {
			custom = append(custom, msg)
		}
	}
	if len(custom) > 0 {
		return nil, &ConfigurationError{Custom: custom}
	}
	return params, nil
}

// Decode converts a resolved parameter set into the generator's typed
// configuration struct (fields tagged `mapstructure:"key"`). A key the
// struct does not declare is an error.
func Decode[C any](params schema.Values) (C, error) {
	var cfg C
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(map[string]any(params)); err != nil {
		return cfg, fmt.Errorf("decode parameters: %w", err)
	}
	return cfg, nil
}

// Run is the generation pipeline every generator's GenerateProblem goes
// through: resolve, structural validation, custom rules, typed decode,
// produce, then the output validators. produce only ever sees a config
// that passed validation.
func Run[C any](b *Base, partial schema.Values, produce func(cfg C) (*Problem, error)) (*Problem, error) {
	params, err := b.Resolve(partial)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode[C](params)
	if err != nil {
		return nil, err
	}

	p, err := produce(cfg)
	if err != nil {
		return nil, err
	}
	if p.Metadata == nil {
		p.Metadata = Metadata{}
	}

	for _, v := range b.validators {
		if verr := v.Validate(p); verr != nil {
			return nil, verr
		}
	}
	return p, nil
}

func sortedKeys(v schema.Values) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
