package problemgen

import (
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
)

// Config is everything a generator hands to NewBase.
type Config struct {
	Descriptor Descriptor
	Defaults   schema.Values
	Schema     *schema.Schema

	// Rules are the generator's cross-field checks. They run in order, and
	// only after structural validation has passed.
	Rules []Rule

	// Validators is the ordered list of validators run on every generated
	// problem. They execute in order; the first failure stops the pipeline.
	// Nil means DefaultValidators.
	Validators []Validator

	// Source feeds every random draw. Nil means rng.Default().
	Source rng.Source
}

// DefaultValidators returns the standard output validator chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&AnswerFormatValidator{},
		&MathCheckValidator{},
	}
}
