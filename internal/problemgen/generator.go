package problemgen

import "github.com/abhisek/mathgen/internal/schema"

// Generator produces randomized practice problems from a parameter set.
type Generator interface {
	// Descriptor returns the static description of the generator.
	Descriptor() Descriptor

	// DefaultParameters returns a fresh copy of the default parameter set.
	DefaultParameters() schema.Values

	// ParameterSchema returns the generator's immutable parameter schema.
	ParameterSchema() *schema.Schema

	// GenerateProblem merges partial over the defaults, validates the
	// result and produces a problem. Invalid parameters fail with a
	// *ConfigurationError listing every violation.
	GenerateProblem(partial schema.Values) (*Problem, error)

	// ValidateParameters checks instance against the parameter schema. It
	// has no side effects and performs no cross-field checks.
	ValidateParameters(instance schema.Values) schema.Result
}

// Resolver is implemented by generators built on Base. Resolve returns the
// fully validated parameter set GenerateProblem would use.
type Resolver interface {
	Resolve(partial schema.Values) (schema.Values, error)
}
