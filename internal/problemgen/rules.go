package problemgen

import (
	"fmt"

	"github.com/abhisek/mathgen/internal/schema"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Rule is a cross-field check over a structurally valid parameter set. It
// returns the violation message, or "" when the parameters are fine.
type Rule func(params schema.Values) string

// ExprRule compiles a boolean expression over parameter keys, e.g.
// "minValue <= maxValue". The rule fails with message when the expression
// evaluates to false or cannot be evaluated against the parameters.
func ExprRule(expression, message string) (Rule, error) {
	program, err := expr.Compile(expression, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile rule %q: %w", expression, err)
	}
	return exprRule(program, message), nil
}

// MustExprRule is ExprRule for package-level rule declarations.
func MustExprRule(expression, message string) Rule {
	r, err := ExprRule(expression, message)
	if err != nil {
		panic(err)
	}
	return r
}

func exprRule(program *vm.Program, message string) Rule {
	return func(params schema.Values) string {
		out, err := expr.Run(program, map[string]any(params))
		if err != nil {
			return message
		}
		if ok, _ := out.(bool); !ok {
			return message
		}
		return ""
	}
}
