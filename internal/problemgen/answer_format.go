package problemgen

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

var fractionPattern = regexp.MustCompile(`^-?\d+/\d+$`)

// AnswerFormatValidator checks that the answer string is in canonical form
// for the declared answerType: integers without leading zeros, decimals
// without trailing zeros, fractions in lowest terms. Problems that declare
// no answer type pass.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(p *Problem) *ValidationError {
	var err error
	switch AnswerType(p.Metadata.String(MetaAnswerType)) {
	case AnswerTypeInteger:
		err = validateInteger(p.Answer)
	case AnswerTypeDecimal:
		err = validateDecimal(p.Answer)
	case AnswerTypeFraction:
		err = validateFraction(p.Answer)
	default:
		return nil
	}
	if err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("invalid %s answer %q: %s", p.Metadata.String(MetaAnswerType), p.Answer, err),
			Retryable: false,
		}
	}
	return nil
}

// validateInteger checks that s is a valid integer string with no leading zeros.
func validateInteger(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not a valid integer")
	}
	// Check for leading zeros: formatted back should match.
	if strconv.FormatInt(n, 10) != s {
		return fmt.Errorf("has leading zeros")
	}
	return nil
}

// validateDecimal checks that s is a valid decimal string with no trailing zeros.
func validateDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("not a valid decimal")
	}
	if normalized := d.String(); normalized != s {
		return fmt.Errorf("has trailing zeros or is not normalized (expected %q)", normalized)
	}
	return nil
}

// validateFraction checks that s matches the a/b pattern and is already in
// lowest terms with a positive denominator.
func validateFraction(s string) error {
	if !fractionPattern.MatchString(s) {
		return fmt.Errorf("does not match fraction pattern a/b")
	}
	r, err := parseFraction(s)
	if err != nil {
		return err
	}
	if r.String() != s {
		return fmt.Errorf("fraction is not in lowest terms")
	}
	return nil
}
