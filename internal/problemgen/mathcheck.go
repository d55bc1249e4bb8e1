package problemgen

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MathCheckValidator independently recomputes the answer from the plain
// question text for pure arithmetic and fraction operations. Questions it
// cannot parse (conversions, simplification) pass through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *Problem) *ValidationError {
	answerType := AnswerType(p.Metadata.String(MetaAnswerType))
	if answerType == "" || answerType == AnswerTypeText {
		return nil
	}
	computed, err := computeAnswer(p.Question, answerType)
	if err != nil {
		return nil
	}
	if !answersEqual(computed, p.Answer, answerType) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but generator answered %q", computed, p.Answer),
			Retryable: false,
		}
	}
	return nil
}

// Regex patterns for extracting arithmetic expressions from question text.
var (
	// Fraction arithmetic: "a/b + c/d", "a/b - c/d", "a/b * c/d", "a/b ÷ c/d"
	fractionArithRe = regexp.MustCompile(`(-?\d+)\s*/\s*(\d+)\s*([+\-*×÷])\s*(-?\d+)\s*/\s*(\d+)`)

	// Integer/decimal arithmetic with +, -, *, ×
	intArithRe = regexp.MustCompile(`(?:^|[^\d/])(-?\d+(?:\.\d+)?)\s*([+\-*×])\s*(-?\d+(?:\.\d+)?)(?:[^\d/]|$)`)

	// Division requires spaces around the operator to distinguish from fractions (3/4 vs 144 / 12).
	intDivRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s+[/÷]\s+(-?\d+(?:\.\d+)?)`)

	// Chains of two or more additions/subtractions: "12 + 7 - 30 + 5".
	addChainRe  = regexp.MustCompile(`(?:^|[^\d/.])(-?\d+)((?:\s+[+\-]\s+-?\d+){2,})(?:[^\d/]|$)`)
	chainTermRe = regexp.MustCompile(`([+\-])\s+(-?\d+)`)

	// Negative operands are written in parentheses: "(-5)".
	parenNegRe = regexp.MustCompile(`\((-\d+(?:\.\d+)?)\)`)
)

var errNotComputable = errors.New("question is not computable")

// computeAnswer attempts to extract and compute the answer from question text.
// Returns the computed answer as a string, or an error if not computable.
func computeAnswer(text string, answerType AnswerType) (string, error) {
	text = parenNegRe.ReplaceAllString(text, "$1")

	// Try fraction arithmetic first.
	if answerType == AnswerTypeFraction || answerType == AnswerTypeInteger {
		if result, err := tryFractionArith(text); err == nil {
			return result, nil
		}
	}

	// Try integer/decimal arithmetic.
	if answerType == AnswerTypeInteger {
		if result, err := tryAddChain(text); err == nil {
			return result, nil
		}
	}
	if answerType == AnswerTypeInteger || answerType == AnswerTypeDecimal {
		if result, err := tryIntArith(text, answerType); err == nil {
			return result, nil
		}
	}

	return "", errNotComputable
}

// tryFractionArith evaluates "a/b op c/d" exactly. Whole results are
// returned as integers.
func tryFractionArith(text string) (string, error) {
	m := fractionArithRe.FindStringSubmatch(text)
	if m == nil {
		return "", errNotComputable
	}
	a, okA := new(big.Rat).SetString(m[1] + "/" + m[2])
	b, okB := new(big.Rat).SetString(m[4] + "/" + m[5])
	if !okA || !okB {
		return "", errNotComputable
	}

	r := new(big.Rat)
	switch normalizeOp(m[3]) {
	case "+":
		r.Add(a, b)
	case "-":
		r.Sub(a, b)
	case "*":
		r.Mul(a, b)
	case "/":
		if b.Sign() == 0 {
			return "", errNotComputable
		}
		r.Quo(a, b)
	default:
		return "", errNotComputable
	}
	if r.IsInt() {
		return r.Num().String(), nil
	}
	return r.String(), nil
}

// tryAddChain evaluates a left-to-right chain of integer additions and
// subtractions with at least two operators.
func tryAddChain(text string) (string, error) {
	m := addChainRe.FindStringSubmatch(text)
	if m == nil {
		return "", errNotComputable
	}
	total, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return "", err
	}
	for _, term := range chainTermRe.FindAllStringSubmatch(m[2], -1) {
		n, err := strconv.ParseInt(term[2], 10, 64)
		if err != nil {
			return "", err
		}
		if term[1] == "+" {
			total += n
		} else {
			total -= n
		}
	}
	return strconv.FormatInt(total, 10), nil
}

// tryIntArith tries to extract and compute integer/decimal arithmetic.
func tryIntArith(text string, answerType AnswerType) (string, error) {
	// Try +, -, *, × first.
	matches := intArithRe.FindStringSubmatch(text)
	if matches != nil {
		return computeIntOp(matches[1], normalizeOp(matches[2]), matches[3], answerType)
	}

	// Try division (requires spaces around operator to avoid matching fractions).
	divMatches := intDivRe.FindStringSubmatch(text)
	if divMatches != nil {
		return computeIntOp(divMatches[1], "/", divMatches[2], answerType)
	}

	return "", errNotComputable
}

// computeIntOp evaluates a binary operation in exact decimal arithmetic.
// Integer answers truncate toward zero.
func computeIntOp(aStr, op, bStr string, answerType AnswerType) (string, error) {
	a, err := decimal.NewFromString(aStr)
	if err != nil {
		return "", err
	}
	b, err := decimal.NewFromString(bStr)
	if err != nil {
		return "", err
	}

	var result decimal.Decimal
	switch op {
	case "+":
		result = a.Add(b)
	case "-":
		result = a.Sub(b)
	case "*":
		result = a.Mul(b)
	case "/":
		if b.IsZero() {
			return "", errNotComputable
		}
		result = a.Div(b)
	default:
		return "", errNotComputable
	}

	if answerType == AnswerTypeInteger {
		return result.Truncate(0).String(), nil
	}
	return result.String(), nil
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}

// answersEqual compares two answer strings for equality, with normalization.
func answersEqual(a, b string, answerType AnswerType) bool {
	na, err := normalizeAnswer(a, answerType)
	if err != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	nb, err := normalizeAnswer(b, answerType)
	if err != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return na == nb
}
