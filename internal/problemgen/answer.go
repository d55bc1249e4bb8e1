package problemgen

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CheckAnswer compares the learner's input against the problem's answer.
// Returns true if the answer is correct.
//
// Normalization rules, driven by the problem's answerType metadata:
//   - Whitespace is trimmed
//   - For fractions: equivalent fractions are accepted (e.g., "2/4" matches "1/2"),
//     and a whole number matches n/1
//   - For decimals: trailing zeros are ignored (e.g., "3.50" matches "3.5")
//   - For integers: leading zeros are ignored (e.g., "007" matches "7")
//   - For text, or when no type is declared: case-insensitive comparison
func CheckAnswer(learnerAnswer string, p *Problem) bool {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if learnerAnswer == "" {
		return false
	}

	answerType := AnswerType(p.Metadata.String(MetaAnswerType))
	if answerType == "" || answerType == AnswerTypeText {
		return strings.EqualFold(learnerAnswer, strings.TrimSpace(p.Answer))
	}

	normalizedLearner, err := normalizeAnswer(learnerAnswer, answerType)
	if err != nil {
		return false
	}
	normalizedCorrect, err := normalizeAnswer(p.Answer, answerType)
	if err != nil {
		return false
	}
	return normalizedLearner == normalizedCorrect
}

// normalizeAnswer normalizes an answer string for comparison.
func normalizeAnswer(answer string, answerType AnswerType) (string, error) {
	answer = strings.TrimSpace(answer)

	switch answerType {
	case AnswerTypeInteger:
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid integer: %w", err)
		}
		return strconv.FormatInt(n, 10), nil

	case AnswerTypeDecimal:
		d, err := decimal.NewFromString(answer)
		if err != nil {
			return "", fmt.Errorf("invalid decimal: %w", err)
		}
		return d.String(), nil

	case AnswerTypeFraction:
		r, err := parseFraction(answer)
		if err != nil {
			return "", err
		}
		return r.String(), nil

	default:
		return answer, nil
	}
}

// parseFraction parses "a/b" or a whole number "a" into a reduced
// rational. Spaces around the slash are allowed.
func parseFraction(s string) (*big.Rat, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		den = "1"
	}
	num, den = strings.TrimSpace(num), strings.TrimSpace(den)
	if _, err := strconv.ParseInt(num, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid numerator: %w", err)
	}
	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid denominator: %w", err)
	}
	if d == 0 {
		return nil, fmt.Errorf("zero denominator")
	}
	r, ok := new(big.Rat).SetString(num + "/" + den)
	if !ok {
		return nil, fmt.Errorf("invalid fraction %q", s)
	}
	return r, nil
}
