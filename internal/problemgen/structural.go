package problemgen

import "fmt"

// StructuralValidator checks that the problem's text fields are present and
// within length limits, and that the required metadata is set.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem) *ValidationError {
	fields := []struct {
		name  string
		value string
		limit int
	}{
		{"question", p.Question, 500},
		{"questionLaTeX", p.QuestionLaTeX, 1000},
		{"answer", p.Answer, 100},
		{"answerLaTeX", p.AnswerLaTeX, 200},
	}
	for _, f := range fields {
		if f.value == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   f.name + " is empty",
				Retryable: false,
			}
		}
		if len(f.value) > f.limit {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%s exceeds %d characters", f.name, f.limit),
				Retryable: true,
			}
		}
	}
	for i, s := range p.Steps {
		if s == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("step %d is empty", i+1),
				Retryable: false,
			}
		}
	}
	for _, key := range []string{MetaOperation, MetaDifficulty, MetaEstimatedTime} {
		if p.Metadata.String(key) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("metadata %q is missing", key),
				Retryable: false,
			}
		}
	}
	if at, ok := p.Metadata[MetaAnswerType]; ok {
		switch AnswerType(fmt.Sprint(at)) {
		case AnswerTypeInteger, AnswerTypeDecimal, AnswerTypeFraction, AnswerTypeText:
		default:
			return &ValidationError{
				Validator: v.Name(),
				Message:   "answerType must be \"integer\", \"decimal\", \"fraction\", or \"text\"",
				Retryable: false,
			}
		}
	}
	return nil
}
