package problemgen

import "testing"

func checkProblem(question, answer string, answerType AnswerType) *Problem {
	p := validProblem()
	p.Question = question
	p.Answer = answer
	p.Metadata[MetaAnswerType] = string(answerType)
	return p
}

func TestMathCheck_Correct(t *testing.T) {
	v := &MathCheckValidator{}

	tests := []struct {
		question   string
		answer     string
		answerType AnswerType
	}{
		{"What is 345 + 278?", "623", AnswerTypeInteger},
		{"567 - 289 = ?", "278", AnswerTypeInteger},
		{"What is 23 * 45?", "1035", AnswerTypeInteger},
		{"What is 7 × 8?", "56", AnswerTypeInteger},
		{"What is 144 / 12?", "12", AnswerTypeInteger},
		{"What is 12 + 7 + 30?", "49", AnswerTypeInteger},
		{"What is 50 - 8 + 3 - 10?", "35", AnswerTypeInteger},
		{"What is -12 + (-5)?", "-17", AnswerTypeInteger},
		{"What is 14 + (-5) + 2?", "11", AnswerTypeInteger},
		{"What is 12345 + 67890?", "80235", AnswerTypeInteger},
		{"What is 1/4 + 1/2?", "3/4", AnswerTypeFraction},
		{"What is 3/4 - 1/3?", "5/12", AnswerTypeFraction},
		{"What is 2/3 * 3/4?", "1/2", AnswerTypeFraction},
		{"What is 1/2 ÷ 1/4?", "2", AnswerTypeInteger},
		{"What is 0.1 + 0.2?", "0.3", AnswerTypeDecimal},
		{"What is 7 / 2?", "3.5", AnswerTypeDecimal},
		{"What is 1.25 × 4?", "5", AnswerTypeDecimal},
	}

	for _, tc := range tests {
		if err := v.Validate(checkProblem(tc.question, tc.answer, tc.answerType)); err != nil {
			t.Errorf("expected %q with answer %q to pass: %v", tc.question, tc.answer, err)
		}
	}
}

func TestMathCheck_Wrong(t *testing.T) {
	v := &MathCheckValidator{}

	tests := []struct {
		question   string
		answer     string
		answerType AnswerType
	}{
		{"What is 345 + 278?", "612", AnswerTypeInteger},
		{"567 - 289 = ?", "288", AnswerTypeInteger},
		{"What is 23 * 45?", "1025", AnswerTypeInteger},
		{"What is 12 + 7 + 30?", "19", AnswerTypeInteger},
		{"What is 1/4 + 1/2?", "2/6", AnswerTypeFraction},
	}

	for _, tc := range tests {
		err := v.Validate(checkProblem(tc.question, tc.answer, tc.answerType))
		if err == nil {
			t.Errorf("expected %q with answer %q to fail", tc.question, tc.answer)
			continue
		}
		if err.Validator != "math-check" {
			t.Errorf("expected validator %q, got %q", "math-check", err.Validator)
		}
	}
}

func TestMathCheck_NonComputable(t *testing.T) {
	v := &MathCheckValidator{}

	questions := []string{
		"Simplify 6/8.",
		"Convert 3.5 km to m.",
		"Which fraction is larger: 3/4 or 2/3?",
		"A farmer has 345 apples and gives away 123. How many are left?",
	}

	for _, q := range questions {
		if err := v.Validate(checkProblem(q, "1", AnswerTypeInteger)); err != nil {
			t.Errorf("non-computable %q should pass silently: %v", q, err)
		}
	}
}

func TestMathCheck_SkipsUntypedAnswers(t *testing.T) {
	v := &MathCheckValidator{}
	p := validProblem()
	p.Answer = "wrong"
	delete(p.Metadata, MetaAnswerType)
	if err := v.Validate(p); err != nil {
		t.Errorf("problem without answerType should pass: %v", err)
	}
}
