package problemgen

import "testing"

func answerProblem(answer string, answerType AnswerType) *Problem {
	return &Problem{
		Answer:   answer,
		Metadata: Metadata{MetaAnswerType: string(answerType)},
	}
}

func TestCheckAnswer_Integer(t *testing.T) {
	p := answerProblem("42", AnswerTypeInteger)

	tests := []struct {
		input string
		want  bool
	}{
		{"42", true},
		{" 42 ", true},
		{"042", true},
		{"43", false},
		{"", false},
		{"abc", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(tc.input, p)
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, 42/integer) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_Decimal(t *testing.T) {
	p := answerProblem("3.5", AnswerTypeDecimal)

	tests := []struct {
		input string
		want  bool
	}{
		{"3.5", true},
		{"3.50", true},
		{"3.500", true},
		{" 3.5 ", true},
		{"3.6", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(tc.input, p)
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, 3.5/decimal) = %v, want %v", tc.input, got, tc.want)
		}
	}

	small := answerProblem("0.125", AnswerTypeDecimal)
	if !CheckAnswer(".125", small) {
		t.Error("expected .125 to match 0.125")
	}
}

func TestCheckAnswer_Fraction(t *testing.T) {
	p := answerProblem("1/2", AnswerTypeFraction)

	tests := []struct {
		input string
		want  bool
	}{
		{"1/2", true},
		{"2/4", true},
		{"3/6", true},
		{" 1/2 ", true},
		{"1/3", false},
		{"1", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(tc.input, p)
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, 1/2/fraction) = %v, want %v", tc.input, got, tc.want)
		}
	}

	whole := answerProblem("4/2", AnswerTypeFraction)
	if !CheckAnswer("2", whole) {
		t.Error("expected whole number 2 to match 4/2")
	}
}

func TestCheckAnswer_Text(t *testing.T) {
	p := &Problem{Answer: "Three Quarters", Metadata: Metadata{MetaAnswerType: string(AnswerTypeText)}}
	if !CheckAnswer("three quarters", p) {
		t.Error("expected case-insensitive match")
	}

	untyped := &Problem{Answer: "km", Metadata: Metadata{}}
	if !CheckAnswer(" KM ", untyped) {
		t.Error("expected untyped answers to compare as text")
	}
}
