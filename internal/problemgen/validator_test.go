package problemgen

import "testing"

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Validator: "test-validator",
		Message:   "something went wrong",
		Retryable: true,
	}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultValidators_Chain(t *testing.T) {
	validators := DefaultValidators()
	if len(validators) != 3 {
		t.Fatalf("expected 3 validators, got %d", len(validators))
	}
	names := []string{"structural", "answer-format", "math-check"}
	for i, v := range validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestConfigurationError_Message(t *testing.T) {
	err := &ConfigurationError{
		Structural: []string{"Count is required", "Mode must be one of: a, b"},
		Custom:     []string{"Minimum cannot exceed maximum"},
	}
	want := "Count is required, Mode must be one of: a, b, Minimum cannot exceed maximum"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if !IsConfigurationError(Reject("x")) {
		t.Error("Reject should produce a configuration error")
	}
}
