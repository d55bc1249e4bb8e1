package problemgen

import (
	"errors"
	"strings"
)

// ConfigurationError reports parameters that cannot be used to generate a
// problem. Structural holds per-parameter schema violations (including
// unknown keys); Custom holds the generator's cross-field rule violations.
// Callers only ever need to handle this one error kind.
type ConfigurationError struct {
	Structural []string
	Custom     []string
}

// Messages returns every violation, structural ones first.
func (e *ConfigurationError) Messages() []string {
	out := make([]string, 0, len(e.Structural)+len(e.Custom))
	out = append(out, e.Structural...)
	return append(out, e.Custom...)
}

func (e *ConfigurationError) Error() string {
	return strings.Join(e.Messages(), ", ")
}

// Reject builds the error a generator returns when it discovers a
// cross-field problem while producing. It is the same kind as the errors
// returned by Resolve.
func Reject(messages ...string) error {
	return &ConfigurationError{Custom: messages}
}

// IsConfigurationError reports whether err is, or wraps, a
// *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cerr *ConfigurationError
	return errors.As(err, &cerr)
}
