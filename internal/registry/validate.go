package registry

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathgen/internal/problemgen"
)

// validateEntries performs all structural checks on the entries.
// Returns a combined error describing all problems found, or nil if valid.
func validateEntries(entries []Entry) error {
	var errs []string

	idSet := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			errs = append(errs, fmt.Sprintf("generator %d has no name", i))
			continue
		}
		if idSet[e.ID] {
			errs = append(errs, fmt.Sprintf("duplicate generator ID: %q", e.ID))
		}
		idSet[e.ID] = true

		if e.Descriptor.Category == "" {
			errs = append(errs, fmt.Sprintf("generator %q has no category", e.ID))
		}
		switch e.Descriptor.Difficulty {
		case problemgen.DifficultyBeginner, problemgen.DifficultyIntermediate, problemgen.DifficultyAdvanced:
		default:
			errs = append(errs, fmt.Sprintf("generator %q has unknown difficulty %q", e.ID, e.Descriptor.Difficulty))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
