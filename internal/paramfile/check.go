package paramfile

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/mathgen/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// CheckError lists every way a parameter document breaks the generator's
// JSON Schema.
type CheckError struct {
	Name       string
	Violations []string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("parameters for %s do not match the schema:\n  %s", e.Name, strings.Join(e.Violations, "\n  "))
}

// Check validates params against the overlay JSON Schema of s, compiled
// once per name. Unknown keys, wrong types and out-of-range numbers are all
// reported. Required parameters are not enforced here because documents
// are overrides over the generator's defaults.
func Check(name string, s *schema.Schema, params schema.Values) error {
	compiled, err := getCompiledSchema(name, s)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}
	instance, err := toJSONValue(params)
	if err != nil {
		return err
	}
	if err := compiled.Validate(instance); err != nil {
		return &CheckError{Name: name, Violations: violations(err)}
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name string, s *schema.Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not Go maps
	// with typed slices. Marshal then unmarshal to get a clean any.
	defBytes, err := json.Marshal(s.OverlaySchema(name))
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	actual, _ := schemaCache.LoadOrStore(name, compiled)
	return actual.(*jsonschema.Schema), nil
}

// violations flattens the validator's report into one line per failure.
func violations(err error) []string {
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		out = append(out, strings.TrimPrefix(line, "- "))
	}
	if len(out) == 0 {
		out = append(out, err.Error())
	}
	return out
}
