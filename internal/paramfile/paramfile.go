// Package paramfile reads generator parameter documents (YAML or JSON) and
// command-line assignments, and checks them against a generator's exported
// JSON Schema.
package paramfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/mathgen/internal/schema"
	"github.com/goccy/go-yaml"
)

// Format is the encoding of a parameter document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Anything that is
// not .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is a saved generation request.
//
//	generator: addition
//	preset: regrouping
//	count: 10
//	seed: 42
//	params:
//	  addendCount: 3
type Document struct {
	Generator string        `yaml:"generator" json:"generator"`
	Preset    string        `yaml:"preset,omitempty" json:"preset,omitempty"`
	Count     int           `yaml:"count,omitempty" json:"count,omitempty"`
	Seed      *uint64       `yaml:"seed,omitempty" json:"seed,omitempty"`
	Params    schema.Values `yaml:"params,omitempty" json:"params,omitempty"`
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parameter file: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode reads one document. Unknown top-level fields are errors.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	doc.Params = Normalize(doc.Params)
	return &doc, nil
}

// Encode writes doc in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// ParseAssignments parses "key=value" pairs. Values are typed the way YAML
// types scalars: "10" is a number, "true" a boolean, "easy" a string.
func ParseAssignments(assignments []string) (schema.Values, error) {
	out := schema.Values{}
	for _, a := range assignments {
		key, raw, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected key=value", a)
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, fmt.Errorf("invalid assignment %q: missing value", a)
		}

		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", key, err)
		}
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("invalid value for %q: must be a number, boolean or string", key)
		}
		out[key] = v
	}
	return Normalize(out), nil
}

// Normalize converts decoded numbers to int when they are whole and to
// float64 otherwise, so decoders agree on the types a generator sees.
func Normalize(v schema.Values) schema.Values {
	return schema.Normalize(v)
}

// toJSONValue turns params into the plain JSON value tree the schema
// validator expects.
func toJSONValue(params schema.Values) (any, error) {
	if params == nil {
		params = schema.Values{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal parameters: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse parameters: %w", err)
	}
	return v, nil
}
