package schema

const jsonSchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema renders the schema as a JSON Schema document describing a
// complete parameter set. External tooling uses it to check configurations
// before they reach a generator.
func (s *Schema) JSONSchema(title string) map[string]any {
	return s.jsonSchema(title, true)
}

// OverlaySchema is JSONSchema without required keys: it describes partial
// overrides such as presets and parameter files.
func (s *Schema) OverlaySchema(title string) map[string]any {
	return s.jsonSchema(title, false)
}

func (s *Schema) jsonSchema(title string, withRequired bool) map[string]any {
	props := make(map[string]any, len(s.params))
	required := []any{}

	for _, p := range s.params {
		prop := map[string]any{"title": p.Label}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		switch p.Type {
		case TypeNumber:
			prop["type"] = "number"
			if p.Integer {
				prop["type"] = "integer"
			}
			if p.Min != nil {
				prop["minimum"] = *p.Min
			}
			if p.Max != nil {
				prop["maximum"] = *p.Max
			}
		case TypeBoolean:
			prop["type"] = "boolean"
		case TypeSelect:
			enum := make([]any, len(p.Options))
			for i, o := range p.Options {
				enum[i] = o.Value
			}
			prop["type"] = "string"
			prop["enum"] = enum
		}
		props[p.Key] = prop
		if withRequired && p.Required {
			required = append(required, p.Key)
		}
	}

	doc := map[string]any{
		"$schema":              jsonSchemaDraft,
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if title != "" {
		doc["title"] = title
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}
