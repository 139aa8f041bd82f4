package jsonwc

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "schema.json"

// Schema is a compiled JSON Schema. The default draft is 2020-12; a
// "$schema" keyword in the document takes precedence.
type Schema struct {
	name string
	s    *jsonschema.Schema
}

// CompileSchema compiles a schema that may itself contain comments. name is
// only used in error messages.
func CompileSchema(name string, schema []byte) (*Schema, error) {
	clean, err := Strip(schema)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	var probe any
	if err := decodeStripped(schema, clean, &probe, decodeOptions{}); err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaResource, bytes.NewReader(clean)); err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	s, err := c.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	return &Schema{name: name, s: s}, nil
}

func (s *Schema) Name() string { return s.name }

// Validate checks a value decoded with NumberFloat64 or NumberJSON.
// Failures are *jsonschema.ValidationError.
func (s *Schema) Validate(v any) error {
	return s.s.Validate(v)
}

// ValidateDocument parses data and validates the result.
func (s *Schema) ValidateDocument(data []byte) error {
	var v any
	if err := unmarshal(data, &v, decodeOptions{numbers: NumberJSON}); err != nil {
		return err
	}
	return s.Validate(v)
}
