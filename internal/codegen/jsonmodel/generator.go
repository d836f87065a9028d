// Package jsonmodel renders the normalized schema model as JSON. It is a
// debugging aid for checking what the builder extracted from a document.
package jsonmodel

import (
	"encoding/json"
	"fmt"

	"github.com/okra-platform/xsd2ts/internal/schema"
)

// Generator dumps the schema model
type Generator struct {
	indent string
}

// NewGenerator creates a generator producing two-space indented JSON
func NewGenerator() *Generator {
	return &Generator{indent: "  "}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "json"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".json"
}

// Generate marshals the schema with a trailing newline
func (g *Generator) Generate(s *schema.Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}

	data, err := json.MarshalIndent(s, "", g.indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}
