package codegen

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/okra-platform/xsd2ts/internal/schema"
)

// Generator is the interface that all output generators must implement
type Generator interface {
	// Generate renders the schema and returns the generated text
	Generate(schema *schema.Schema) ([]byte, error)

	// Language returns the name of the target language (e.g., "typescript")
	Language() string

	// FileExtension returns the file extension for generated files (e.g., ".ts")
	FileExtension() string
}

// Options contains common options for code generation
type Options struct {
	// Timestamp adds a "Generated on" line to the header
	Timestamp bool

	// Now is the clock used for the header; time.Now when nil
	Now func() time.Time

	// IncludeComments renders xs:documentation as comments
	IncludeComments bool

	// Logger receives generator diagnostics
	Logger zerolog.Logger
}

func (o Options) clock() func() time.Time {
	if !o.Timestamp {
		return nil
	}
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}
