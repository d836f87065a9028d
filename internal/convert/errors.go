package convert

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoInputFiles is returned when the input directory has no .xsd files
	ErrNoInputFiles = errors.New("no XSD files found in input directory")

	// ErrNilGenerator is returned when a converter is built without a generator
	ErrNilGenerator = errors.New("generator cannot be nil")
)

// Failure records one document that could not be converted
type Failure struct {
	Path string
	Err  error
}

// ConversionError lists every failed document of a directory run
type ConversionError struct {
	Failures []Failure
}

func (e *ConversionError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Path, f.Err))
	}
	return fmt.Sprintf("%d file(s) failed to convert: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes the per-document errors to errors.Is and errors.As
func (e *ConversionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}
