package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSchemaNotFound is matched by every SchemaNotFoundError
	ErrSchemaNotFound = errors.New("no schema element found")

	// ErrNilTree is returned when Build is called without a tree
	ErrNilTree = errors.New("tree cannot be nil")
)

// SchemaNotFoundError reports a document whose root is neither a qualified
// nor an unqualified schema element.
type SchemaNotFoundError struct {
	// Keys are the root keys that were present in the tree
	Keys []string
}

func (e *SchemaNotFoundError) Error() string {
	if len(e.Keys) == 0 {
		return "invalid XSD: " + ErrSchemaNotFound.Error()
	}
	return fmt.Sprintf("invalid XSD: %s (found %s)", ErrSchemaNotFound, strings.Join(e.Keys, ", "))
}

// Is makes errors.Is(err, ErrSchemaNotFound) hold.
func (e *SchemaNotFoundError) Is(target error) bool {
	return target == ErrSchemaNotFound
}

func newSchemaNotFoundError(keys []string) *SchemaNotFoundError {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return &SchemaNotFoundError{Keys: sorted}
}
