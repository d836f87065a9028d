package codegen

import (
	"github.com/okra-platform/xsd2ts/internal/codegen/jsonmodel"
	"github.com/okra-platform/xsd2ts/internal/codegen/typescript"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewRegistry()

func newTypeScript(opts Options) Generator {
	return typescript.NewGenerator().
		WithTimestamp(opts.clock()).
		WithDocs(opts.IncludeComments).
		WithLogger(opts.Logger)
}

func init() {
	DefaultRegistry.Register("typescript", newTypeScript)

	// ts is an alias for typescript
	DefaultRegistry.Register("ts", newTypeScript)

	DefaultRegistry.Register("json", func(opts Options) Generator {
		return jsonmodel.NewGenerator()
	})
}
