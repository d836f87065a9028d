package codegen

import (
	"fmt"
	"sort"
)

// Factory builds a generator from common options
type Factory func(opts Options) Generator

// Registry manages available code generators
type Registry struct {
	generators map[string]Factory
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Factory),
	}
}

// Register adds a new generator factory to the registry
func (r *Registry) Register(language string, factory Factory) {
	r.generators[language] = factory
}

// Get returns a generator for the specified language
func (r *Registry) Get(language string, opts Options) (Generator, error) {
	factory, exists := r.generators[language]
	if !exists {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	return factory(opts), nil
}

// Languages returns the registered language names, sorted
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.generators))
	for lang := range r.generators {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
