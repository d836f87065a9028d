package codegen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/xsd2ts/internal/schema"
)

// mockGenerator is a test generator
type mockGenerator struct {
	lang string
}

func (m *mockGenerator) Generate(s *schema.Schema) ([]byte, error) {
	return []byte("mock output"), nil
}

func (m *mockGenerator) Language() string {
	return m.lang
}

func (m *mockGenerator) FileExtension() string {
	return ".mock"
}

func TestRegistry_NewRegistry(t *testing.T) {
	// Test: New registry is empty by default
	r := NewRegistry()
	assert.NotNil(t, r)
	assert.Empty(t, r.Languages())

	_, err := r.Get("unknown", Options{})
	assert.Error(t, err)
}

func TestRegistry_Register(t *testing.T) {
	// Test: Register custom generator and receive options
	r := NewRegistry()

	var got Options
	r.Register("mock", func(opts Options) Generator {
		got = opts
		return &mockGenerator{lang: "mock"}
	})

	gen, err := r.Get("mock", Options{IncludeComments: true})
	require.NoError(t, err)
	assert.Equal(t, "mock", gen.Language())
	assert.True(t, got.IncludeComments)
}

func TestRegistry_UnsupportedLanguage(t *testing.T) {
	r := NewRegistry()

	gen, err := r.Get("python", Options{})
	assert.Error(t, err)
	assert.Nil(t, gen)
	assert.Contains(t, err.Error(), "unsupported language: python")
}

func TestRegistry_LanguagesSorted(t *testing.T) {
	r := NewRegistry()
	for _, lang := range []string{"zz", "aa", "mm"} {
		r.Register(lang, func(Options) Generator { return &mockGenerator{} })
	}

	assert.Equal(t, []string{"aa", "mm", "zz"}, r.Languages())
}

func TestDefaultRegistry(t *testing.T) {
	// Test: Built-in generators are registered
	assert.Equal(t, []string{"json", "ts", "typescript"}, DefaultRegistry.Languages())

	ts, err := DefaultRegistry.Get("ts", Options{})
	require.NoError(t, err)
	assert.Equal(t, "typescript", ts.Language())
	assert.Equal(t, ".ts", ts.FileExtension())

	js, err := DefaultRegistry.Get("json", Options{})
	require.NoError(t, err)
	assert.Equal(t, ".json", js.FileExtension())
}

func TestDefaultRegistry_TimestampOption(t *testing.T) {
	s := &schema.Schema{}
	fixed := func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	gen, err := DefaultRegistry.Get("typescript", Options{Timestamp: true, Now: fixed})
	require.NoError(t, err)
	out, err := gen.Generate(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "// Generated on: 2025-01-02T03:04:05.000Z\n")

	gen, err = DefaultRegistry.Get("typescript", Options{Now: fixed})
	require.NoError(t, err)
	out, err = gen.Generate(s)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Generated on")
}
