package jsonmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/xsd2ts/internal/schema"
)

func TestGenerator_DumpsModel(t *testing.T) {
	s, err := schema.ParseSchema([]byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:j">
  <xs:complexType name="T"><xs:sequence><xs:element name="a" minOccurs="0"/></xs:sequence></xs:complexType>
</xs:schema>`))
	require.NoError(t, err)

	g := NewGenerator()
	data, err := g.Generate(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "urn:j", decoded["targetNamespace"])

	types, ok := decoded["complexTypes"].([]any)
	require.True(t, ok)
	require.Len(t, types, 1)

	assert.Contains(t, string(data), `"minOccurs": "0"`)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestGenerator_NilSchema(t *testing.T) {
	_, err := NewGenerator().Generate(nil)
	assert.Error(t, err)
}

func TestGenerator_Metadata(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "json", g.Language())
	assert.Equal(t, ".json", g.FileExtension())
}
