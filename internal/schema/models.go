package schema

import (
	"math/big"
	"strings"
)

// Schema is the root of a parsed XSD document
type Schema struct {
	TargetNamespace string        `json:"targetNamespace,omitempty"`
	Elements        []Element     `json:"elements"`
	ComplexTypes    []ComplexType `json:"complexTypes"`
	SimpleTypes     []SimpleType  `json:"simpleTypes"`
}

// Element represents an xs:element declaration, top-level or a type member
type Element struct {
	Name       string      `json:"name"`
	Type       string      `json:"type,omitempty"`
	MinOccurs  string      `json:"minOccurs,omitempty"`
	MaxOccurs  string      `json:"maxOccurs,omitempty"`
	Attributes []Attribute `json:"attributes"`
	Children   []Element   `json:"children"`
	Doc        string      `json:"doc,omitempty"`
}

// Attribute represents an xs:attribute declaration
type Attribute struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Use     string `json:"use,omitempty"`
	Default string `json:"default,omitempty"`
	Doc     string `json:"doc,omitempty"`
}

// ComplexType represents a named xs:complexType
type ComplexType struct {
	Name       string      `json:"name"`
	Elements   []Element   `json:"elements"`
	Attributes []Attribute `json:"attributes"`
	Doc        string      `json:"doc,omitempty"`
}

// SimpleType represents a named xs:simpleType with its enumeration facets
type SimpleType struct {
	Name         string   `json:"name"`
	Base         string   `json:"base"`
	Restrictions []string `json:"restrictions"`
	Doc          string   `json:"doc,omitempty"`
}

const (
	// Unbounded is the maxOccurs value for an unlimited element
	Unbounded = "unbounded"
	// Required is the attribute use value for a mandatory attribute
	Required = "required"
)

// IsOptional reports whether the element may be omitted (minOccurs="0").
func (e Element) IsOptional() bool {
	return e.MinOccurs == "0"
}

// IsArray reports whether the element may repeat: maxOccurs is "unbounded"
// or an integer greater than one.
func (e Element) IsArray() bool {
	bound := strings.TrimSpace(e.MaxOccurs)
	if bound == Unbounded {
		return true
	}
	n, ok := new(big.Int).SetString(bound, 10)
	return ok && n.Cmp(one) > 0
}

var one = big.NewInt(1)

// IsRequired reports whether use="required". A missing use means optional.
func (a Attribute) IsRequired() bool {
	return a.Use == Required
}

// HasEnumeration reports whether the simple type carries enumeration facets.
func (s SimpleType) HasEnumeration() bool {
	return len(s.Restrictions) > 0
}
