package schema

import (
	"fmt"
	"strings"

	"github.com/okra-platform/xsd2ts/internal/xmlnode"
)

// Accepted root keys, qualified form first
var rootKeys = []string{"xs:schema", "schema"}

// ParseSchema reads XSD text into our Schema model
func ParseSchema(data []byte) (*Schema, error) {
	tree, err := xmlnode.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	return Build(tree)
}

// Build converts a generic XML tree into a Schema. Every field that the XSD
// format allows to occur zero, one or many times goes through xmlnode.List,
// so a single child and a repeated child produce the same shape.
func Build(tree xmlnode.Node) (*Schema, error) {
	if tree == nil {
		return nil, ErrNilTree
	}

	root, prefix, ok := findRoot(tree)
	if !ok {
		keys := make([]string, 0, len(tree))
		for k := range tree {
			keys = append(keys, k)
		}
		return nil, newSchemaNotFoundError(keys)
	}

	b := &builder{prefix: prefix}
	topLevel := root.Children(b.key("element"))
	b.indexRefs(topLevel)

	schema := &Schema{
		TargetNamespace: root.Attr("targetNamespace"),
		Elements:        b.elements(topLevel),
		ComplexTypes:    []ComplexType{},
		SimpleTypes:     []SimpleType{},
	}

	for _, n := range root.Children(b.key("complexType")) {
		schema.ComplexTypes = append(schema.ComplexTypes, b.complexType(n))
	}

	for _, n := range root.Children(b.key("simpleType")) {
		schema.SimpleTypes = append(schema.SimpleTypes, b.simpleType(n))
	}

	return schema, nil
}

// LocalName strips the namespace prefix, i.e. everything up to the first ':'.
func LocalName(qname string) string {
	if _, local, found := strings.Cut(qname, ":"); found {
		return local
	}
	return qname
}

func findRoot(tree xmlnode.Node) (xmlnode.Node, string, bool) {
	for _, key := range rootKeys {
		if root, ok := tree.First(key); ok {
			prefix, _, _ := strings.Cut(key, "schema")
			return root, prefix, true
		}
	}
	return nil, "", false
}

type builder struct {
	// prefix of the matched root key ("xs:" or ""), used for all child lookups
	prefix string
	// top-level element name -> declared type, for ref resolution
	refTypes map[string]string
}

func (b *builder) key(local string) string {
	return b.prefix + local
}

func (b *builder) indexRefs(topLevel []xmlnode.Node) {
	b.refTypes = make(map[string]string, len(topLevel))
	for _, n := range topLevel {
		if name := n.Attr("name"); name != "" {
			b.refTypes[name] = n.Attr("type")
		}
	}
}

func (b *builder) elements(nodes []xmlnode.Node) []Element {
	result := []Element{}
	for _, n := range nodes {
		if el, ok := b.element(n); ok {
			result = append(result, el)
		}
	}
	return result
}

func (b *builder) element(n xmlnode.Node) (Element, bool) {
	el := Element{
		Name:      n.Attr("name"),
		Type:      n.Attr("type"),
		MinOccurs: n.Attr("minOccurs"),
		MaxOccurs: n.Attr("maxOccurs"),
		Doc:       b.doc(n),
	}

	if el.Name == "" {
		ref := n.Attr("ref")
		if ref == "" {
			return el, false
		}
		el.Name = LocalName(ref)
		if el.Type == "" {
			el.Type = b.refTypes[el.Name]
		}
	}

	el.Attributes = b.attributes(n.Children(b.key("attribute")))
	el.Children = b.elements(n.Children(b.key("element")))

	// Inline anonymous structure is recorded but never turned into a type
	if ct, ok := n.First(b.key("complexType")); ok {
		el.Children = append(el.Children, b.members(ct)...)
		el.Attributes = append(el.Attributes, b.attributes(ct.Children(b.key("attribute")))...)
	}

	return el, true
}

func (b *builder) attributes(nodes []xmlnode.Node) []Attribute {
	result := []Attribute{}
	for _, n := range nodes {
		attr := Attribute{
			Name:    n.Attr("name"),
			Type:    n.Attr("type"),
			Use:     n.Attr("use"),
			Default: n.Attr("default"),
			Doc:     b.doc(n),
		}
		if attr.Name == "" {
			attr.Name = LocalName(n.Attr("ref"))
		}
		if attr.Name == "" {
			continue
		}
		result = append(result, attr)
	}
	return result
}

// members reads the element members of a complex type: the sequence if it
// has any, otherwise inline elements. Other content models are not traversed.
func (b *builder) members(ct xmlnode.Node) []Element {
	if seq, ok := ct.First(b.key("sequence")); ok {
		if items := seq.Children(b.key("element")); len(items) > 0 {
			return b.elements(items)
		}
	}
	return b.elements(ct.Children(b.key("element")))
}

func (b *builder) complexType(n xmlnode.Node) ComplexType {
	return ComplexType{
		Name:       n.Attr("name"),
		Elements:   b.members(n),
		Attributes: b.attributes(n.Children(b.key("attribute"))),
		Doc:        b.doc(n),
	}
}

func (b *builder) simpleType(n xmlnode.Node) SimpleType {
	st := SimpleType{
		Name:         n.Attr("name"),
		Base:         "string",
		Restrictions: []string{},
		Doc:          b.doc(n),
	}

	restriction, ok := n.First(b.key("restriction"))
	if !ok {
		return st
	}

	if base := restriction.Attr("base"); base != "" {
		st.Base = base
	}

	for _, e := range restriction.Children(b.key("enumeration")) {
		if value, ok := e.LookupAttr("value"); ok {
			st.Restrictions = append(st.Restrictions, value)
		}
	}

	return st
}

// doc joins the xs:annotation/xs:documentation texts of a node
func (b *builder) doc(n xmlnode.Node) string {
	var lines []string
	for _, ann := range n.Children(b.key("annotation")) {
		for _, d := range ann.Children(b.key("documentation")) {
			if text := d.Text(); text != "" {
				lines = append(lines, text)
			}
		}
	}
	return strings.Join(lines, "\n")
}
