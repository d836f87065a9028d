// Package xmlnode materializes XML documents into a generic keyed tree.
//
// A Node holds the attributes and children of one element. Attribute values
// live under AttrPrefix+name, leaf text under TextKey, and child elements under
// their qualified tag name. A tag that occurs once maps to a single Node and a
// repeated tag maps to []Node, so consumers normalize with List before ranging.
package xmlnode

import (
	"bytes"
	"fmt"
	"strings"

	"aqwari.net/xml/xmltree"
)

const (
	// AttrPrefix distinguishes attribute keys from element keys.
	AttrPrefix = "@_"

	// TextKey holds the trimmed character data of a leaf element.
	TextKey = "#text"

	// SchemaNamespace is the XML Schema namespace URI.
	SchemaNamespace = "http://www.w3.org/2001/XMLSchema"
)

// Node is a generic view of an XML element.
type Node map[string]any

// Options controls how element names are turned into keys.
type Options struct {
	// Prefixes maps a namespace URI to the prefix used for its keys,
	// regardless of the prefix the document itself binds.
	Prefixes map[string]string
}

// DefaultOptions canonicalizes the XML Schema namespace to "xs".
func DefaultOptions() Options {
	return Options{
		Prefixes: map[string]string{SchemaNamespace: "xs"},
	}
}

// Parse reads an XML document with DefaultOptions.
func Parse(data []byte) (Node, error) {
	return ParseWithOptions(data, DefaultOptions())
}

// ParseWithOptions reads an XML document and returns a document node whose
// only key is the qualified name of the root element. Errors from the XML
// reader are returned unchanged.
func ParseWithOptions(data []byte, opts Options) (Node, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}

	doc := Node{}
	doc.add(opts.qualify(root), opts.fromElement(root))
	return doc, nil
}

func (o Options) fromElement(el *xmltree.Element) Node {
	n := Node{}

	for _, a := range el.StartElement.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		key := a.Name.Local
		if a.Name.Space != "" {
			if q := el.Prefix(a.Name); q != "" && !strings.HasPrefix(q, ":") {
				key = q
			}
		}
		n[AttrPrefix+key] = a.Value
	}

	for i := range el.Children {
		child := &el.Children[i]
		n.add(o.qualify(child), o.fromElement(child))
	}

	if len(el.Children) == 0 && len(bytes.TrimSpace(el.Content)) > 0 {
		var text struct {
			Value string `xml:",chardata"`
		}
		if err := xmltree.Unmarshal(el, &text); err == nil {
			if s := strings.TrimSpace(text.Value); s != "" {
				n[TextKey] = s
			}
		}
	}

	return n
}

// qualify returns the key for an element: canonical prefix if configured,
// otherwise the prefix bound in the document, otherwise the local name.
func (o Options) qualify(el *xmltree.Element) string {
	name := el.Name
	if name.Space == "" {
		return name.Local
	}
	if p, ok := o.Prefixes[name.Space]; ok {
		return p + ":" + name.Local
	}
	if q := el.Prefix(name); q != "" {
		if strings.HasPrefix(q, ":") {
			return name.Local
		}
		return q
	}
	// encoding/xml leaves an unbound prefix in Space
	if !strings.ContainsAny(name.Space, ":/") {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

func (n Node) add(key string, child Node) {
	switch cur := n[key].(type) {
	case nil:
		n[key] = child
	case Node:
		n[key] = []Node{cur, child}
	case []Node:
		n[key] = append(cur, child)
	}
}

// Attr returns the attribute value or the empty string when it is absent.
func (n Node) Attr(name string) string {
	v, _ := n.LookupAttr(name)
	return v
}

// LookupAttr returns the attribute value and whether it was present.
func (n Node) LookupAttr(name string) (string, bool) {
	v, ok := n[AttrPrefix+name]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Text returns the leaf text of the node.
func (n Node) Text() string {
	s, _ := n[TextKey].(string)
	return s
}

// Children returns the child nodes under key in document order.
func (n Node) Children(key string) []Node {
	return List(n[key])
}

// First returns the first child node under key.
func (n Node) First(key string) (Node, bool) {
	children := n.Children(key)
	if len(children) == 0 {
		return nil, false
	}
	return children[0], true
}

// Has reports whether any child or attribute is stored under key.
func (n Node) Has(key string) bool {
	v, ok := n[key]
	return ok && v != nil
}

// List normalizes a value that may be absent, a single node or a list of
// nodes into an ordered list. Trees decoded elsewhere (e.g. from JSON) use
// map[string]any and []any, which are accepted as well.
func List(v any) []Node {
	switch x := v.(type) {
	case nil:
		return []Node{}
	case Node:
		return []Node{x}
	case map[string]any:
		return []Node{Node(x)}
	case []Node:
		return x
	case []any:
		out := make([]Node, 0, len(x))
		for _, item := range x {
			switch it := item.(type) {
			case Node:
				out = append(out, it)
			case map[string]any:
				out = append(out, Node(it))
			}
		}
		return out
	default:
		return []Node{}
	}
}
