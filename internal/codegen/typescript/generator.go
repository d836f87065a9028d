package typescript

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/okra-platform/xsd2ts/internal/codegen/writer"
	"github.com/okra-platform/xsd2ts/internal/schema"
)

// ErrNilSchema is returned when Generate is called without a schema
var ErrNilSchema = errors.New("schema cannot be nil")

// placeholderDoc documents empty interfaces when comments are rendered
const placeholderDoc = "Type is referenced but not declared in this document."

// timestampLayout matches JavaScript's Date.toISOString
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Generator generates TypeScript declarations from an XSD schema
type Generator struct {
	now      func() time.Time // nil omits the "Generated on" header line
	withDocs bool
	logger   zerolog.Logger
}

// NewGenerator creates a new TypeScript code generator
func NewGenerator() *Generator {
	return &Generator{
		logger: zerolog.Nop(),
	}
}

// WithTimestamp adds a "Generated on" header line using the given clock
func (g *Generator) WithTimestamp(now func() time.Time) *Generator {
	g.now = now
	return g
}

// WithDocs renders xs:documentation as JSDoc comments
func (g *Generator) WithDocs(withDocs bool) *Generator {
	g.withDocs = withDocs
	return g
}

// WithLogger sets the logger that receives diagnostics
func (g *Generator) WithLogger(logger zerolog.Logger) *Generator {
	g.logger = logger
	return g
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".ts"
}

// Generate declares and renders the schema. Placeholder diagnostics are
// logged as warnings.
func (g *Generator) Generate(s *schema.Schema) ([]byte, error) {
	if s == nil {
		return nil, ErrNilSchema
	}

	file := Declare(s)
	for _, d := range file.Diagnostics {
		g.logger.Warn().
			Str("declaration", d.Name).
			Str("severity", string(d.Severity)).
			Msg(d.Message)
	}

	return g.Render(file), nil
}

// Declare maps a schema to declarations in a fixed order: complex types,
// then enumerated simple types, then placeholders for top-level element
// types that no earlier declaration provides.
func Declare(s *schema.Schema) *File {
	f := &File{
		Namespace:    s.TargetNamespace,
		Declarations: []Declaration{},
		Diagnostics:  []Diagnostic{},
	}

	for _, ct := range s.ComplexTypes {
		f.Declarations = append(f.Declarations, declareComplexType(ct))
	}

	for _, st := range s.SimpleTypes {
		if !st.HasEnumeration() {
			continue
		}
		f.Declarations = append(f.Declarations, &Enum{
			Name:   TypeName(st.Name),
			Doc:    st.Doc,
			Values: append([]string(nil), st.Restrictions...),
		})
	}

	for _, el := range s.Elements {
		if el.Type == "" {
			continue
		}
		name := TypeName(el.Type)
		if _, ok := f.Lookup(name); ok {
			continue
		}
		f.Declarations = append(f.Declarations, &Interface{
			Name:        name,
			Properties:  []Property{},
			Placeholder: true,
		})
		f.Diagnostics = append(f.Diagnostics, placeholderDiagnostic(el, name))
	}

	return f
}

func declareComplexType(ct schema.ComplexType) *Interface {
	iface := &Interface{
		Name:       TypeName(ct.Name),
		Doc:        ct.Doc,
		Properties: make([]Property, 0, len(ct.Elements)+len(ct.Attributes)),
	}

	for _, el := range ct.Elements {
		iface.Properties = append(iface.Properties, Property{
			Name:     el.Name,
			Type:     MapType(el.Type),
			Optional: el.IsOptional(),
			Array:    el.IsArray(),
			Doc:      el.Doc,
		})
	}

	for _, attr := range ct.Attributes {
		iface.Properties = append(iface.Properties, Property{
			Name:     attr.Name,
			Type:     MapType(attr.Type),
			Optional: !attr.IsRequired(),
			Doc:      attr.Doc,
		})
	}

	return iface
}

func placeholderDiagnostic(el schema.Element, name string) Diagnostic {
	msg := fmt.Sprintf("element %q references type %q which is not declared in this document; emitted empty interface %s", el.Name, el.Type, name)
	if LookupPrimitive(schema.LocalName(el.Type)) != NotPrimitive {
		msg = fmt.Sprintf("element %q uses built-in type %q; emitted empty interface %s", el.Name, el.Type, name)
	}

	return Diagnostic{
		Severity: SeverityWarning,
		Name:     name,
		Message:  msg,
	}
}

// Render writes the header and every declaration in order, separated by
// blank lines.
func (g *Generator) Render(f *File) []byte {
	w := writer.NewWriter("  ")

	w.WriteComment("Generated TypeScript definitions from XSD")
	if g.now != nil {
		w.WriteComment("Generated on: " + g.now().UTC().Format(timestampLayout))
	}
	w.BlankLine()

	if f.Namespace != "" {
		w.WriteComment("Target namespace: " + f.Namespace)
		w.BlankLine()
	}

	for i, d := range f.Declarations {
		if i > 0 {
			w.BlankLine()
		}
		switch d := d.(type) {
		case *Interface:
			g.renderInterface(w, d)
		case *Enum:
			g.renderEnum(w, d)
		}
	}

	return w.Bytes()
}

func (g *Generator) renderInterface(w *writer.Writer, iface *Interface) {
	if g.withDocs {
		doc := iface.Doc
		if iface.Placeholder && doc == "" {
			doc = placeholderDoc
		}
		w.WriteJSDoc(doc)
	}

	w.WriteBlock(fmt.Sprintf("export interface %s {", iface.Name), "}", func() {
		for _, p := range iface.Properties {
			if g.withDocs {
				w.WriteJSDoc(p.Doc)
			}
			w.WriteLine(p.String())
		}
	})
}

func (g *Generator) renderEnum(w *writer.Writer, enum *Enum) {
	if g.withDocs {
		w.WriteJSDoc(enum.Doc)
	}

	w.WriteBlock(fmt.Sprintf("export enum %s {", enum.Name), "}", func() {
		for i, value := range enum.Values {
			w.Writef("%s = %s", EnumKey(value), quote(value))
			if i < len(enum.Values)-1 {
				w.Write(",")
			}
			w.Newline()
		}
	})
}

// String renders the property as an interface member line
func (p Property) String() string {
	optional := ""
	if p.Optional {
		optional = "?"
	}
	array := ""
	if p.Array {
		array = "[]"
	}
	return fmt.Sprintf("%s%s: %s%s;", p.Name, optional, p.Type, array)
}
