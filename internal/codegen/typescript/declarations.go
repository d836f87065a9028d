package typescript

// Declaration is a generated top-level TypeScript declaration: *Interface or *Enum.
type Declaration interface {
	DeclarationName() string
	isDeclaration()
}

// Interface is an `export interface` declaration
type Interface struct {
	Name       string
	Doc        string
	Properties []Property
	// Placeholder marks an empty interface emitted for a referenced type
	// that has no declaration in the document
	Placeholder bool
}

// Property is a single interface member
type Property struct {
	Name     string
	Type     string
	Optional bool
	Array    bool
	Doc      string
}

// Enum is an `export enum` declaration with string members
type Enum struct {
	Name   string
	Doc    string
	Values []string
}

func (i *Interface) DeclarationName() string { return i.Name }
func (e *Enum) DeclarationName() string      { return e.Name }

func (*Interface) isDeclaration() {}
func (*Enum) isDeclaration()      {}

// Severity of a Diagnostic
type Severity string

const (
	SeverityWarning Severity = "warning"
)

// Diagnostic is a non-fatal finding produced while declaring a schema
type Diagnostic struct {
	Severity Severity `json:"severity"`
	// Name is the declaration the diagnostic is about
	Name    string `json:"name"`
	Message string `json:"message"`
}

// File is the ordered set of declarations for one schema document
type File struct {
	Namespace    string
	Declarations []Declaration
	Diagnostics  []Diagnostic
}

// Lookup returns the first declaration with the given name.
func (f *File) Lookup(name string) (Declaration, bool) {
	for _, d := range f.Declarations {
		if d.DeclarationName() == name {
			return d, true
		}
	}
	return nil, false
}
