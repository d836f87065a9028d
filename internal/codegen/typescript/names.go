package typescript

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okra-platform/xsd2ts/internal/schema"
)

// Primitive is a TypeScript primitive an XSD built-in type maps to
type Primitive int

const (
	// NotPrimitive means the name refers to a user-defined type
	NotPrimitive Primitive = iota
	PrimitiveString
	PrimitiveNumber
	PrimitiveBoolean
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveString:
		return "string"
	case PrimitiveNumber:
		return "number"
	case PrimitiveBoolean:
		return "boolean"
	default:
		return ""
	}
}

// LookupPrimitive maps an unprefixed XSD built-in type name.
func LookupPrimitive(local string) Primitive {
	switch local {
	case "string", "date", "dateTime", "time", "anyURI", "base64Binary", "hexBinary", "QName", "NOTATION":
		return PrimitiveString
	case "integer", "int", "long", "decimal", "float", "double":
		return PrimitiveNumber
	case "boolean":
		return PrimitiveBoolean
	default:
		return NotPrimitive
	}
}

// MapType returns the TypeScript type for an XSD type reference. An absent
// type is a string; anything that is not a known primitive is treated as a
// reference to a locally declared type.
func MapType(xsdType string) string {
	if xsdType == "" {
		return PrimitiveString.String()
	}

	local := schema.LocalName(xsdType)
	if p := LookupPrimitive(local); p != NotPrimitive {
		return p.String()
	}

	return TypeName(local)
}

// upper applies full Unicode case mapping, so one character may become
// several ('ß' is "SS"). A Caser keeps state and is not safe for concurrent
// use, hence one per call.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// TypeName strips the namespace prefix and uppercases the first character.
// The rest of the name is left untouched.
func TypeName(name string) string {
	local := schema.LocalName(name)
	_, size := utf8.DecodeRuneInString(local)
	if size == 0 {
		return ""
	}
	return upper(local[:size]) + local[size:]
}

// EnumKey derives an enum member identifier from a literal value:
// uppercased, with every character outside [A-Z0-9] replaced by '_'.
func EnumKey(value string) string {
	key := strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, upper(value))
	if key == "" {
		return "_"
	}
	return key
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// quote renders a single-quoted string literal
func quote(value string) string {
	return "'" + literalEscaper.Replace(value) + "'"
}
