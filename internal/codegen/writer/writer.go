package writer

import (
	"fmt"
	"strings"
)

// Writer builds generated source text with indentation tracking
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
}

// NewWriter creates a new code writer with specified indentation string
func NewWriter(indentString string) *Writer {
	return &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.updatePrefix()
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.updatePrefix()
	}
}

// Write writes a string without adding a newline
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef writes a formatted string without adding a newline
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes a string and adds a newline
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted string and adds a newline
func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline adds a newline character
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine ends the current block with one empty line; repeated calls
// never stack empty lines.
func (w *Writer) BlankLine() {
	if w.Len() > 0 && !strings.HasSuffix(w.String(), "\n\n") {
		w.Newline()
	}
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return w.sb.Len()
}

// String returns the generated code as a string
func (w *Writer) String() string {
	return w.sb.String()
}

// Bytes returns the generated code as a byte slice
func (w *Writer) Bytes() []byte {
	return []byte(w.String())
}

func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// WriteBlock writes opener, the indented content, then closer.
// Example: WriteBlock("export interface A {", "}", func() { w.WriteLine("id: string;") })
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteComment writes a single-line comment
func (w *Writer) WriteComment(comment string) {
	w.WriteLinef("// %s", comment)
}

// WriteJSDoc writes a /** */ block; single-line docs stay on one line.
func (w *Writer) WriteJSDoc(doc string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}

	lines := strings.Split(doc, "\n")
	if len(lines) == 1 {
		w.WriteLinef("/** %s */", lines[0])
		return
	}

	w.WriteLine("/**")
	for _, line := range lines {
		w.WriteLinef(" * %s", strings.TrimSpace(line))
	}
	w.WriteLine(" */")
}
