package console

import (
	"fmt"
	"strconv"
	"strings"
)

// Diagnostic is one renderable validation problem. It carries only what
// the renderer needs; building one from a raw schema failure is the
// schema package's job.
type Diagnostic struct {
	// Headline is the kind-specific phrase of the first line, rendered
	// as `error: <Headline> '<Subject>'`.
	Headline string
	// Subject is the human label for the offending path, e.g. "items[2]".
	Subject string

	// File is empty when no location is known.
	File string
	// Line and Column are 1-based; zero means the position is unknown
	// even though the file is.
	Line   int
	Column int

	// Source is the single-line reconstruction of the offending
	// key/value; Start and End delimit the byte range to underline.
	Source string
	Start  int
	End    int

	// Message is the kind-specific suffix printed after the carets.
	Message string
	// Notes are printed one per line after the underline.
	Notes []string
}

// gutterWidth is the decimal digit count of the source line number, or
// 1 when no line number is known. Every structural line of one problem
// re-emits its gutter token at this width.
func (d Diagnostic) gutterWidth() int {
	if d.Line <= 0 {
		return 1
	}
	return len(strconv.Itoa(d.Line))
}

// RenderDiagnostic renders one problem as multi-line text in the fixed
// layout: headline, optional file line, spacer, source, underline, and
// notes.
func RenderDiagnostic(d Diagnostic, mode Mode) string {
	var b strings.Builder
	width := d.gutterWidth()

	symbol := func(s string) {
		b.WriteString(strings.Repeat(" ", width))
		b.WriteString(applyStyle(mode, gutterStyle, s))
	}
	spacer := func() {
		symbol(" |")
		b.WriteByte('\n')
	}

	// headline
	b.WriteString(applyStyle(mode, errorStyle, "error"))
	b.WriteString(applyStyle(mode, headlineStyle, fmt.Sprintf(": %s '%s'", d.Headline, d.Subject)))
	b.WriteByte('\n')

	// file line
	if d.File != "" {
		symbol("--> ")
		b.WriteString(ToRelativePath(d.File))
		if d.Line > 0 {
			b.WriteString(fmt.Sprintf(":%d:%d", d.Line, d.Column))
		}
		b.WriteByte('\n')
	}

	spacer()

	// source line
	if d.Line > 0 {
		b.WriteString(applyStyle(mode, gutterStyle, fmt.Sprintf("%*d", width, d.Line)))
	} else {
		b.WriteString(strings.Repeat(" ", width))
	}
	b.WriteString(applyStyle(mode, gutterStyle, " | "))
	b.WriteString(d.Source)
	b.WriteByte('\n')

	// underline line
	symbol(" | ")
	b.WriteString(strings.Repeat(" ", d.Start))
	carets := d.End - d.Start
	if carets < 1 {
		carets = 1
	}
	underline := strings.Repeat("^", carets)
	if d.Message != "" {
		underline += " " + d.Message
	}
	b.WriteString(applyStyle(mode, errorStyle, underline))
	b.WriteByte('\n')

	// notes
	if len(d.Notes) > 0 {
		spacer()
		for _, note := range d.Notes {
			symbol(" = ")
			b.WriteString(applyStyle(mode, noteStyle, "note:"))
			b.WriteString(" ")
			b.WriteString(note)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// RenderReport renders every problem followed by the trailing summary
// line. The file name falls back to "JSON" when the document did not
// come from a file.
func RenderReport(file string, diagnostics []Diagnostic, mode Mode) string {
	var b strings.Builder
	for _, d := range diagnostics {
		b.WriteString(RenderDiagnostic(d, mode))
	}

	name := file
	if name == "" {
		name = "JSON"
	}
	b.WriteString(fmt.Sprintf("%s generated %d errors\n", name, len(diagnostics)))
	return b.String()
}
