package console

import (
	"errors"
	"fmt"
	"strings"
)

// StackStyle selects how a chain of wrapped errors is laid out. The
// set is closed on purpose; report formatting is not a plugin surface.
type StackStyle int

const (
	// StackStacked prints one numbered line per error, indented.
	StackStacked StackStyle = iota
	// StackInline prints the chain on a single line.
	StackInline
)

// stackIndent is the left margin of each stacked entry.
const stackIndent = 2

// FormatErrorStack renders an error and everything it wraps, walking
// errors.Unwrap until the chain ends.
func FormatErrorStack(err error, style StackStyle, mode Mode) string {
	var b strings.Builder

	index := 1
	for err != nil {
		switch style {
		case StackInline:
			b.WriteString(fmt.Sprintf(" ----- %d. %s", index, err.Error()))
		default:
			b.WriteString(strings.Repeat(" ", stackIndent))
			b.WriteString(applyStyle(mode, errorStyle, fmt.Sprintf("%d", index)))
			b.WriteString(applyStyle(mode, headlineStyle, "."))
			b.WriteString(" ")
			b.WriteString(err.Error())
			b.WriteByte('\n')
		}
		err = errors.Unwrap(err)
		index++
	}

	return b.String()
}

// FormatReport renders the failure of a named operation: a one-line
// summary followed by the stacked error chain.
func FormatReport(operation string, err error, mode Mode) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("`%s` reported an error\n", operation))
	b.WriteString(FormatErrorStack(err, StackStacked, mode))
	return b.String()
}
