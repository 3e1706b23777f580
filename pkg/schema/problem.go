package schema

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cfglint/cfglint/pkg/console"
	"github.com/cfglint/cfglint/pkg/parser"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// FileLocation is where a problem sits on disk. Position is nil when
// the path could not be resolved in the positioned tree.
type FileLocation struct {
	Path     string
	Position *parser.Position
}

// Problem is one schema violation enriched with a message, notes and
// a source location. It references the tree and schema it was computed
// from but owns none of them.
type Problem struct {
	Kind         jsonschema.ErrorKind
	InstancePath parser.Path
	Notes        []string
	Location     *FileLocation

	// Source is the reconstructed single-line rendering of the
	// offending key/value; Start and End delimit the underline.
	Source string
	Start  int
	End    int
}

// newProblem converts one raw engine failure into a Problem.
func newProblem(leaf *jsonschema.ValidationError, schemaDoc any, instance any, tree *parser.Node, filePath string) *Problem {
	path := parser.PathFromInstanceLocation(leaf.InstanceLocation, instance)

	value, _ := valueAt(instance, path)
	source := parser.Reconstruct(path, value)
	start, end := parser.UnderlineRange(source)

	var location *FileLocation
	if tree != nil && filePath != "" {
		location = &FileLocation{Path: filePath}
		if node := tree.Resolve(path); node != nil {
			pos := node.Pos
			location.Position = &pos
		}
	}

	return &Problem{
		Kind:         leaf.ErrorKind,
		InstancePath: path,
		Notes:        schemaNotes(schemaDoc, leaf),
		Location:     location,
		Source:       source,
		Start:        start,
		End:          end,
	}
}

// Diagnostic shapes the problem for the renderer.
func (p *Problem) Diagnostic() console.Diagnostic {
	d := console.Diagnostic{
		Headline: headline(p.Kind),
		Subject:  p.InstancePath.PointingAt(),
		Source:   p.Source,
		Start:    p.Start,
		End:      p.End,
		Message:  message(p.Kind),
		Notes:    p.Notes,
	}
	if p.Location != nil {
		d.File = p.Location.Path
		if p.Location.Position != nil {
			d.Line = p.Location.Position.Line
			d.Column = p.Location.Position.Column
		}
	}
	return d
}

// Render renders the problem as multi-line report text.
func (p *Problem) Render(mode console.Mode) string {
	return console.RenderDiagnostic(p.Diagnostic(), mode)
}

// ValidationErrors is the aggregate validation failure for one
// document: every problem, never truncated to the first.
type ValidationErrors struct {
	FilePath string
	Problems []*Problem
}

func (e *ValidationErrors) Error() string {
	name := e.FilePath
	if name == "" {
		name = "JSON"
	}
	return fmt.Sprintf("%s generated %d errors", name, len(e.Problems))
}

// Render renders every problem plus the trailing summary line.
func (e *ValidationErrors) Render(mode console.Mode) string {
	diagnostics := make([]console.Diagnostic, 0, len(e.Problems))
	for _, p := range e.Problems {
		diagnostics = append(diagnostics, p.Diagnostic())
	}
	return console.RenderReport(e.FilePath, diagnostics, mode)
}

// valueAt resolves a path within the plain value tree.
func valueAt(instance any, path parser.Path) (any, bool) {
	current := instance
	for _, seg := range path {
		switch v := current.(type) {
		case map[string]any:
			if seg.IsIndex {
				return nil, false
			}
			child, ok := v[seg.Property]
			if !ok {
				return nil, false
			}
			current = child
		case []any:
			if !seg.IsIndex || seg.Index < 0 || seg.Index >= len(v) {
				return nil, false
			}
			current = v[seg.Index]
		default:
			return nil, false
		}
	}
	return current, true
}

// schemaNotes reads the description of the parent of the failing
// schema path. The first line becomes "this should be ..."; any
// following lines are carried verbatim after normalization.
func schemaNotes(schemaDoc any, leaf *jsonschema.ValidationError) []string {
	segments := schemaFragmentSegments(leaf.SchemaURL)
	segments = append(segments, leaf.ErrorKind.KeywordPath()...)
	if len(segments) == 0 {
		return nil
	}
	segments = segments[:len(segments)-1]

	node := schemaDoc
	for _, seg := range segments {
		switch v := node.(type) {
		case map[string]any:
			child, ok := v[seg]
			if !ok {
				return nil
			}
			node = child
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			node = v[i]
		default:
			return nil
		}
	}

	obj, ok := node.(map[string]any)
	if !ok {
		return nil
	}
	description, ok := obj["description"].(string)
	if !ok {
		return nil
	}

	lines := strings.Split(description, "\n")
	notes := []string{"this should be " + console.Normalize(lines[0])}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		notes = append(notes, console.Normalize(line))
	}
	return notes
}

// schemaFragmentSegments decodes the pointer fragment of the failing
// subschema's URL into path segments.
func schemaFragmentSegments(schemaURL string) []string {
	_, frag, ok := strings.Cut(schemaURL, "#")
	if !ok || frag == "" || frag == "/" {
		return nil
	}
	frag = strings.TrimPrefix(frag, "/")
	parts := strings.Split(frag, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		segments = append(segments, p)
	}
	return segments
}
