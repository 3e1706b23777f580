package parser

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Segment is one step in a Path: an object property or an array index.
type Segment struct {
	Property string
	Index    int
	IsIndex  bool
}

// Property builds a property segment.
func Property(name string) Segment {
	return Segment{Property: name}
}

// Index builds an array index segment.
func Index(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// Path locates a value within a JSON document. The empty path is the
// document root. Two paths with equal segments are equivalent no matter
// how they were produced.
type Path []Segment

// ParsePointer decodes an RFC 6901 pointer (e.g. "/items/0/name") into
// a Path. Purely numeric segments become indices. Returns the empty
// path for "" and "/".
func ParsePointer(ptr string) (Path, error) {
	if ptr == "" || ptr == "/" {
		return Path{}, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, errors.New("invalid json pointer: must start with '/'")
	}
	parts := strings.Split(ptr[1:], "/")
	path := make(Path, 0, len(parts))
	for _, p := range parts {
		// Unescape per RFC 6901
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		if i, ok := parseIndex(p); ok {
			path = append(path, Index(i))
		} else {
			path = append(path, Property(p))
		}
	}
	return path, nil
}

// PathFromInstanceLocation converts a jsonschema instance location into
// a Path, consulting the instance value to type each segment: a numeric
// segment only becomes an index when the value it traverses is an
// array. Without that, an object key like "0" would be mistaken for an
// array ordinal.
func PathFromInstanceLocation(location []string, instance any) Path {
	path := make(Path, 0, len(location))
	current := instance
	for _, seg := range location {
		switch v := current.(type) {
		case []any:
			if i, ok := parseIndex(seg); ok {
				path = append(path, Index(i))
				if i < len(v) {
					current = v[i]
				} else {
					current = nil
				}
				continue
			}
			path = append(path, Property(seg))
			current = nil
		case map[string]any:
			path = append(path, Property(seg))
			current = v[seg]
		default:
			// Drifted off the instance; fall back to the shape of the
			// segment itself.
			if i, ok := parseIndex(seg); ok {
				path = append(path, Index(i))
			} else {
				path = append(path, Property(seg))
			}
		}
	}
	return path
}

// parseIndex reports whether segment is a plain non-negative decimal,
// and its value.
func parseIndex(segment string) (int, bool) {
	if segment == "" || segment[0] == '-' {
		return 0, false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return i, true
}

// String renders the path in JSON pointer form.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		if seg.IsIndex {
			b.WriteString(strconv.Itoa(seg.Index))
		} else {
			escaped := strings.ReplaceAll(seg.Property, "~", "~0")
			escaped = strings.ReplaceAll(escaped, "/", "~1")
			b.WriteString(escaped)
		}
	}
	return b.String()
}

// PointingAt renders a human label for the path: the final property
// name, with any trailing indices shown against their owning property,
// e.g. "items[2]". The empty path renders as "[root]".
func (p Path) PointingAt() string {
	if len(p) == 0 {
		return "[root]"
	}
	last := p[len(p)-1]
	if !last.IsIndex {
		return last.Property
	}
	return p[:len(p)-1].PointingAt() + "[" + strconv.Itoa(last.Index) + "]"
}

// Resolve walks the positioned tree one segment at a time and returns
// the node the path identifies, or nil when any segment does not apply
// (schema/document drift, or a nil tree).
func (n *Node) Resolve(path Path) *Node {
	current := n
	for _, seg := range path {
		if current == nil {
			return nil
		}
		if seg.IsIndex {
			if current.Kind != ArrayNode || seg.Index < 0 || seg.Index >= len(current.Items) {
				return nil
			}
			current = current.Items[seg.Index]
			continue
		}
		member := current.Member(seg.Property)
		if member == nil {
			return nil
		}
		current = member.Value
	}
	return current
}

// Reconstruct renders a single source-like line for the value at the
// path: `"key": <value>` when the path ends in a property, the value
// alone for an index or the root. Multi-line values are truncated to
// their opening line, so one problem never spans source lines.
func Reconstruct(path Path, value any) string {
	pretty, err := json.MarshalIndent(value, "", "  ")
	rendered := ""
	if err == nil {
		rendered = string(pretty)
	}

	var line string
	if len(path) > 0 && !path[len(path)-1].IsIndex {
		line = "\"" + path[len(path)-1].Property + "\": " + rendered
	} else {
		line = rendered
	}

	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return line
}

// UnderlineRange computes the byte range of a reconstructed line to
// mark with carets. When the line has a `": "` separator the carets
// cover the value after it; otherwise they cover the whole line.
func UnderlineRange(source string) (start, end int) {
	if i := strings.Index(source, ": "); i >= 0 {
		return i + 2, len(source)
	}
	return 0, len(source)
}
