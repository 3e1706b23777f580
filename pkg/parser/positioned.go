package parser

import (
	"encoding/json"
)

// NodeKind identifies the JSON value category of a Node.
type NodeKind int

const (
	ObjectNode NodeKind = iota
	ArrayNode
	StringNode
	NumberNode
	BoolNode
	NullNode
)

// String returns the lowercase JSON name of the kind.
func (k NodeKind) String() string {
	switch k {
	case ObjectNode:
		return "object"
	case ArrayNode:
		return "array"
	case StringNode:
		return "string"
	case NumberNode:
		return "number"
	case BoolNode:
		return "boolean"
	case NullNode:
		return "null"
	default:
		return "unknown"
	}
}

// Position records where a JSON value sits in its source text.
// Line and Column are 1-based; Offset and Length are byte counts.
// The span covers exactly the source bytes of the value, including
// surrounding quotes for strings but excluding surrounding whitespace.
type Position struct {
	Line   int
	Column int
	Offset int
	Length int
}

// Member is one key/value pair of an object node, in declaration order.
// KeyPos covers the quoted key literal; the value carries its own position.
type Member struct {
	Key    string
	KeyPos Position
	Value  *Node
}

// Node is one JSON value annotated with its source position.
// Members is populated for ObjectNode, Items for ArrayNode.
type Node struct {
	Kind    NodeKind
	Pos     Position
	Members []Member
	Items   []*Node
}

// Member returns the member for key, or nil when the node is not an
// object or the key is absent.
func (n *Node) Member(key string) *Member {
	if n == nil || n.Kind != ObjectNode {
		return nil
	}
	for i := range n.Members {
		if n.Members[i].Key == key {
			return &n.Members[i]
		}
	}
	return nil
}

// Parse scans text as JSON and returns the positioned node tree.
// It returns nil, never an error, when the text is not valid JSON:
// callers treat that as "positions unavailable" and report without
// source locations. Strict syntax checking is done separately by the
// plain value parse.
func Parse(text string) *Node {
	s := &scanner{src: text, line: 1, col: 1}
	s.skipSpace()
	node, ok := s.parseValue()
	if !ok {
		return nil
	}
	s.skipSpace()
	if s.off != len(s.src) {
		return nil
	}
	return node
}

// scanner walks the source one byte at a time, tracking line and
// column. Column resets on '\n'; a tab counts as one column.
type scanner struct {
	src  string
	off  int
	line int
	col  int
}

func (s *scanner) position() Position {
	return Position{Line: s.line, Column: s.col, Offset: s.off}
}

func (s *scanner) eof() bool {
	return s.off >= len(s.src)
}

func (s *scanner) peek() byte {
	return s.src[s.off]
}

func (s *scanner) next() byte {
	c := s.src[s.off]
	s.off++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r':
			s.next()
		default:
			return
		}
	}
}

// expect consumes c if it is the next byte.
func (s *scanner) expect(c byte) bool {
	if s.eof() || s.peek() != c {
		return false
	}
	s.next()
	return true
}

func (s *scanner) literal(lit string) bool {
	if len(s.src)-s.off < len(lit) {
		return false
	}
	if s.src[s.off:s.off+len(lit)] != lit {
		return false
	}
	for range lit {
		s.next()
	}
	return true
}

func (s *scanner) parseValue() (*Node, bool) {
	if s.eof() {
		return nil, false
	}
	start := s.position()

	var node *Node
	switch c := s.peek(); {
	case c == '{':
		n, ok := s.parseObject()
		if !ok {
			return nil, false
		}
		node = n
	case c == '[':
		n, ok := s.parseArray()
		if !ok {
			return nil, false
		}
		node = n
	case c == '"':
		if _, ok := s.parseString(); !ok {
			return nil, false
		}
		node = &Node{Kind: StringNode}
	case c == 't':
		if !s.literal("true") {
			return nil, false
		}
		node = &Node{Kind: BoolNode}
	case c == 'f':
		if !s.literal("false") {
			return nil, false
		}
		node = &Node{Kind: BoolNode}
	case c == 'n':
		if !s.literal("null") {
			return nil, false
		}
		node = &Node{Kind: NullNode}
	case c == '-' || (c >= '0' && c <= '9'):
		if !s.parseNumber() {
			return nil, false
		}
		node = &Node{Kind: NumberNode}
	default:
		return nil, false
	}

	start.Length = s.off - start.Offset
	node.Pos = start
	return node, true
}

func (s *scanner) parseObject() (*Node, bool) {
	node := &Node{Kind: ObjectNode}
	s.next() // consume '{'
	s.skipSpace()
	if s.expect('}') {
		return node, true
	}

	for {
		s.skipSpace()
		if s.eof() || s.peek() != '"' {
			return nil, false
		}
		keyPos := s.position()
		key, ok := s.parseString()
		if !ok {
			return nil, false
		}
		keyPos.Length = s.off - keyPos.Offset

		s.skipSpace()
		if !s.expect(':') {
			return nil, false
		}
		s.skipSpace()

		value, ok := s.parseValue()
		if !ok {
			return nil, false
		}

		// Duplicate keys: the last occurrence wins, for both the value
		// and the recorded positions. The member keeps its original
		// slot so declaration order is preserved.
		if existing := node.Member(key); existing != nil {
			existing.KeyPos = keyPos
			existing.Value = value
		} else {
			node.Members = append(node.Members, Member{Key: key, KeyPos: keyPos, Value: value})
		}

		s.skipSpace()
		if s.expect(',') {
			continue
		}
		if s.expect('}') {
			return node, true
		}
		return nil, false
	}
}

func (s *scanner) parseArray() (*Node, bool) {
	node := &Node{Kind: ArrayNode}
	s.next() // consume '['
	s.skipSpace()
	if s.expect(']') {
		return node, true
	}

	for {
		s.skipSpace()
		item, ok := s.parseValue()
		if !ok {
			return nil, false
		}
		node.Items = append(node.Items, item)

		s.skipSpace()
		if s.expect(',') {
			continue
		}
		if s.expect(']') {
			return node, true
		}
		return nil, false
	}
}

// parseString consumes a quoted string literal and returns its decoded
// value. The scanner is left just past the closing quote.
func (s *scanner) parseString() (string, bool) {
	start := s.off
	s.next() // consume opening quote
	for !s.eof() {
		c := s.next()
		switch c {
		case '"':
			raw := s.src[start:s.off]
			var decoded string
			if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
				return "", false
			}
			return decoded, true
		case '\\':
			if s.eof() {
				return "", false
			}
			s.next() // escaped byte; \uXXXX hex digits pass through the loop
		case '\n':
			// raw newlines are not valid inside JSON strings
			return "", false
		}
	}
	return "", false
}

func (s *scanner) parseNumber() bool {
	digits := func() bool {
		n := 0
		for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
			s.next()
			n++
		}
		return n > 0
	}

	s.expect('-')
	if !digits() {
		return false
	}
	if s.expect('.') {
		if !digits() {
			return false
		}
	}
	if !s.eof() && (s.peek() == 'e' || s.peek() == 'E') {
		s.next()
		if !s.eof() && (s.peek() == '+' || s.peek() == '-') {
			s.next()
		}
		if !digits() {
			return false
		}
	}
	return true
}
