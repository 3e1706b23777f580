// Package config loads versioned JSON configuration files: candidate
// discovery, strict parsing, version-keyed schema resolution,
// validation and typed decoding, surfacing one tagged error per
// failure. Every load re-reads from disk; nothing is cached.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cfglint/cfglint/pkg/parser"
	"github.com/cfglint/cfglint/pkg/schema"
)

// VersionField is the reserved top-level field identifying a
// document's schema version.
const VersionField = "_version"

// Definition describes one versioned config file: where it may live
// and which schemas govern it.
type Definition struct {
	// Paths are the candidate locations in priority order; the first
	// existing one is loaded.
	Paths []string
	// Registry maps declared versions to their schemas.
	Registry *schema.Registry
}

// CanonicalPath is where the file is expected to live and where writes
// go: the last candidate.
func (d Definition) CanonicalPath() string {
	if len(d.Paths) == 0 {
		return ""
	}
	return d.Paths[len(d.Paths)-1]
}

// discover returns the first existing candidate path.
func (d Definition) discover() (string, error) {
	for _, path := range d.Paths {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", &ReadError{Path: path, Err: err}
		}
	}
	return "", &NotFoundError{Path: d.CanonicalPath()}
}

// Document is one successfully validated load.
type Document struct {
	Path    string
	Version string
	Raw     []byte
	// Value is the plain value tree the schema was checked against.
	Value any
	// Tree is the positioned node tree; nil when the positional parse
	// failed (diagnostics would then have been location-free anyway).
	Tree *parser.Node
}

// Load runs one load attempt: discover, read, parse, resolve the
// schema by declared version, validate. Any failure is returned as
// one of the tagged error types of this package or as
// *schema.ValidationErrors; no partial document is ever returned.
func (d Definition) Load() (*Document, error) {
	path, err := d.discover()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, &SyntaxError{Path: path, Err: err}
	}

	// Re-parse with positions for diagnostics. A nil tree is fine:
	// problems then render without source locations.
	tree := parser.Parse(string(raw))

	version, err := documentVersion(value, path, d.Registry)
	if err != nil {
		return nil, err
	}
	schemaJSON, _ := d.Registry.Lookup(version)

	if err := schema.Validate(schemaJSON, value, tree, path); err != nil {
		return nil, err
	}

	return &Document{Path: path, Version: version, Raw: raw, Value: value, Tree: tree}, nil
}

// documentVersion extracts and resolves the reserved version field.
// Its three failure reasons are distinct: field absent, field not a
// string, version not registered.
func documentVersion(value any, path string, registry *schema.Registry) (string, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return "", &VersionError{Path: path, Reason: VersionMissing}
	}
	field, ok := obj[VersionField]
	if !ok {
		return "", &VersionError{Path: path, Reason: VersionMissing}
	}
	version, ok := field.(string)
	if !ok {
		return "", &VersionError{Path: path, Reason: VersionNotString}
	}
	if _, ok := registry.Lookup(version); !ok {
		return "", &VersionError{Path: path, Reason: VersionUnknown, Version: version}
	}
	return version, nil
}

// Decode converts a schema-valid document into the typed config.
// Schema validity guarantees structural decodability, so a failure
// here is a contract violation by the embedding application, not a
// user-facing error.
func Decode[T any](doc *Document) T {
	var value T
	if err := json.Unmarshal(doc.Raw, &value); err != nil {
		panic(fmt.Sprintf("config: schema-valid document failed to decode: %v", err))
	}
	return value
}

// Load is the typed convenience over Definition.Load.
func Load[T any](d Definition) (T, error) {
	doc, err := d.Load()
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](doc), nil
}

// Exists reports whether any candidate path exists.
func (d Definition) Exists() (bool, error) {
	_, err := d.discover()
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Write serializes v as pretty-printed JSON and overwrites the
// canonical path in place. No locking is performed.
func (d Definition) Write(v any) error {
	path := d.CanonicalPath()
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	pretty = append(pretty, '\n')
	if err := os.WriteFile(path, pretty, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Delete removes the canonical file.
func (d Definition) Delete() error {
	path := d.CanonicalPath()
	if err := os.Remove(path); err != nil {
		return &DeleteError{Path: path, Err: err}
	}
	return nil
}

// Migratable is implemented by typed configs that can produce their
// latest-version equivalent. Migrate returns the (possibly identical)
// value and whether anything changed; one explicit function per config
// type keeps migration auditable.
type Migratable[T any] interface {
	Migrate() (T, bool)
}

// Update loads the config, migrates it, and rewrites the file when the
// migration changed it. The delete-then-write is not atomic: a failed
// delete leaves the old file, but a failed write after a successful
// delete leaves no config on disk and requires manual recovery.
func Update[T Migratable[T]](d Definition) (T, bool, error) {
	doc, err := d.Load()
	if err != nil {
		var zero T
		return zero, false, err
	}
	current := Decode[T](doc)

	next, changed := current.Migrate()
	if !changed {
		return next, false, nil
	}

	// Remove the file that was actually loaded; the rewrite goes to
	// the canonical path.
	if err := os.Remove(doc.Path); err != nil {
		var zero T
		return zero, false, &DeleteError{Path: doc.Path, Err: err}
	}
	if err := d.Write(next); err != nil {
		var zero T
		return zero, false, err
	}
	return next, true, nil
}
