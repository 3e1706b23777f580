// Package schema validates JSON documents against versioned JSON
// Schemas and converts the engine's raw failures into positioned,
// human-readable problems.
package schema

import (
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// Registry maps a document's declared version string to the JSON
// Schema that governs it. Each version maps to exactly one immutable
// schema document.
type Registry struct {
	schemas map[string][]byte
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string][]byte)}
}

// Register adds a JSON-encoded schema for a version, replacing any
// previous registration.
func (r *Registry) Register(version string, schemaJSON []byte) {
	r.schemas[version] = schemaJSON
}

// RegisterYAML adds a YAML-authored schema, converting it to JSON at
// registration time.
func (r *Registry) RegisterYAML(version string, schemaYAML []byte) error {
	schemaJSON, err := yaml.YAMLToJSON(schemaYAML)
	if err != nil {
		return fmt.Errorf("schema for version %q is not valid YAML: %w", version, err)
	}
	r.Register(version, schemaJSON)
	return nil
}

// Lookup returns the schema registered for a version.
func (r *Registry) Lookup(version string) ([]byte, bool) {
	schemaJSON, ok := r.schemas[version]
	return schemaJSON, ok
}

// Versions lists the registered versions in sorted order.
func (r *Registry) Versions() []string {
	versions := make([]string, 0, len(r.schemas))
	for v := range r.schemas {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}
