package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfglint/cfglint/pkg/schema"
)

const testSchemaV1 = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["_version", "limit"],
  "additionalProperties": false,
  "properties": {
    "_version": {"const": "v1"},
    "limit": {"type": "integer", "minimum": 0}
  }
}`

const testSchemaV2 = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["_version", "limit"],
  "additionalProperties": false,
  "properties": {
    "_version": {"const": "v2"},
    "limit": {"type": "integer", "minimum": 0},
    "label": {"type": "string"}
  }
}`

// testConfig spans both versions; Label only exists from v2 on.
type testConfig struct {
	Version string `json:"_version"`
	Limit   int    `json:"limit"`
	Label   string `json:"label,omitempty"`
}

func (c testConfig) Migrate() (testConfig, bool) {
	if c.Version == "v2" {
		return c, false
	}
	c.Version = "v2"
	c.Label = "migrated"
	return c, true
}

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	registry := schema.NewRegistry()
	registry.Register("v1", []byte(testSchemaV1))
	registry.Register("v2", []byte(testSchemaV2))
	return registry
}

func testDefinition(t *testing.T, dir string) Definition {
	t.Helper()
	return Definition{
		Paths:    []string{filepath.Join(dir, "tool.json"), filepath.Join(dir, ".tool.json")},
		Registry: testRegistry(t),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadValidDocument(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)
	writeFile(t, d.Paths[0], `{"_version": "v1", "limit": 5}`)

	doc, err := d.Load()
	require.NoError(t, err)
	assert.Equal(t, d.Paths[0], doc.Path)
	assert.Equal(t, "v1", doc.Version)
	assert.NotNil(t, doc.Tree)

	cfg := Decode[testConfig](doc)
	assert.Equal(t, 5, cfg.Limit)
}

func TestLoadTypedConvenience(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)
	writeFile(t, d.Paths[1], `{"_version": "v2", "limit": 3, "label": "x"}`)

	cfg, err := Load[testConfig](d)
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.Label)
}

func TestLoadPrefersFirstCandidate(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)
	writeFile(t, d.Paths[0], `{"_version": "v1", "limit": 1}`)
	writeFile(t, d.Paths[1], `{"_version": "v1", "limit": 2}`)

	doc, err := d.Load()
	require.NoError(t, err)
	assert.Equal(t, d.Paths[0], doc.Path)

	cfg := Decode[testConfig](doc)
	assert.Equal(t, 1, cfg.Limit)
}

func TestLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)

	_, err := d.Load()
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	// The canonical (last) candidate is the reported path.
	assert.Equal(t, d.Paths[1], notFound.Path)
	assert.Contains(t, notFound.Error(), "does not exist")
}

func TestLoadSyntaxError(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)
	writeFile(t, d.Paths[0], `{"_version": "v1",`)

	_, err := d.Load()
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, d.Paths[0], syntaxErr.Path)
	assert.Error(t, errors.Unwrap(syntaxErr))
}

func TestLoadVersionErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  VersionReason
	}{
		{name: "missing field", content: `{"limit": 1}`, reason: VersionMissing},
		{name: "non-object document", content: `[1, 2]`, reason: VersionMissing},
		{name: "non-string field", content: `{"_version": 2, "limit": 1}`, reason: VersionNotString},
		{name: "unregistered version", content: `{"_version": "v9", "limit": 1}`, reason: VersionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			d := testDefinition(t, dir)
			writeFile(t, d.Paths[0], tt.content)

			_, err := d.Load()
			var versionErr *VersionError
			require.ErrorAs(t, err, &versionErr)
			assert.Equal(t, tt.reason, versionErr.Reason)
			if tt.reason == VersionUnknown {
				assert.Equal(t, "v9", versionErr.Version)
			}
		})
	}
}

func TestLoadValidationFailure(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)
	writeFile(t, d.Paths[0], `{"_version": "v1", "limit": -1}`)

	_, err := d.Load()
	var validationErrs *schema.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Len(t, validationErrs.Problems, 1)
	assert.Equal(t, d.Paths[0], validationErrs.FilePath)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)

	exists, err := d.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	writeFile(t, d.Paths[1], `{}`)
	exists, err = d.Exists()
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWriteAndReload(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)

	require.NoError(t, d.Write(testConfig{Version: "v2", Limit: 7}))

	// Writes land on the canonical path.
	_, err := os.Stat(d.CanonicalPath())
	require.NoError(t, err)

	cfg, err := Load[testConfig](d)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Limit)

	// Output ends with a newline.
	raw, err := os.ReadFile(d.CanonicalPath())
	require.NoError(t, err)
	assert.True(t, len(raw) > 0 && raw[len(raw)-1] == '\n')
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)

	t.Run("removes the canonical file", func(t *testing.T) {
		writeFile(t, d.CanonicalPath(), `{}`)
		require.NoError(t, d.Delete())
		_, err := os.Stat(d.CanonicalPath())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file is a DeleteError", func(t *testing.T) {
		err := d.Delete()
		var deleteErr *DeleteError
		require.ErrorAs(t, err, &deleteErr)
	})
}

func TestUpdateMigrates(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)
	// The outdated config sits on the first candidate; the rewrite
	// must land on the canonical path and remove the loaded file.
	writeFile(t, d.Paths[0], `{"_version": "v1", "limit": 4}`)

	next, changed, err := Update[testConfig](d)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "v2", next.Version)
	assert.Equal(t, "migrated", next.Label)

	_, err = os.Stat(d.Paths[0])
	assert.True(t, os.IsNotExist(err), "loaded file should be removed")

	cfg, err := Load[testConfig](d)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Limit)
	assert.Equal(t, "v2", cfg.Version)
}

func TestUpdateNoChange(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)
	writeFile(t, d.CanonicalPath(), `{"_version": "v2", "limit": 4}`)

	before, err := os.ReadFile(d.CanonicalPath())
	require.NoError(t, err)

	_, changed, err := Update[testConfig](d)
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := os.ReadFile(d.CanonicalPath())
	require.NoError(t, err)
	assert.Equal(t, before, after, "an up-to-date config is left untouched")
}

func TestUpdatePropagatesLoadErrors(t *testing.T) {
	dir := t.TempDir()
	d := testDefinition(t, dir)

	_, _, err := Update[testConfig](d)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
