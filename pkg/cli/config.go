// Package cli implements the cfglint subcommands on top of the
// config, schema and console packages.
package cli

import (
	_ "embed"

	"github.com/cfglint/cfglint/pkg/config"
	"github.com/cfglint/cfglint/pkg/constants"
	"github.com/cfglint/cfglint/pkg/schema"
)

//go:embed schemas/config_v1.json
var configSchemaV1 []byte

//go:embed schemas/config_v2.json
var configSchemaV2 []byte

// Config is the tool's own configuration. One struct covers every
// supported format version; version-specific fields are pointers or
// omitempty so a document round-trips without inventing fields.
type Config struct {
	Version string `json:"_version"`

	// Color is only present in v1 documents.
	Color *bool `json:"color,omitempty"`
	// ColorMode replaces Color from v2 on: auto, always or never.
	ColorMode string `json:"colorMode,omitempty"`

	MaxProblems int      `json:"maxProblems"`
	SchemaDirs  []string `json:"schemaDirs,omitempty"`
}

// DefaultConfig is what init and reset write.
func DefaultConfig() Config {
	return Config{
		Version:     constants.LatestConfigVersion,
		ColorMode:   "auto",
		MaxProblems: 20,
	}
}

// Migrate produces the latest-version equivalent of the config and
// whether anything changed. v1's boolean color flag becomes the v2
// colorMode.
func (c Config) Migrate() (Config, bool) {
	if c.Version == constants.LatestConfigVersion {
		return c, false
	}

	next := c
	next.Version = constants.LatestConfigVersion
	next.ColorMode = "auto"
	if c.Color != nil {
		if *c.Color {
			next.ColorMode = "always"
		} else {
			next.ColorMode = "never"
		}
	}
	next.Color = nil
	return next, true
}

// ConfigRegistry maps every supported config version to its schema.
func ConfigRegistry() *schema.Registry {
	registry := schema.NewRegistry()
	registry.Register("v1", configSchemaV1)
	registry.Register("v2", configSchemaV2)
	return registry
}

// ConfigDefinition is the discovery and schema setup for the tool's
// own config file.
func ConfigDefinition() config.Definition {
	return config.Definition{
		Paths:    []string{constants.ConfigFileName, constants.HiddenConfigFileName},
		Registry: ConfigRegistry(),
	}
}
