package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config is the top-level structure of pictor.yml.
type Config struct {
	// Server configures the remote collections backend.
	Server ServerConfig `yaml:"server"`

	// Collections configures the local collections root used when no
	// server is configured or reachable.
	Collections CollectionsConfig `yaml:"collections"`

	// Extensions holds component-scoped configuration sections (logging,
	// tui, ...) decoded on demand via UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline"`
}

// ServerConfig addresses the remote backend.
type ServerConfig struct {
	// URL is the base URL of the collections API (e.g. http://localhost:8484).
	// Empty means local mode.
	URL string `yaml:"url"`

	// TimeoutSeconds bounds a single API request. Zero uses the default.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// CollectionsConfig configures direct filesystem access.
type CollectionsConfig struct {
	// Root is the directory holding the collection tree.
	Root string `yaml:"root"`
}

// UnmarshalExtension decodes a component-scoped section of pictor.yml into
// the provided target struct. The target must be a pointer. A missing key is
// not an error; the target simply stays zero-valued.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	// mapstructure decodes the generic map into the typed target, using
	// yaml tags for consistency with the file format.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
