// Package config loads factory configuration from YAML.
//
// A configuration file selects an alternate builder by dotted path,
// binds custom generators to field types, and declares named stores:
//
//	builder: corp.builder
//	generators:
//	  email: corp.email
//	stores:
//	  default:
//	    dialect: sqlite
//	    dsn: file:fixtures.db
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/bakery/schema"
)

// Store declares a SQL-backed store.
type Store struct {
	Dialect string `yaml:"dialect"`
	DSN     string `yaml:"dsn"`
}

// Config is the factory configuration.
type Config struct {
	// Builder is the dotted path of an alternate builder, resolved at
	// first use.
	Builder string `yaml:"builder,omitempty"`
	// Generators maps field type names to dotted generator paths.
	Generators map[string]string `yaml:"generators,omitempty"`
	// Stores declares named stores.
	Stores map[string]Store `yaml:"stores,omitempty"`
}

// Parse decodes and validates a configuration.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	for typeName := range cfg.Generators {
		if _, err := schema.TypeByName(typeName); err != nil {
			return nil, fmt.Errorf("config: generators: %w", err)
		}
	}
	for name, s := range cfg.Stores {
		if s.Dialect == "" {
			return nil, fmt.Errorf("config: store %q: missing dialect", name)
		}
		if s.DSN == "" {
			return nil, fmt.Errorf("config: store %q: missing dsn", name)
		}
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}
