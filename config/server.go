package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the settings of the catalog server binary.
type ServerConfig struct {
	Port         string               `yaml:"port"`
	DataDir      string               `yaml:"data_dir"`
	MaxBodyBytes int64                `yaml:"max_body_bytes"`
	SeedFile     string               `yaml:"seed_file"`   // Optional JSON file with initial items, keyed by collection
	Collections  []CollectionSettings `yaml:"collections"` // Overrides or additions to DefaultCollections, matched by name
}

// Load reads a YAML configuration file. ${VAR} references are replaced with
// environment variables before parsing.
func Load(path string) (ServerConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return ServerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	data = expandEnvVars(data)

	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyDefaults fills in unset values.
func (cfg *ServerConfig) ApplyDefaults() {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./library_data"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10 << 20
	}
	for i := range cfg.Collections {
		cfg.Collections[i].ApplyDefaults()
	}
}

// Validate reports the first problem found in the configuration.
func (cfg *ServerConfig) Validate() error {
	seen := make(map[string]bool)
	for _, c := range cfg.Collections {
		if conflicts := c.ValidateFieldNames(); len(conflicts) > 0 {
			return fmt.Errorf("collection %q: %s", c.Name, strings.Join(conflicts, "; "))
		}
		if seen[c.Name] {
			return fmt.Errorf("collection %q configured more than once", c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// ResolveCollections merges the configured collections over DefaultCollections.
// A configured collection replaces the default of the same name; new names are appended.
func (cfg *ServerConfig) ResolveCollections() []CollectionSettings {
	resolved := DefaultCollections()
	positions := make(map[string]int, len(resolved))
	for i, c := range resolved {
		positions[c.Name] = i
	}

	for _, c := range cfg.Collections {
		if i, ok := positions[c.Name]; ok {
			resolved[i] = c
			continue
		}
		positions[c.Name] = len(resolved)
		resolved = append(resolved, c)
	}
	return resolved
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} with the value of the environment variable VAR.
func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}
