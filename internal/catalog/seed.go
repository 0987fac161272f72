package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/gcbaptista/go-library/model"
)

// LoadSeedFile reads a JSON object mapping collection names to arrays of items:
//
//	{"books": [{"id": "b1", "title": "..."}], "audios": [...]}
func LoadSeedFile(path string) (map[string][]model.Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seed map[string][]model.Document
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return seed, nil
}

// SeedFromFile loads a seed file into the catalog. Collections named in the
// file that the catalog does not serve are logged and skipped.
func (c *Catalog) SeedFromFile(path string) error {
	seed, err := LoadSeedFile(path)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(seed))
	for name := range seed {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := c.get(name); err != nil {
			log.Printf("Warning: Seed file %s names unknown collection '%s'. Skipping.", path, name)
			continue
		}
		created, err := c.Seed(name, seed[name])
		if err != nil {
			return err
		}
		log.Printf("Seeded collection '%s': %d new of %d items", name, created, len(seed[name]))
	}
	return nil
}
