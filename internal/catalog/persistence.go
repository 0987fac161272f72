package catalog

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/internal/persistence"
	"github.com/gcbaptista/go-library/store"
)

const (
	dataDirPerm       = 0755
	settingsFile      = "settings.gob"
	documentStoreFile = "document_store.gob"
)

// Persist writes a collection's settings and items to disk.
func (c *Catalog) Persist(name string) error {
	col, err := c.get(name)
	if err != nil {
		return err
	}
	return c.persistCollection(col)
}

// PersistAll writes every collection to disk, continuing past failures.
func (c *Catalog) PersistAll() error {
	var errs []error
	for _, name := range c.ListCollections() {
		if err := c.Persist(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) persistCollection(col *collection) error {
	collectionPath := filepath.Join(c.dataDir, col.settings.Name)

	if err := persistence.SaveGob(filepath.Join(collectionPath, settingsFile), col.settings); err != nil {
		return fmt.Errorf("failed to persist settings for collection %s: %w", col.settings.Name, err)
	}
	if err := persistence.SaveGob(filepath.Join(collectionPath, documentStoreFile), col.store); err != nil {
		return fmt.Errorf("failed to persist items for collection %s: %w", col.settings.Name, err)
	}
	return nil
}

// loadFromDisk restores items for configured collections and registers any
// collection found on disk that was created at runtime.
func (c *Catalog) loadFromDisk() {
	entries, err := os.ReadDir(c.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No items loaded.", c.dataDir, err)
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		collectionPath := filepath.Join(c.dataDir, name)

		col, configured := c.collections[name]
		if !configured {
			var settings config.CollectionSettings
			settingsPath := filepath.Join(collectionPath, settingsFile)
			if err := persistence.LoadGob(settingsPath, &settings); err != nil {
				log.Printf("Warning: Failed to load settings for collection %s from %s: %v. Skipping.", name, settingsPath, err)
				continue
			}
			if settings.Name != name {
				log.Printf("Warning: Collection name in settings ('%s') does not match directory name ('%s'). Skipping.", settings.Name, name)
				continue
			}
			col = &collection{settings: settings, store: store.NewDocumentStore()}
		}

		docStore := store.NewDocumentStore()
		storePath := filepath.Join(collectionPath, documentStoreFile)
		if err := persistence.LoadGob(storePath, docStore); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Printf("Warning: Failed to load items for collection %s from %s: %v. Proceeding with empty collection.", name, storePath, err)
			}
		} else {
			col.store = docStore
		}

		c.collections[name] = col
		log.Printf("Loaded collection '%s' with %d items", name, col.store.Len())
	}
}
