// Package catalog manages the library's content collections: storing items,
// persisting them to disk and serving filtered, paginated listings.
package catalog

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-library/config"
	internalErrors "github.com/gcbaptista/go-library/internal/errors"
	"github.com/gcbaptista/go-library/model"
	"github.com/gcbaptista/go-library/services"
	"github.com/gcbaptista/go-library/store"
)

// collection is one content type with its settings and items.
type collection struct {
	settings config.CollectionSettings
	store    *store.DocumentStore
}

// Catalog holds every collection of the library.
// It implements the services.Catalog interface.
type Catalog struct {
	mu          sync.RWMutex
	collections map[string]*collection
	dataDir     string
	now         func() time.Time
}

// NewCatalog creates a catalog with the given collections and loads any
// previously persisted items and collections from dataDir.
// Invalid collection settings are logged and skipped.
func NewCatalog(dataDir string, collections ...config.CollectionSettings) *Catalog {
	c := &Catalog{
		collections: make(map[string]*collection),
		dataDir:     dataDir,
		now:         time.Now,
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence.", dataDir, err)
	}

	for _, settings := range collections {
		settings.ApplyDefaults()
		if conflicts := settings.ValidateFieldNames(); len(conflicts) > 0 {
			log.Printf("Warning: Skipping collection '%s' with invalid settings: %s", settings.Name, strings.Join(conflicts, "; "))
			continue
		}
		c.collections[settings.Name] = &collection{settings: settings, store: store.NewDocumentStore()}
	}

	c.loadFromDisk()
	return c
}

// CreateCollection adds a new, empty collection and persists its settings.
func (c *Catalog) CreateCollection(settings config.CollectionSettings) error {
	settings.ApplyDefaults()
	if conflicts := settings.ValidateFieldNames(); len(conflicts) > 0 {
		return internalErrors.NewValidationError("settings", strings.Join(conflicts, "; "))
	}

	c.mu.Lock()
	if _, exists := c.collections[settings.Name]; exists {
		c.mu.Unlock()
		return internalErrors.NewCollectionAlreadyExistsError(settings.Name)
	}
	col := &collection{settings: settings, store: store.NewDocumentStore()}
	c.collections[settings.Name] = col
	c.mu.Unlock()

	log.Printf("Created collection '%s'", settings.Name)
	return c.persistCollection(col)
}

// ListCollections returns the collection names in alphabetical order.
func (c *Catalog) ListCollections() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.collections))
	for name := range c.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Collection returns the settings and size of a collection.
func (c *Catalog) Collection(name string) (services.CollectionInfo, error) {
	col, err := c.get(name)
	if err != nil {
		return services.CollectionInfo{}, err
	}
	return services.CollectionInfo{Settings: col.settings, ItemCount: col.store.Len()}, nil
}

// TotalItems returns the number of items across all collections.
func (c *Catalog) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, col := range c.collections {
		total += col.store.Len()
	}
	return total
}

// SaveItem creates or updates an item. Fields of an existing item that are
// absent from doc are kept. A missing id is generated and a new item gets a
// createdAt timestamp unless it already carries one.
// It returns the stored item and whether it was created.
func (c *Catalog) SaveItem(name string, doc model.Document) (model.Document, bool, error) {
	col, err := c.get(name)
	if err != nil {
		return nil, false, err
	}

	stored, created, err := c.saveItem(col, doc)
	if err != nil {
		return nil, false, err
	}
	if err := c.persistCollection(col); err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (c *Catalog) saveItem(col *collection, doc model.Document) (model.Document, bool, error) {
	if doc == nil {
		return nil, false, internalErrors.NewValidationError("item", "item must be an object")
	}

	id, ok := doc.GetID()
	if !ok {
		if raw, present := doc[model.IDField]; present && raw != nil && raw != "" {
			return nil, false, internalErrors.NewValidationError(model.IDField, fmt.Sprintf("id must be a string, got %T", raw))
		}
		id = uuid.New().String()
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false, internalErrors.NewValidationError(model.IDField, "id cannot be whitespace-only")
	}

	merged := doc.Clone()
	if existing, found := col.store.Get(id); found {
		merged = existing
		for k, v := range doc {
			merged[k] = v
		}
	}
	merged[model.IDField] = id
	if _, hasCreated := merged[model.CreatedAtField]; !hasCreated {
		merged[model.CreatedAtField] = c.now().UTC().Format(time.RFC3339)
	}

	created := col.store.Put(id, merged)
	return merged.Clone(), created, nil
}

// GetItem returns one item of a collection.
func (c *Catalog) GetItem(name, id string) (model.Document, error) {
	col, err := c.get(name)
	if err != nil {
		return nil, err
	}
	doc, ok := col.store.Get(id)
	if !ok {
		return nil, internalErrors.NewItemNotFoundError(id, name)
	}
	return doc, nil
}

// DeleteItem removes one item of a collection.
func (c *Catalog) DeleteItem(name, id string) error {
	col, err := c.get(name)
	if err != nil {
		return err
	}
	if !col.store.Delete(id) {
		return internalErrors.NewItemNotFoundError(id, name)
	}
	return c.persistCollection(col)
}

// IncrementView bumps the view (or play) counter of an item and returns the new count.
func (c *Catalog) IncrementView(name, id string) (float64, error) {
	col, err := c.get(name)
	if err != nil {
		return 0, err
	}
	if col.settings.CounterField == "" {
		return 0, internalErrors.NewValidationError("counter_field", "collection '"+name+"' does not count views")
	}

	count, ok := col.store.IncrementField(id, col.settings.CounterField)
	if !ok {
		return 0, internalErrors.NewItemNotFoundError(id, name)
	}
	if err := c.persistCollection(col); err != nil {
		return 0, err
	}
	return count, nil
}

// Seed saves a batch of items into a collection and persists once.
// It returns how many items were newly created.
func (c *Catalog) Seed(name string, docs []model.Document) (int, error) {
	col, err := c.get(name)
	if err != nil {
		return 0, err
	}

	created := 0
	for i, doc := range docs {
		_, isNew, err := c.saveItem(col, doc)
		if err != nil {
			return created, fmt.Errorf("seeding %s item %d: %w", name, i, err)
		}
		if isNew {
			created++
		}
	}
	return created, c.persistCollection(col)
}

func (c *Catalog) get(name string) (*collection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, ok := c.collections[name]
	if !ok {
		return nil, internalErrors.NewCollectionNotFoundError(name)
	}
	return col, nil
}
