package services

import (
	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/model"
)

// AdvancedFilters are the fields of the advanced search form.
// Empty values (and the category "All") place no constraint.
type AdvancedFilters struct {
	Query    string `json:"query,omitempty"` // Boolean query over the advanced search fields
	Category string `json:"category,omitempty"`
	Author   string `json:"author,omitempty"`    // Author, artist or presenter
	YearFrom string `json:"year_from,omitempty"` // Inclusive lower bound; non-numeric values are ignored
	YearTo   string `json:"year_to,omitempty"`   // Inclusive upper bound; non-numeric values are ignored
}

// IsEmpty reports whether no advanced filter is set.
func (f AdvancedFilters) IsEmpty() bool {
	return f == AdvancedFilters{}
}

// BrowseRequest describes one listing page request.
type BrowseRequest struct {
	Category string          `json:"category,omitempty"` // Top-level category tab; "All" or empty for none
	Query    string          `json:"query,omitempty"`    // Simple search text, ignored when Advanced.Query is set
	Advanced AdvancedFilters `json:"advanced"`
	Page     int             `json:"page"`      // 1-based; values below 1 mean the first page
	PageSize int             `json:"page_size"` // 0 uses the collection default
}

// CollectionInfo describes a collection and its current size.
type CollectionInfo struct {
	Settings  config.CollectionSettings `json:"settings"`
	ItemCount int                       `json:"item_count"`
}

// ItemStore defines create, read, update and delete operations on catalog items
type ItemStore interface {
	SaveItem(collection string, doc model.Document) (model.Document, bool, error) // Returns the stored item and whether it was created
	GetItem(collection, id string) (model.Document, error)
	DeleteItem(collection, id string) error
	IncrementView(collection, id string) (float64, error)
}

// Browser defines listing operations
type Browser interface {
	Browse(collection string, req BrowseRequest) (model.Page, error)
}

// CollectionManager manages the set of collections
type CollectionManager interface {
	CreateCollection(settings config.CollectionSettings) error
	ListCollections() []string
	Collection(name string) (CollectionInfo, error)
	Persist(collection string) error
}

// Catalog combines every catalog operation used by the API
type Catalog interface {
	CollectionManager
	ItemStore
	Browser
}
