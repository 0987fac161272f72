// Package config provides configuration structures for the library catalog.
// It defines per-collection search settings and the server configuration file.
package config

import (
	"strings"
)

const (
	// DefaultPageSize matches the number of cards a listing page shows at once.
	DefaultPageSize = 8
	// DefaultSortField orders listings by creation time when nothing else is configured.
	DefaultSortField = "createdAt"
)

// CollectionSettings describes how one kind of catalog content (books, articles,
// audios, videos, artists) is searched, filtered and listed.
//
// SimpleSearchFields are used by the plain search box. AdvancedSearchFields are
// used by the boolean query of the advanced search form and usually extend the
// simple fields with long-form text such as descriptions.
type CollectionSettings struct {
	Name                 string   `json:"name" yaml:"name"`                                     // Unique collection name, e.g. "books"
	SimpleSearchFields   []string `json:"simple_search_fields" yaml:"simple_search_fields"`     // Fields matched by the simple search box, in display priority
	AdvancedSearchFields []string `json:"advanced_search_fields" yaml:"advanced_search_fields"` // Fields matched by the advanced boolean query
	CategoryField        string   `json:"category_field,omitempty" yaml:"category_field"`       // Field compared against the category filter; empty disables it
	AuthorFields         []string `json:"author_fields,omitempty" yaml:"author_fields"`         // Author/artist/presenter fields for the author filter
	YearField            string   `json:"year_field,omitempty" yaml:"year_field"`               // Field whose leading digits give the year, e.g. "2011" or "2011-05-02"
	CounterField         string   `json:"counter_field,omitempty" yaml:"counter_field"`         // Field incremented when an item is viewed or played
	SortField            string   `json:"sort_field" yaml:"sort_field"`                         // Field listings are ordered by
	SortOrder            string   `json:"sort_order" yaml:"sort_order"`                         // "asc" or "desc"
	PageSize             int      `json:"page_size" yaml:"page_size"`                           // Items per listing page
}

// ApplyDefaults fills in unset values.
func (settings *CollectionSettings) ApplyDefaults() {
	if settings.PageSize <= 0 {
		settings.PageSize = DefaultPageSize
	}
	if settings.SortField == "" {
		settings.SortField = DefaultSortField
	}
	if settings.SortOrder == "" {
		settings.SortOrder = "desc"
	}

	// Initialize empty slices if nil to prevent nil pointer issues
	if settings.SimpleSearchFields == nil {
		settings.SimpleSearchFields = []string{}
	}
	if len(settings.AdvancedSearchFields) == 0 {
		settings.AdvancedSearchFields = append([]string{}, settings.SimpleSearchFields...)
	}
	if settings.AuthorFields == nil {
		settings.AuthorFields = []string{}
	}
}

// ValidateFieldNames checks field lists for duplicates, empty names and an
// invalid sort order. It returns one message per problem found.
func (settings *CollectionSettings) ValidateFieldNames() []string {
	var conflicts []string

	if strings.TrimSpace(settings.Name) == "" {
		conflicts = append(conflicts, "Collection name cannot be empty or whitespace-only")
	}

	conflicts = append(conflicts, checkDuplicates("simple_search_fields", settings.SimpleSearchFields)...)
	conflicts = append(conflicts, checkDuplicates("advanced_search_fields", settings.AdvancedSearchFields)...)
	conflicts = append(conflicts, checkDuplicates("author_fields", settings.AuthorFields)...)

	allFields := make([]string, 0)
	allFields = append(allFields, settings.SimpleSearchFields...)
	allFields = append(allFields, settings.AdvancedSearchFields...)
	allFields = append(allFields, settings.AuthorFields...)

	for _, field := range allFields {
		if strings.TrimSpace(field) == "" {
			conflicts = append(conflicts, "Field name cannot be empty or whitespace-only")
		}
	}

	if settings.SortOrder != "" && settings.SortOrder != "asc" && settings.SortOrder != "desc" {
		conflicts = append(conflicts, "Invalid sort_order '"+settings.SortOrder+"' for field '"+settings.SortField+"' (must be 'asc' or 'desc')")
	}

	return conflicts
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate field '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}
