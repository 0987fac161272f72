// Package testing provides utilities and helpers for testing the library catalog.
package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/internal/catalog"
	"github.com/gcbaptista/go-library/model"
	"github.com/gcbaptista/go-library/services"
)

// CreateTestCatalog creates a catalog serving the default collections in a
// temporary directory removed when the test ends.
func CreateTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.NewCatalog(t.TempDir(), config.DefaultCollections()...)
}

// TestBooks returns a small set of books with fixed ids and creation times.
// Listed newest first they are b3, b2, b1.
func TestBooks() []model.Document {
	return []model.Document{
		{"id": "b1", "title": "History of China", "author": "Li", "category": "History", "year": "2001", "createdAt": "2024-01-01T00:00:00Z"},
		{"id": "b2", "title": "War and Peace", "author": "Tolstoy", "category": "Fiction", "year": "1869", "createdAt": "2024-01-02T00:00:00Z"},
		{"id": "b3", "title": "Chinese War History", "author": "Wang", "category": "History", "year": "1999", "createdAt": "2024-01-03T00:00:00Z"},
	}
}

// AddTestBooks seeds TestBooks into the books collection.
func AddTestBooks(t *testing.T, cat *catalog.Catalog) []model.Document {
	t.Helper()
	books := TestBooks()
	created, err := cat.Seed(config.CollectionBooks, books)
	require.NoError(t, err, "Seeding books should not fail")
	require.Equal(t, len(books), created, "Every test book should be new")
	return books
}

// ItemIDs returns the ids of a page's items in order.
func ItemIDs(page model.Page) []string {
	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		id, _ := item.GetID()
		ids = append(ids, id)
	}
	return ids
}

// BrowseTestCase represents a test case for listing operations
type BrowseTestCase struct {
	Name         string
	Collection   string
	Request      services.BrowseRequest
	ExpectedIDs  []string // Ids of the returned page, in order
	ValidateFunc func(t *testing.T, page model.Page)
}

// RunBrowseTests runs a suite of listing tests against a catalog
func RunBrowseTests(t *testing.T, browser services.Browser, tests []BrowseTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			page, err := browser.Browse(tt.Collection, tt.Request)
			require.NoError(t, err, "Browse should not fail")

			assert.Equal(t, tt.ExpectedIDs, ItemIDs(page), "Returned items should match")

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, page)
			}
		})
	}
}
