package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/model"
	"github.com/gcbaptista/go-library/services"
)

func TestRunBrowseTests(t *testing.T) {
	cat := CreateTestCatalog(t)
	AddTestBooks(t, cat)

	RunBrowseTests(t, cat, []BrowseTestCase{
		{
			Name:        "newest first",
			Collection:  config.CollectionBooks,
			ExpectedIDs: []string{"b3", "b2", "b1"},
		},
		{
			Name:        "advanced query replaces simple search",
			Collection:  config.CollectionBooks,
			Request:     services.BrowseRequest{Query: "tolstoy", Advanced: services.AdvancedFilters{Query: "history AND NOT chinese"}},
			ExpectedIDs: []string{"b1"},
		},
		{
			Name:        "empty collection",
			Collection:  config.CollectionVideos,
			ExpectedIDs: []string{},
			ValidateFunc: func(t *testing.T, page model.Page) {
				assert.Equal(t, 0, page.TotalPages)
				assert.Equal(t, 1, page.Page)
			},
		},
	})
}
