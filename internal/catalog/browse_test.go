package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/internal/query"
	"github.com/gcbaptista/go-library/model"
	"github.com/gcbaptista/go-library/services"
)

func browseQuery(q string) services.BrowseRequest {
	return services.BrowseRequest{Query: q}
}

func seedBooks(t *testing.T, c *Catalog) {
	t.Helper()
	books := []model.Document{
		{
			"id": "b1", "title": "History of China", "titleZh": "中国历史", "author": "Wang Wei", "authorZh": "王维",
			"category": "History", "year": "2011", "description": "An overview of the dynasties",
			"createdAt": "2024-01-01T00:00:00Z", "views": float64(10),
		},
		{
			"id": "b2", "title": "Ancient India", "author": "R. Sharma", "authorZh": "夏尔马",
			"category": "History", "year": "1999", "description": "Vedic period and war epics",
			"createdAt": "2024-02-01T00:00:00Z",
		},
		{
			"id": "b3", "title": "The Heart Sutra", "author": "Thich Nhat Hanh", "authorZh": "一行禅师",
			"category": "Buddhism", "year": "2005-06", "description": "Commentary on emptiness",
			"createdAt": "2024-03-01T00:00:00Z",
		},
		{
			"id": "b4", "title": "Art of War", "author": "Sun Tzu", "authorZh": "孙子",
			"category": "Philosophy", "year": "unknown", "description": "Classic military treatise from China",
			"createdAt": "2024-04-01T00:00:00Z",
		},
	}
	_, err := c.Seed(config.CollectionBooks, books)
	require.NoError(t, err)
}

func ids(page model.Page) []string {
	out := make([]string, 0, len(page.Items))
	for _, doc := range page.Items {
		id, _ := doc.GetID()
		out = append(out, id)
	}
	return out
}

func TestBrowse_Filters(t *testing.T) {
	c := newTestCatalog(t)
	seedBooks(t, c)

	tests := []struct {
		name string
		req  services.BrowseRequest
		want []string
	}{
		{"no filters newest first", services.BrowseRequest{}, []string{"b4", "b3", "b2", "b1"}},
		{"category tab", services.BrowseRequest{Category: "History"}, []string{"b2", "b1"}},
		{"all category", services.BrowseRequest{Category: "All"}, []string{"b4", "b3", "b2", "b1"}},
		{"simple search uses simple fields only", browseQuery("china"), []string{"b1"}},
		{"simple search implicit and", browseQuery("history wang"), []string{"b1"}},
		{"simple search chinese", browseQuery("禅师"), []string{"b3"}},
		{"simple search boolean", browseQuery("india OR sutra"), []string{"b3", "b2"}},
		{"advanced query includes descriptions", services.BrowseRequest{
			Advanced: services.AdvancedFilters{Query: "china"},
		}, []string{"b4", "b1"}},
		{"advanced query replaces simple text", services.BrowseRequest{
			Query:    "sutra",
			Advanced: services.AdvancedFilters{Query: "china"},
		}, []string{"b4", "b1"}},
		{"advanced precedence", services.BrowseRequest{
			Advanced: services.AdvancedFilters{Query: "history OR sutra NOT war"},
		}, []string{"b3", "b1"}},
		{"advanced negation of description term", services.BrowseRequest{
			Advanced: services.AdvancedFilters{Query: "NOT war"},
		}, []string{"b3", "b1"}},
		{"advanced category", services.BrowseRequest{
			Advanced: services.AdvancedFilters{Category: "Buddhism"},
		}, []string{"b3"}},
		{"category tab and advanced category disagree", services.BrowseRequest{
			Category: "History",
			Advanced: services.AdvancedFilters{Category: "Buddhism"},
		}, []string{}},
		{"author latin any case", services.BrowseRequest{
			Advanced: services.AdvancedFilters{Author: "WANG"},
		}, []string{"b1"}},
		{"author chinese", services.BrowseRequest{
			Advanced: services.AdvancedFilters{Author: "孙"},
		}, []string{"b4"}},
		{"year range", services.BrowseRequest{
			Advanced: services.AdvancedFilters{YearFrom: "2000", YearTo: "2005"},
		}, []string{"b3"}},
		{"year from excludes unreadable years", services.BrowseRequest{
			Advanced: services.AdvancedFilters{YearFrom: "1990"},
		}, []string{"b3", "b2", "b1"}},
		{"non-numeric year bound ignored", services.BrowseRequest{
			Advanced: services.AdvancedFilters{YearFrom: "abc"},
		}, []string{"b4", "b3", "b2", "b1"}},
		{"everything combined", services.BrowseRequest{
			Category: "History",
			Advanced: services.AdvancedFilters{Query: "dynasties OR epics", YearTo: "2000"},
		}, []string{"b2"}},
		{"whitespace advanced query matches all and disables simple text", services.BrowseRequest{
			Query:    "nothing-matches-this",
			Advanced: services.AdvancedFilters{Query: "   "},
		}, []string{"b4", "b3", "b2", "b1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := c.Browse(config.CollectionBooks, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(page))
			assert.Equal(t, len(tt.want), page.Total)
			assert.NotEmpty(t, page.QueryID)
		})
	}
}

func TestBrowse_Pagination(t *testing.T) {
	c := newTestCatalog(t)
	seedBooks(t, c)

	page, err := c.Browse(config.CollectionBooks, services.BrowseRequest{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, ids(page))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)

	page, err = c.Browse(config.CollectionBooks, services.BrowseRequest{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, config.DefaultPageSize, page.PageSize)
	assert.Equal(t, 1, page.TotalPages)

	page, err = c.Browse(config.CollectionBooks, services.BrowseRequest{Page: 9})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 4, page.Total)

	page, err = c.Browse(config.CollectionBooks, services.BrowseRequest{Page: 100000000000000000, PageSize: MaxPageSize})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 100000000000000000, page.Page)
	assert.Equal(t, 4, page.Total)

	page, err = c.Browse(config.CollectionBooks, services.BrowseRequest{PageSize: 5000})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.PageSize)
}

func TestBrowse_SortsByCollectionSettings(t *testing.T) {
	c := NewCatalog(t.TempDir(), config.CollectionSettings{
		Name:               "ranked",
		SimpleSearchFields: []string{"title"},
		SortField:          "views",
		SortOrder:          "desc",
	})
	_, err := c.Seed("ranked", []model.Document{
		{"id": "low", "views": float64(1)},
		{"id": "none"},
		{"id": "high", "views": float64(99)},
		{"id": "mid", "views": 7},
	})
	require.NoError(t, err)

	page, err := c.Browse("ranked", services.BrowseRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "mid", "low", "none"}, ids(page))
}

func TestBrowse_FailsClosedOnUnevaluableQuery(t *testing.T) {
	c := newTestCatalog(t)
	seedBooks(t, c)

	deep := strings.Repeat("(", query.MaxDepth+1) + "china"
	page, err := c.Browse(config.CollectionBooks, browseQuery(deep))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)

	// a merely malformed query is tolerated
	page, err = c.Browse(config.CollectionBooks, browseQuery("((((china"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, ids(page))
}

func TestBrowse_UnknownCollection(t *testing.T) {
	c := newTestCatalog(t)
	_, err := c.Browse("podcasts", services.BrowseRequest{})
	assert.Error(t, err)
}

func TestCompareValues(t *testing.T) {
	assert.Equal(t, -1, compareValues(float64(1), 2))
	assert.Equal(t, 1, compareValues("b", "a"))
	assert.Equal(t, 0, compareValues(3, float64(3)))
	assert.Equal(t, -1, compareValues(5, "a"), "numbers sort before text")
}
