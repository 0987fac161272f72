package catalog

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/internal/metrics"
	"github.com/gcbaptista/go-library/internal/query"
	"github.com/gcbaptista/go-library/model"
	"github.com/gcbaptista/go-library/services"
)

const (
	// MaxPageSize caps the page size a caller may request.
	MaxPageSize = 100

	// allCategories is the category tab that disables category filtering.
	allCategories = "All"
)

// Browse returns one page of a collection filtered the way the listing pages
// filter: category tab, advanced filters, then simple search text.
// A query that cannot be compiled matches nothing.
func (c *Catalog) Browse(name string, req services.BrowseRequest) (model.Page, error) {
	startTime := time.Now()

	col, err := c.get(name)
	if err != nil {
		return model.Page{}, err
	}

	page, pageSize := normalizePaging(req.Page, req.PageSize, col.settings.PageSize)

	filter, err := newItemFilter(col.settings, req)
	if err != nil {
		log.Printf("Warning: Query for collection '%s' failed, returning no items: %v", name, err)
		metrics.RecordQueryFailure(name)
		return model.Page{
			Items:    []model.Document{},
			Page:     page,
			PageSize: pageSize,
			Took:     time.Since(startTime).Milliseconds(),
			QueryID:  uuid.New().String(),
		}, nil
	}

	candidates := col.store.All()
	matched := make([]model.Document, 0, len(candidates))
	for _, doc := range candidates {
		if filter.matches(doc) {
			matched = append(matched, doc)
		}
	}
	if filter.hasQuery() {
		metrics.ObserveQueryEvaluations(name, len(matched), len(candidates)-len(matched))
	}

	sortDocuments(matched, col.settings.SortField, col.settings.SortOrder)

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	// page is unbounded, so compare page numbers before multiplying
	start, end := total, total
	if page <= totalPages {
		start = (page - 1) * pageSize
		end = start + pageSize
		if end > total {
			end = total
		}
	}

	return model.Page{
		Items:      matched[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Took:       time.Since(startTime).Milliseconds(),
		QueryID:    uuid.New().String(),
	}, nil
}

func normalizePaging(page, pageSize, defaultPageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// itemFilter holds the compiled form of a BrowseRequest.
type itemFilter struct {
	settings         config.CollectionSettings
	category         string
	advancedCategory string
	author           string
	yearFrom         *int
	yearTo           *int
	advancedQuery    *query.Query
	simpleQuery      *query.Query
}

func newItemFilter(settings config.CollectionSettings, req services.BrowseRequest) (*itemFilter, error) {
	f := &itemFilter{
		settings:         settings,
		category:         req.Category,
		advancedCategory: req.Advanced.Category,
		author:           strings.ToLower(strings.TrimSpace(req.Advanced.Author)),
		yearFrom:         parseYearBound(req.Advanced.YearFrom),
		yearTo:           parseYearBound(req.Advanced.YearTo),
	}

	var err error
	if req.Advanced.Query != "" {
		// the advanced query replaces the simple search text entirely
		if f.advancedQuery, err = query.Compile(req.Advanced.Query); err != nil {
			return nil, err
		}
	} else if req.Query != "" {
		if f.simpleQuery, err = query.Compile(req.Query); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func parseYearBound(raw string) *int {
	year, ok := model.LeadingInt(raw)
	if !ok {
		return nil
	}
	return &year
}

func (f *itemFilter) hasQuery() bool {
	return !f.advancedQuery.IsEmpty() || !f.simpleQuery.IsEmpty()
}

func (f *itemFilter) matches(doc model.Document) bool {
	if !f.matchesCategory(doc, f.category) || !f.matchesCategory(doc, f.advancedCategory) {
		return false
	}
	if !f.matchesAuthor(doc) || !f.matchesYear(doc) {
		return false
	}
	if f.advancedQuery != nil && !f.advancedQuery.Match(doc, f.settings.AdvancedSearchFields) {
		return false
	}
	if f.simpleQuery != nil && !f.simpleQuery.Match(doc, f.settings.SimpleSearchFields) {
		return false
	}
	return true
}

func (f *itemFilter) matchesCategory(doc model.Document, category string) bool {
	if category == "" || category == allCategories || f.settings.CategoryField == "" {
		return true
	}
	return doc.GetString(f.settings.CategoryField) == category
}

// matchesAuthor accepts the item when any author field contains the filter text, ignoring case.
func (f *itemFilter) matchesAuthor(doc model.Document) bool {
	if f.author == "" || len(f.settings.AuthorFields) == 0 {
		return true
	}
	for _, field := range f.settings.AuthorFields {
		if strings.Contains(strings.ToLower(doc.GetString(field)), f.author) {
			return true
		}
	}
	return false
}

// matchesYear applies the inclusive year range. Items without a readable year
// are excluded whenever a bound is set.
func (f *itemFilter) matchesYear(doc model.Document) bool {
	if (f.yearFrom == nil && f.yearTo == nil) || f.settings.YearField == "" {
		return true
	}
	year, ok := doc.Year(f.settings.YearField)
	if !ok {
		return false
	}
	if f.yearFrom != nil && year < *f.yearFrom {
		return false
	}
	if f.yearTo != nil && year > *f.yearTo {
		return false
	}
	return true
}

// sortDocuments orders docs by field. Items missing the field sort last in
// either direction; ties keep insertion order.
func sortDocuments(docs []model.Document, field, order string) {
	if field == "" {
		return
	}
	desc := order == "desc"

	sort.SliceStable(docs, func(i, j int) bool {
		a, aok := docs[i][field]
		b, bok := docs[j][field]
		if !aok || a == nil {
			return false
		}
		if !bok || b == nil {
			return true
		}
		cmp := compareValues(a, b)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareValues orders numbers numerically and everything else by its text.
func compareValues(a, b interface{}) int {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	switch {
	case aNum && bNum:
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}

	as, _ := a.(string)
	bs, _ := b.(string)
	return strings.Compare(as, bs)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
