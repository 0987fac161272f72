package model

import "time"

// Search types recorded with each SearchEvent.
const (
	SearchTypeBrowse   = "browse"   // listing with no text query
	SearchTypeSimple   = "simple"   // simple search box
	SearchTypeAdvanced = "advanced" // advanced boolean query
	SearchTypeFiltered = "filtered" // category, author or year filters without text
)

// SearchEvent represents a single listing request for analytics tracking
type SearchEvent struct {
	Collection   string        `json:"collection"`
	Query        string        `json:"query"`
	SearchType   string        `json:"search_type"`
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for popular search terms
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// CollectionStats represents usage statistics for one collection
type CollectionStats struct {
	Collection  string `json:"collection"`
	ItemCount   int    `json:"item_count"`
	SearchCount int    `json:"search_count"`
}

// SearchTypeStats counts searches per search type
type SearchTypeStats struct {
	Browse   int `json:"browse"`
	Simple   int `json:"simple"`
	Advanced int `json:"advanced"`
	Filtered int `json:"filtered"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalSearches     int               `json:"total_searches"`      // last 24h
	AvgResponseTime   int64             `json:"avg_response_time"`   // last 24h, in milliseconds
	ZeroResultQueries int               `json:"zero_result_queries"` // last 24h, text queries that matched nothing
	TotalItems        int               `json:"total_items"`
	Collections       int               `json:"collections"`
	PopularSearches   []PopularSearch   `json:"popular_searches"` // last 7 days
	CollectionUsage   []CollectionStats `json:"collection_usage"` // last 7 days
	SearchTypes       SearchTypeStats   `json:"search_types"`     // last 24h
}
