package model

// Page is one page of a filtered catalog listing.
type Page struct {
	Items      []Document `json:"items"`
	Total      int        `json:"total"`       // Number of items matching the filters, across all pages
	Page       int        `json:"page"`        // 1-based page number
	PageSize   int        `json:"page_size"`   // Maximum items per page
	TotalPages int        `json:"total_pages"` // ceil(Total / PageSize)
	Took       int64      `json:"took"`        // milliseconds
	QueryID    string     `json:"query_id"`    // unique UUID for this listing request
}
