package api

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-library/internal/errors"
	"github.com/gcbaptista/go-library/internal/query"
	"github.com/gcbaptista/go-library/model"
	"github.com/gcbaptista/go-library/services"
)

// EvaluateRequest asks whether one record satisfies a boolean query.
type EvaluateRequest struct {
	Record map[string]interface{} `json:"record"`
	Query  string                 `json:"query"`
	Fields []string               `json:"fields"` // Fields searched for each term, in order
}

// ExplainRequest asks how a boolean query is read.
type ExplainRequest struct {
	Query string `json:"query"`
}

// ExplainResponse shows the tokens of a query and its fully parenthesised form.
type ExplainResponse struct {
	Query     string        `json:"query"`
	Tokens    []query.Token `json:"tokens"`
	Canonical string        `json:"canonical"`
	MatchAll  bool          `json:"match_all"` // True when the query places no constraint
}

// ListItemsHandler returns a filtered listing page built from query parameters:
//
//	q             simple search text
//	category      category tab ("All" for none)
//	advanced      boolean query of the advanced search form
//	adv_category  category of the advanced search form
//	author        author, artist or presenter substring
//	year_from     inclusive lower year bound
//	year_to       inclusive upper year bound
//	page          1-based page number
//	page_size     items per page
func (api *API) ListItemsHandler(c *gin.Context) {
	page, pageSize, result := ParsePagination(c)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	req := services.BrowseRequest{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Advanced: services.AdvancedFilters{
			Query:    c.Query("advanced"),
			Category: c.Query("adv_category"),
			Author:   c.Query("author"),
			YearFrom: c.Query("year_from"),
			YearTo:   c.Query("year_to"),
		},
		Page:     page,
		PageSize: pageSize,
	}

	api.browse(c, req)
}

// SearchHandler returns a filtered listing page.
// Request Body: services.BrowseRequest
func (api *API) SearchHandler(c *gin.Context) {
	var req services.BrowseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if req.PageSize < 0 {
		result := &ValidationResult{Valid: true}
		result.AddError("page_size", "Page size must be greater than 0")
		SendValidationError(c, result)
		return
	}

	api.browse(c, req)
}

func (api *API) browse(c *gin.Context, req services.BrowseRequest) {
	startTime := time.Now()
	collection := c.Param("collection")

	if result := ValidateCollectionName(collection); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	results, err := api.catalog.Browse(collection, req)
	if err != nil {
		if errors.Is(err, internalErrors.ErrCollectionNotFound) {
			SendCollectionNotFoundError(c, collection)
			return
		}
		SendSearchError(c, collection, err)
		return
	}

	event := model.SearchEvent{
		Collection:   collection,
		Query:        searchedText(req),
		SearchType:   determineSearchType(req),
		ResponseTime: time.Since(startTime),
		ResultCount:  results.Total,
	}

	// Track the event asynchronously to avoid slowing down the response
	if api.analytics != nil {
		go func() {
			if err := api.analytics.TrackSearchEvent(event); err != nil {
				log.Printf("Warning: Failed to track search event: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, results)
}

// EvaluateHandler evaluates a boolean query against one record.
// Malformed queries never fail the request; they evaluate like any other query.
func (api *API) EvaluateHandler(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if req.Record == nil {
		result := &ValidationResult{Valid: true}
		result.AddError("record", "Record must be a JSON object")
		SendValidationError(c, result)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match": query.Evaluate(req.Record, req.Query, req.Fields),
	})
}

// ExplainHandler shows how a boolean query is tokenized and grouped.
func (api *API) ExplainHandler(c *gin.Context) {
	var req ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	compiled, err := query.Compile(req.Query)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, err.Error())
		return
	}

	c.JSON(http.StatusOK, ExplainResponse{
		Query:     req.Query,
		Tokens:    compiled.Tokens(),
		Canonical: compiled.String(),
		MatchAll:  compiled.IsEmpty(),
	})
}

// searchedText returns the query text that drove a listing, if any.
func searchedText(req services.BrowseRequest) string {
	if strings.TrimSpace(req.Advanced.Query) != "" {
		return req.Advanced.Query
	}
	return req.Query
}

// determineSearchType classifies a listing request for analytics
func determineSearchType(req services.BrowseRequest) string {
	switch {
	case strings.TrimSpace(req.Advanced.Query) != "":
		return model.SearchTypeAdvanced
	case strings.TrimSpace(req.Query) != "":
		return model.SearchTypeSimple
	case !req.Advanced.IsEmpty() || (req.Category != "" && req.Category != "All"):
		return model.SearchTypeFiltered
	default:
		return model.SearchTypeBrowse
	}
}
