// Package api provides the HTTP surface of the library catalog.
package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateCollectionName validates a collection name parameter
func ValidateCollectionName(collection string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if collection == "" {
		result.AddError("collection", "Collection name is required")
		return result
	}

	if strings.TrimSpace(collection) != collection {
		result.AddError("collection", "Collection name cannot have leading or trailing whitespace")
		return result
	}

	if strings.ContainsAny(collection, `/\`) || collection == "." || collection == ".." {
		result.AddError("collection", "Collection name cannot contain path separators")
	}

	return result
}

// ValidateItemID validates an item ID
func ValidateItemID(itemID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if itemID == "" {
		result.AddError("id", "Item ID is required")
		return result
	}

	if strings.TrimSpace(itemID) != itemID {
		result.AddError("id", "Item ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateCollectionSettings validates collection settings for creation
func ValidateCollectionSettings(settings *config.CollectionSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Collection settings are required")
		return result
	}

	if nameResult := ValidateCollectionName(settings.Name); nameResult.HasErrors() {
		for _, e := range nameResult.Errors {
			result.AddError("name", e.Message)
		}
		return result
	}

	if len(settings.SimpleSearchFields) == 0 {
		result.AddError("simple_search_fields", "At least one simple search field is required")
	}

	// Apply defaults before validation
	settings.ApplyDefaults()

	if conflicts := settings.ValidateFieldNames(); len(conflicts) > 0 {
		for _, conflict := range conflicts {
			result.AddError("field_validation", conflict)
		}
	}

	return result
}

// ValidateItemBody validates an item submitted for saving. pathID is the id
// from the URL, empty when the item is created without one.
func ValidateItemBody(doc model.Document, pathID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if doc == nil {
		result.AddError("item", "Item body must be a JSON object")
		return result
	}

	raw, present := doc[model.IDField]
	if !present || raw == nil {
		return result
	}

	id, ok := raw.(string)
	if !ok {
		result.AddError(model.IDField, "Item ID must be a string")
		return result
	}
	if pathID != "" && id != pathID {
		result.AddError(model.IDField, "Item ID in body does not match the URL")
	}

	return result
}

// ParsePagination reads the page and page_size query parameters.
// Missing values are returned as 0 so the collection defaults apply.
func ParsePagination(c *gin.Context) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	page := parseIntParam(c, "page", result)
	pageSize := parseIntParam(c, "page_size", result)

	if pageSize < 0 {
		result.AddError("page_size", "Page size must be greater than 0")
	}

	return page, pageSize, result
}

func parseIntParam(c *gin.Context, name string, result *ValidationResult) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError(name, "Must be an integer")
		return 0
	}
	return value
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
