package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/model"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}

	result.AddError("field1", "error message")

	if result.Valid {
		t.Error("Expected Valid to be false after adding error")
	}

	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(result.Errors))
	}

	if result.Errors[0].Field != "field1" {
		t.Errorf("Expected field 'field1', got '%s'", result.Errors[0].Field)
	}

	if result.Errors[0].Message != "error message" {
		t.Errorf("Expected message 'error message', got '%s'", result.Errors[0].Message)
	}
}

func TestValidationResult_HasErrors(t *testing.T) {
	result := &ValidationResult{Valid: true}

	if result.HasErrors() {
		t.Error("Expected HasErrors to be false for empty result")
	}

	result.AddError("field", "message")

	if !result.HasErrors() {
		t.Error("Expected HasErrors to be true after adding error")
	}
}

func TestValidateCollectionName(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		wantValid  bool
		wantError  string
	}{
		{
			name:       "valid collection name",
			collection: "books",
			wantValid:  true,
		},
		{
			name:       "empty collection name",
			collection: "",
			wantValid:  false,
			wantError:  "Collection name is required",
		},
		{
			name:       "collection name with trailing whitespace",
			collection: "books ",
			wantValid:  false,
			wantError:  "Collection name cannot have leading or trailing whitespace",
		},
		{
			name:       "collection name with path separator",
			collection: "../books",
			wantValid:  false,
			wantError:  "Collection name cannot contain path separators",
		},
		{
			name:       "dot dot",
			collection: "..",
			wantValid:  false,
			wantError:  "Collection name cannot contain path separators",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCollectionName(tt.collection)

			if result.Valid != tt.wantValid {
				t.Errorf("Expected Valid=%v, got %v", tt.wantValid, result.Valid)
			}

			if !tt.wantValid {
				if len(result.Errors) == 0 {
					t.Fatal("Expected validation errors")
				}
				if result.Errors[0].Message != tt.wantError {
					t.Errorf("Expected error '%s', got '%s'", tt.wantError, result.Errors[0].Message)
				}
			}
		})
	}
}

func TestValidateItemID(t *testing.T) {
	tests := []struct {
		name      string
		itemID    string
		wantValid bool
	}{
		{name: "valid id", itemID: "b1", wantValid: true},
		{name: "uuid id", itemID: "6f1c0c43-8a8e-4f0e-9c57-2f7b3bd0e2a1", wantValid: true},
		{name: "empty id", itemID: "", wantValid: false},
		{name: "leading whitespace", itemID: " b1", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateItemID(tt.itemID)
			if result.Valid != tt.wantValid {
				t.Errorf("Expected Valid=%v, got %v (%v)", tt.wantValid, result.Valid, result.Errors)
			}
		})
	}
}

func TestValidateCollectionSettings(t *testing.T) {
	tests := []struct {
		name      string
		settings  *config.CollectionSettings
		wantValid bool
	}{
		{
			name:      "nil settings",
			settings:  nil,
			wantValid: false,
		},
		{
			name: "valid settings",
			settings: &config.CollectionSettings{
				Name:               "manuscripts",
				SimpleSearchFields: []string{"title"},
			},
			wantValid: true,
		},
		{
			name: "no search fields",
			settings: &config.CollectionSettings{
				Name: "manuscripts",
			},
			wantValid: false,
		},
		{
			name: "duplicate search fields",
			settings: &config.CollectionSettings{
				Name:               "manuscripts",
				SimpleSearchFields: []string{"title", "title"},
			},
			wantValid: false,
		},
		{
			name: "bad sort order",
			settings: &config.CollectionSettings{
				Name:               "manuscripts",
				SimpleSearchFields: []string{"title"},
				SortOrder:          "sideways",
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCollectionSettings(tt.settings)
			if result.Valid != tt.wantValid {
				t.Errorf("Expected Valid=%v, got %v (%v)", tt.wantValid, result.Valid, result.Errors)
			}
		})
	}
}

func TestValidateItemBody(t *testing.T) {
	tests := []struct {
		name      string
		doc       model.Document
		pathID    string
		wantValid bool
	}{
		{name: "nil body", doc: nil, wantValid: false},
		{name: "no id", doc: model.Document{"title": "x"}, wantValid: true},
		{name: "string id", doc: model.Document{"id": "b1"}, wantValid: true},
		{name: "numeric id", doc: model.Document{"id": 3.0}, wantValid: false},
		{name: "matching path id", doc: model.Document{"id": "b1"}, pathID: "b1", wantValid: true},
		{name: "mismatched path id", doc: model.Document{"id": "b2"}, pathID: "b1", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateItemBody(tt.doc, tt.pathID)
			if result.Valid != tt.wantValid {
				t.Errorf("Expected Valid=%v, got %v (%v)", tt.wantValid, result.Valid, result.Errors)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		rawQuery     string
		wantPage     int
		wantPageSize int
		wantValid    bool
	}{
		{name: "defaults", rawQuery: "", wantPage: 0, wantPageSize: 0, wantValid: true},
		{name: "explicit values", rawQuery: "page=3&page_size=20", wantPage: 3, wantPageSize: 20, wantValid: true},
		{name: "non-numeric page", rawQuery: "page=two", wantValid: false},
		{name: "negative page size", rawQuery: "page_size=-1", wantPageSize: -1, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/collections/books/items?"+tt.rawQuery, nil)

			page, pageSize, result := ParsePagination(c)

			if result.Valid != tt.wantValid {
				t.Fatalf("Expected Valid=%v, got %v (%v)", tt.wantValid, result.Valid, result.Errors)
			}
			if tt.wantValid && (page != tt.wantPage || pageSize != tt.wantPageSize) {
				t.Errorf("Expected page %d size %d, got %d and %d", tt.wantPage, tt.wantPageSize, page, pageSize)
			}
		})
	}
}
