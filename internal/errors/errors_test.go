package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCollectionNotFoundError(t *testing.T) {
	err := NewCollectionNotFoundError("books")

	expectedMsg := "collection named 'books' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrCollectionNotFound) {
		t.Error("Expected error to match ErrCollectionNotFound sentinel")
	}

	if errors.Is(err, ErrItemNotFound) {
		t.Error("Error should not match ErrItemNotFound")
	}
}

func TestCollectionAlreadyExistsError(t *testing.T) {
	err := NewCollectionAlreadyExistsError("audios")

	expectedMsg := "collection named 'audios' already exists"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrCollectionAlreadyExists) {
		t.Error("Expected error to match ErrCollectionAlreadyExists sentinel")
	}
}

func TestItemNotFoundError(t *testing.T) {
	err := NewItemNotFoundError("b42")
	expectedMsg := "item with ID 'b42' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewItemNotFoundError("b42", "books")
	expectedMsg2 := "item with ID 'b42' not found in collection 'books'"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err2, ErrItemNotFound) {
		t.Error("Expected error to match ErrItemNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("page", "must be positive")
	expectedMsg := "validation error for field 'page': must be positive"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	noField := NewValidationError("", "bad request")
	if noField.Error() != "validation error: bad request" {
		t.Errorf("Unexpected message: %s", noField.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
}

func TestWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("saving item: %w", NewItemNotFoundError("x", "videos"))

	if !errors.Is(wrapped, ErrItemNotFound) {
		t.Error("Expected wrapped error to match ErrItemNotFound")
	}

	var itemErr *ItemNotFoundError
	if !errors.As(wrapped, &itemErr) {
		t.Fatal("Expected errors.As to find ItemNotFoundError")
	}
	if itemErr.Collection != "videos" {
		t.Errorf("Expected collection 'videos', got '%s'", itemErr.Collection)
	}
}
