package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrCollectionNotFound is returned when a collection is not found
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCollectionAlreadyExists is returned when trying to create a collection that already exists
	ErrCollectionAlreadyExists = errors.New("collection already exists")

	// ErrItemNotFound is returned when an item is not found
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// CollectionNotFoundError represents a collection not found error with context
type CollectionNotFoundError struct {
	Collection string
}

func (e *CollectionNotFoundError) Error() string {
	return fmt.Sprintf("collection named '%s' not found", e.Collection)
}

func (e *CollectionNotFoundError) Is(target error) bool {
	return target == ErrCollectionNotFound
}

// NewCollectionNotFoundError creates a new CollectionNotFoundError
func NewCollectionNotFoundError(collection string) *CollectionNotFoundError {
	return &CollectionNotFoundError{Collection: collection}
}

// CollectionAlreadyExistsError represents a collection already exists error with context
type CollectionAlreadyExistsError struct {
	Collection string
}

func (e *CollectionAlreadyExistsError) Error() string {
	return fmt.Sprintf("collection named '%s' already exists", e.Collection)
}

func (e *CollectionAlreadyExistsError) Is(target error) bool {
	return target == ErrCollectionAlreadyExists
}

// NewCollectionAlreadyExistsError creates a new CollectionAlreadyExistsError
func NewCollectionAlreadyExistsError(collection string) *CollectionAlreadyExistsError {
	return &CollectionAlreadyExistsError{Collection: collection}
}

// ItemNotFoundError represents an item not found error with context
type ItemNotFoundError struct {
	ItemID     string
	Collection string
}

func (e *ItemNotFoundError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("item with ID '%s' not found in collection '%s'", e.ItemID, e.Collection)
	}
	return fmt.Sprintf("item with ID '%s' not found", e.ItemID)
}

func (e *ItemNotFoundError) Is(target error) bool {
	return target == ErrItemNotFound
}

// NewItemNotFoundError creates a new ItemNotFoundError
func NewItemNotFoundError(itemID string, collection ...string) *ItemNotFoundError {
	err := &ItemNotFoundError{ItemID: itemID}
	if len(collection) > 0 {
		err.Collection = collection[0]
	}
	return err
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
