package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-library/model"
)

// CreateItemHandler creates an item. An item whose id already exists is updated instead.
func (api *API) CreateItemHandler(c *gin.Context) {
	api.saveItem(c, "")
}

// PutItemHandler creates or updates the item named in the URL.
// Fields absent from the body keep their stored values.
func (api *API) PutItemHandler(c *gin.Context) {
	itemID := c.Param("id")
	if result := ValidateItemID(itemID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	api.saveItem(c, itemID)
}

func (api *API) saveItem(c *gin.Context, itemID string) {
	collection := c.Param("collection")
	if result := ValidateCollectionName(collection); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateItemBody(doc, itemID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if itemID != "" {
		doc[model.IDField] = itemID
	}

	stored, created, err := api.catalog.SaveItem(collection, doc)
	if err != nil {
		SendCatalogError(c, err, collection, itemID, "save item")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, stored)
}

// GetItemHandler returns one item.
func (api *API) GetItemHandler(c *gin.Context) {
	collection, itemID, ok := itemParams(c)
	if !ok {
		return
	}

	doc, err := api.catalog.GetItem(collection, itemID)
	if err != nil {
		SendCatalogError(c, err, collection, itemID, "get item")
		return
	}

	c.JSON(http.StatusOK, doc)
}

// DeleteItemHandler removes one item.
func (api *API) DeleteItemHandler(c *gin.Context) {
	collection, itemID, ok := itemParams(c)
	if !ok {
		return
	}

	if err := api.catalog.DeleteItem(collection, itemID); err != nil {
		SendCatalogError(c, err, collection, itemID, "delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item '" + itemID + "' deleted"})
}

// IncrementViewHandler counts one view (or play) of an item.
func (api *API) IncrementViewHandler(c *gin.Context) {
	collection, itemID, ok := itemParams(c)
	if !ok {
		return
	}

	count, err := api.catalog.IncrementView(collection, itemID)
	if err != nil {
		SendCatalogError(c, err, collection, itemID, "count view")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": itemID, "count": count})
}

// itemParams validates the collection and item id URL parameters,
// sending the error response itself when they are invalid.
func itemParams(c *gin.Context) (string, string, bool) {
	collection := c.Param("collection")
	if result := ValidateCollectionName(collection); result.HasErrors() {
		SendValidationError(c, result)
		return "", "", false
	}
	itemID := c.Param("id")
	if result := ValidateItemID(itemID); result.HasErrors() {
		SendValidationError(c, result)
		return "", "", false
	}
	return collection, itemID, true
}
