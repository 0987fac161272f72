package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-library/config"
	"github.com/gcbaptista/go-library/internal/analytics"
	"github.com/gcbaptista/go-library/internal/metrics"
	"github.com/gcbaptista/go-library/services"
)

// API holds dependencies for API handlers, primarily the catalog.
type API struct {
	catalog   services.Catalog
	analytics *analytics.Service
}

// NewAPI creates a new API handler structure.
func NewAPI(catalog services.Catalog, analyticsService *analytics.Service) *API {
	return &API{
		catalog:   catalog,
		analytics: analyticsService,
	}
}

// SetupRoutes defines all the API routes for the library catalog.
func SetupRoutes(router *gin.Engine, catalog services.Catalog, analyticsService *analytics.Service) {
	apiHandler := NewAPI(catalog, analyticsService)

	router.Use(RequestIDMiddleware(), CORSMiddleware())

	// Health check and monitoring routes
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Direct access to the query evaluator
	router.POST("/_evaluate", apiHandler.EvaluateHandler)
	router.POST("/_explain", apiHandler.ExplainHandler)

	// Collection management routes
	collectionRoutes := router.Group("/collections")
	{
		collectionRoutes.GET("", apiHandler.ListCollectionsHandler)               // List all collections
		collectionRoutes.POST("", apiHandler.CreateCollectionHandler)             // Create a new collection
		collectionRoutes.GET("/:collection", apiHandler.GetCollectionHandler)     // Settings and item count
		collectionRoutes.POST("/:collection/_search", apiHandler.SearchHandler)   // Filtered listing from a JSON body
		collectionRoutes.POST("/:collection/_persist", apiHandler.PersistHandler) // Flush settings and items to disk

		// Item routes per collection
		itemRoutes := collectionRoutes.Group("/:collection/items")
		{
			itemRoutes.GET("", apiHandler.ListItemsHandler)               // Filtered listing from query parameters
			itemRoutes.POST("", apiHandler.CreateItemHandler)             // Create an item, generating its id when missing
			itemRoutes.GET("/:id", apiHandler.GetItemHandler)             // Get one item
			itemRoutes.PUT("/:id", apiHandler.PutItemHandler)             // Create or update one item
			itemRoutes.DELETE("/:id", apiHandler.DeleteItemHandler)       // Delete one item
			itemRoutes.POST("/:id/view", apiHandler.IncrementViewHandler) // Count a view or play
		}
	}
}

// ListCollectionsHandler lists every collection with its item count.
func (api *API) ListCollectionsHandler(c *gin.Context) {
	names := api.catalog.ListCollections()
	collections := make([]services.CollectionInfo, 0, len(names))
	for _, name := range names {
		info, err := api.catalog.Collection(name)
		if err != nil {
			// Deleted between listing and lookup
			continue
		}
		collections = append(collections, info)
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"total":       len(collections),
	})
}

// GetCollectionHandler returns the settings and size of one collection.
func (api *API) GetCollectionHandler(c *gin.Context) {
	name := c.Param("collection")
	if result := ValidateCollectionName(name); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	info, err := api.catalog.Collection(name)
	if err != nil {
		SendCatalogError(c, err, name, "", "get collection")
		return
	}

	c.JSON(http.StatusOK, info)
}

// CreateCollectionHandler handles the request to create a new collection.
// Request Body: config.CollectionSettings
func (api *API) CreateCollectionHandler(c *gin.Context) {
	var settings config.CollectionSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateCollectionSettings(&settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.catalog.CreateCollection(settings); err != nil {
		SendCatalogError(c, err, settings.Name, "", "create collection")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Collection '" + settings.Name + "' created successfully",
		"settings": settings,
	})
}

// PersistHandler writes a collection's settings and items to disk.
func (api *API) PersistHandler(c *gin.Context) {
	name := c.Param("collection")
	if result := ValidateCollectionName(name); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.catalog.Persist(name); err != nil {
		SendCatalogError(c, err, name, "", "persist collection")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collection '" + name + "' persisted"})
}
