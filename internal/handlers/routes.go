package handlers

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every endpoint on the router
func SetupRoutes(router *gin.Engine, personHandler *PersonHandler, healthHandler *HealthHandler) {
	notFoundHandler := NewNotFoundHandler()

	// Spreadsheet import/export. Method checks happen in the handlers.
	router.Any("/upload-planilha/", personHandler.UploadSpreadsheet)
	router.Any("/download-planilha/", personHandler.DownloadSpreadsheet)

	// Read-only listing
	people := router.Group("/pessoas")
	{
		people.GET("", personHandler.ListPeople)
		people.GET("/:email", personHandler.GetPerson)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	router.NoRoute(notFoundHandler.NotFound)
}
