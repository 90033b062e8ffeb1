package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type NotFoundHandler struct{}

func NewNotFoundHandler() *NotFoundHandler {
	return &NotFoundHandler{}
}

// NotFound handles 404 errors for non-existent routes
func (h *NotFoundHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":     "Página não encontrada.",
		"path":      c.Request.URL.Path,
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	})
}
