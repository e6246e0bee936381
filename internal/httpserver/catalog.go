package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func catalogHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		menu, err := svc.Menu(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, menu)
	}
}
