package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authorizer reports whether a request belongs to a signed-in user
type Authorizer func(r *http.Request) bool

// NewRouter builds the JSON API engine. Routes carry their full path so the
// engine can be mounted under /api/ors of the page router as is.
func NewRouter(orsHandler *ORSHandler, authorize Authorizer) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	group := engine.Group("/api/ors", requireUser(authorize))
	group.GET("/geocode", orsHandler.Geocode)
	group.POST("/directions", orsHandler.Directions)

	return engine
}

func requireUser(authorize Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authorize == nil || !authorize(c.Request) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
