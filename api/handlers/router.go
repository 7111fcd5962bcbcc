// File: api/handlers/router.go

package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RouterConfig holds what the router needs beyond the handlers
type RouterConfig struct {
	AllowedOrigins []string
	// AccessLog enables gin's per-request access log
	AccessLog bool
}

// NewRouter wires the proxy routes and middleware
func NewRouter(cfg RouterConfig, search *SearchHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(RequestID())

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", HeaderRequestID},
			ExposeHeaders: []string{"Content-Length", HeaderRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	api := r.Group("/api")
	{
		api.POST("/search", search.HandleSearch)
		api.GET("/health", search.HandleHealth)
	}

	return r
}

// RequestID tags every request with an id, reusing the caller's X-Request-ID
// when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
