package ui

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kuesioner/domain/core"
	"kuesioner/internal/errors"
)

// RequestIDHeader carries the per-request id in both directions
const RequestIDHeader = "X-Request-ID"

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(s.recovery(), requestID(), s.requestLogger(), cors())
}

// requestID keeps an incoming X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := core.ID(c.GetHeader(RequestIDHeader))
		if id.IsEmpty() {
			id = core.NewID()
		}
		c.Set("requestID", id.String())
		c.Header(RequestIDHeader, id.String())
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("[HTTP] %s %s %d %s (%s)", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start), c.GetString("requestID"))
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		s.logger.Error("[HTTP] Panic serving %s: %v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, APIResponse{
			Error: "internal error",
			Code:  errors.CodeInternalError,
		})
	})
}

// cors allows the questionnaire page to call the API from another origin
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
