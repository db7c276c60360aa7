package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jhaShwet/content-generation/internal/config"
	"github.com/jhaShwet/content-generation/internal/logger"
)

// RequestIDMiddleware adds a unique request ID to each request context.
// The ID is either taken from the X-Request-ID header or generated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}

// LoggerMiddleware creates a Gin middleware for structured HTTP request
// logging. It logs method, path, status, duration, and client IP.
func LoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		fields := []logger.Field{
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("duration", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
		}

		if requestID := c.GetString("request_id"); requestID != "" {
			fields = append(fields, logger.String("request_id", requestID))
		}

		// Skip user agent noise for probe endpoints
		if !strings.HasPrefix(path, "/health") && !strings.HasPrefix(path, "/metrics") {
			fields = append(fields, logger.String("user_agent", c.Request.UserAgent()))
		}

		log.Info("HTTP request", fields...)
	}
}

// RecoveryMiddleware creates a Gin middleware for panic recovery with
// logging. It catches panics and returns a 500 error payload.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered",
					logger.Any("error", err),
					logger.String("path", c.Request.URL.Path),
					logger.String("method", c.Request.Method),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:     "Internal server error",
					Code:      "INTERNAL_ERROR",
					Timestamp: time.Now(),
				})
			}
		}()

		c.Next()
	}
}

// CORSMiddleware creates a Gin middleware for handling Cross-Origin
// Resource Sharing.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedMethods := strings.Join(cfg.AllowedMethods, ", ")
	allowedHeaders := strings.Join(cfg.AllowedHeaders, ", ")
	allowCredentials := strconv.FormatBool(cfg.AllowCredentials)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		origin := c.Request.Header.Get("Origin")
		allowedOrigin := determineAllowedOrigin(origin, cfg.AllowedOrigins)
		if allowedOrigin == "" {
			// Origin not allowed, continue without CORS headers
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", allowCredentials)
		c.Writer.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		c.Writer.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		c.Writer.Header().Set("Access-Control-Max-Age", maxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// determineAllowedOrigin checks if the origin is in the allowed list.
// Returns the origin to use in the response, or empty string if not allowed.
func determineAllowedOrigin(origin string, allowedOrigins []string) string {
	// No origin header means a same-origin request
	if origin == "" {
		return "*"
	}

	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if allowed == origin {
			return origin
		}
	}

	return ""
}
