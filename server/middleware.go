package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/slikit/logger"
)

// recovery logs panics with the stack and answers 500.
func recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered", logger.Fields(
					"error", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// requestLogger logs every request with method, path, status, and
// latency. Health probes are skipped to keep the log quiet.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client", c.ClientIP(),
		)
		switch {
		case status >= 500:
			log.Error("request", fields)
		case status >= 400:
			log.Warn("request", fields)
		default:
			log.Info("request", fields)
		}
	}
}
