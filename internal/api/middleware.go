package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
)

// requestLogger logs one line per request through the shared logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := logging.Fields{
			"method":               c.Request.Method,
			constants.LogFieldPath: c.FullPath(),
			"status":               c.Writer.Status(),
			"latency_ms":           time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= 500 {
			logging.Warn("request failed", fields)
			return
		}
		logging.Debug("request served", fields)
	}
}
