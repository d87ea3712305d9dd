package httpapi

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeaderName is echoed on every response; a missing id is generated.
const RequestIDHeaderName = "X-Request-ID"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeaderName, id)
		c.Header(RequestIDHeaderName, id)
		c.Next()
	}
}

func observe(m *metrics, l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", c.GetString(RequestIDHeaderName),
		)
	}
}
