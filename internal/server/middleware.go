// {{RIPER-5-Enhanced:
//   Action: "Added"
//   Task_ID: "HTTP Middleware"
//   Timestamp: "2025-11-27T13:50:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Split request tracing, logging and metrics into gin middleware"
//   Principle_Applied: "Aether-Engineering-SOLID-S"
//   Quality_Check: "Bodies only captured at debug level, response preview capped"
// }}

package server

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	responsePreviewLimit = 500
)

// RequestIDMiddleware propagates or generates a request ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// previewWriter keeps the first bytes of the response body
type previewWriter struct {
	gin.ResponseWriter
	preview bytes.Buffer
}

func (w *previewWriter) Write(b []byte) (int, error) {
	w.capture(b)
	return w.ResponseWriter.Write(b)
}

func (w *previewWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *previewWriter) capture(b []byte) {
	if room := responsePreviewLimit - w.preview.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		w.preview.Write(b[:room])
	}
}

// LoggerMiddleware logs HTTP requests
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		debug := log.IsLevelEnabled(log.DebugLevel)
		var writer *previewWriter
		if debug {
			if c.Request.Body != nil {
				body, err := io.ReadAll(c.Request.Body)
				if err == nil {
					c.Request.Body = io.NopCloser(bytes.NewReader(body))
					log.WithField(requestIDKey, c.GetString(requestIDKey)).
						Debugf("[HTTP] request body: %s", body)
				}
			}
			writer = &previewWriter{ResponseWriter: c.Writer}
			c.Writer = writer
		}

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		entry := log.WithField(requestIDKey, c.GetString(requestIDKey))
		entry.Infof("[HTTP] %s %s %d %v %s",
			method,
			path,
			statusCode,
			latency,
			clientIP,
		)
		if writer != nil {
			entry.Debugf("[HTTP] response body: %s", writer.preview.String())
		}
	}
}

// MetricsMiddleware records request counts and latency per route template
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
