package middleware

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const requestIDKey = "request_id"

var (
	ridMu  sync.Mutex
	ridSrc = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RequestID ensures every request has an ID for tracing and logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			ridMu.Lock()
			n := ridSrc.Intn(1000000)
			ridMu.Unlock()
			rid = strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + strconv.Itoa(n)
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// GetRequestID extracts request_id from gin context when available.
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
