package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CallerHeader carries the authenticated address supplied by the
	// external wallet/session layer. The core never authenticates
	// credentials itself; it only checks this identity against stored
	// roles, ownership, and participation.
	CallerHeader = "X-Caller-Address"

	requestIDHeader  = "X-Request-ID"
	callerContextKey = "callerAddress"
)

// Identity extracts the caller address and tags every request with an id.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(callerContextKey, c.GetHeader(CallerHeader))

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}

// CallerAddress returns the caller address for the request, or "" when the
// wallet layer supplied none.
func CallerAddress(c *gin.Context) string {
	return c.GetString(callerContextKey)
}
