// Package middleware provides the HTTP middleware chain: request identity,
// CORS, request logging, body-size limiting, and rate limiting.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
)

// HeaderRequestID is the request/response header carrying the request ID.
const HeaderRequestID = "X-Request-ID"

// RequestID propagates the caller-supplied request ID or mints a new one.
// The ID lands in the request context under common.ContextKeyRequestID so
// services and the Kafka producer can pick it up as the trace ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		ctx := context.WithValue(c.Request.Context(), common.ContextKeyRequestID, id)
		ctx = context.WithValue(ctx, common.ContextKeyClientIP, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(common.ContextKeyRequestID), id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the request ID placed by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(common.ContextKeyRequestID))
}
