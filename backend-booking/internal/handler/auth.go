package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/client"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/middleware"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/response"
)

// ForwardBearerToken copies the caller's access token into the request context
// so calls to the hotel service act on the caller's behalf. Runs after JWTMiddleware.
func ForwardBearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			c.Request = c.Request.WithContext(client.WithBearerToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

// currentUsername returns the authenticated username or writes a 401
func currentUsername(c *gin.Context) (string, bool) {
	username, ok := middleware.GetUsername(c)
	if !ok || username == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("authentication required"))
		return "", false
	}
	return username, true
}
