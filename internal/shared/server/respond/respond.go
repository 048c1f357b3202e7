// Package respond centralizes the JSON bodies the API writes, so every
// handler emits the same success and error shapes.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proresume-backend/internal/shared/telemetry"
)

// ErrorResponse is the standardized error body: {"error": ..., "details": ...}.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Error logs the failure and aborts the request with the standardized
// error body.
func Error(c *gin.Context, status int, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if details != nil {
		fields["details"] = details
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
