package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloud-storage-bot/internal/shared/telemetry"
)

// ErrorResponse is the JSON error body. Error carries the human-readable message
// the web client displays; Code is a stable machine-readable tag.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// OK writes a 200 JSON response.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Error logs the failure and aborts with a JSON error body.
func Error(c *gin.Context, status int, code, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
