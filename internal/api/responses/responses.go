// internal/api/responses/responses.go
package responses

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// APIResponse defines the standard envelope for API responses.
type APIResponse struct {
	Status  string      `json:"status"` // "success" or "error"
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// InitLogger sets the structured logger used for API responses. nil keeps a no-op logger.
func InitLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Success sends a successful response with the provided data and message.
func Success(c *gin.Context, data interface{}, message string) {
	resp := APIResponse{Status: "success", Data: data, Message: message}
	c.JSON(http.StatusOK, resp)
	logger.Info("API success", zap.String("path", c.Request.URL.Path), zap.Int("status", http.StatusOK))
}

// Attachment sends a file download along with the conversion counters.
func Attachment(c *gin.Context, fileName, contentType string, body []byte, count, skipped int) {
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Header("X-Transaction-Count", strconv.Itoa(count))
	c.Header("X-Skipped-Rows", strconv.Itoa(skipped))
	c.Data(http.StatusOK, contentType, body)
	logger.Info("API download",
		zap.String("path", c.Request.URL.Path),
		zap.String("file", fileName),
		zap.Int("transactions", count),
		zap.Int("skipped", skipped))
}

// Error sends an error response with the provided code, message, and optional errors.
func Error(c *gin.Context, code int, message string, errs ...string) {
	resp := APIResponse{Status: "error", Message: message, Errors: errs}
	c.JSON(code, resp)
	logger.Error("API error", zap.String("path", c.Request.URL.Path), zap.Int("status", code), zap.Strings("errors", errs))
}
