package respond

import (
	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/telemetry"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform response wrapper returned by every handler.
type Envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// JSON writes a success envelope with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, Envelope{OK: true, Data: payload})
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, payload any) {
	JSON(c, 200, payload)
}

// Err renders err through the taxonomy: status and code come from the
// apperr code, the message is the user-safe message. The full error chain
// is logged, never sent to the client.
func Err(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status := apperr.HTTPStatus(code)

	fields := map[string]any{
		"status":     status,
		"code":       string(code),
		"error":      err.Error(),
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, Envelope{
		OK: false,
		Error: &ErrorBody{
			Code:    string(code),
			Message: apperr.MessageOf(err),
		},
	})
}
