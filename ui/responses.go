package ui

import (
	"github.com/gin-gonic/gin"

	"kuesioner/internal/errors"
)

// APIResponse is the envelope for submit results and every error
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// respondError writes err with the status its code maps to.
// Errors outside the AppError chain are reported without their text.
func respondError(c *gin.Context, err error) {
	message := "internal error"
	if errors.IsAppError(err) {
		message = err.Error()
	}
	c.JSON(errors.HTTPStatus(err), APIResponse{
		Success: false,
		Error:   message,
		Code:    errors.GetCode(err),
	})
}
