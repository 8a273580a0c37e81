package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kuesioner/app"
	"kuesioner/internal"
	"kuesioner/internal/errors"
)

type SubmitHandler struct {
	submissions *app.SubmissionService
	logger      *internal.Logger
}

func NewSubmitHandler(submissions *app.SubmissionService, logger *internal.Logger) *SubmitHandler {
	return &SubmitHandler{
		submissions: submissions,
		logger:      logger,
	}
}

// HandleSubmit forwards one questionnaire, posted as a JSON object of string fields
func (h *SubmitHandler) HandleSubmit() gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields map[string]string
		if err := c.ShouldBindJSON(&fields); err != nil {
			h.logger.Warn("[API] Invalid submission body: %v", err)
			respondError(c, errors.InvalidInput("request body must be a JSON object of string fields"))
			return
		}
		if fields == nil {
			respondError(c, errors.InvalidInput("request body must be a JSON object of string fields"))
			return
		}

		if _, err := h.submissions.Submit(c.Request.Context(), fields); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, APIResponse{Success: true})
	}
}
