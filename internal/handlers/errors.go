package handlers

import (
	"errors"
	"net/http"

	"task-approval-api/internal/workflow"

	"github.com/gin-gonic/gin"
)

// respondError maps an engine failure to its HTTP status. Failures are
// terminal for the request; clients must change the input to succeed.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, workflow.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, workflow.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, workflow.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workflow.ErrInvalidState):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
