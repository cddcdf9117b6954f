package controllers

import (
	"errors"
	"net/http"

	"template-review-api/models"
	"template-review-api/services"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user ID set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return 0, false
	}
	userID, ok := value.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return 0, false
	}
	return userID, true
}

// GridPayload is the wire shape of a grid structure on create/resubmit.
type GridPayload struct {
	Values       [][]interface{}          `json:"values" binding:"required"`
	Permissions  [][]models.PermissionSet `json:"permissions" binding:"required"`
	MergeRegions []models.MergeRegion     `json:"merge_regions"`
}

// ToStructure validates the payload into an immutable grid structure.
func (p GridPayload) ToStructure() (models.GridStructure, error) {
	return models.NewGridStructure(p.Values, p.Permissions, p.MergeRegions)
}

// respondWorkflowError translates engine failures into HTTP responses.
// Validation failures are caller errors; concurrency and state-precondition
// failures surface as conflicts so the client can re-read and decide.
func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrShapeMismatch),
		errors.Is(err, models.ErrInvalidMergeRegion),
		errors.Is(err, services.ErrCommentRequired),
		errors.Is(err, services.ErrCommentTooLong),
		errors.Is(err, services.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyHistory):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConcurrentPendingSubmission),
		errors.Is(err, services.ErrNoPendingSubmission),
		errors.Is(err, services.ErrNotRejected),
		errors.Is(err, services.ErrStaleVersion):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
