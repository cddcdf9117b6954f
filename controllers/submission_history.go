package controllers

import (
	"net/http"
	"strconv"

	"template-review-api/config"
	"template-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetSubmissionHistory returns one newest-first page of a template's
// submission history with display version labels and the total count.
func GetSubmissionHistory(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	submissions, total, err := services.PageSubmissions(config.DB, templateID, offset, limit)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	items := make([]gin.H, 0, len(submissions))
	for i := range submissions {
		items = append(items, gin.H{
			"submission":    submissions[i],
			"version_label": services.VersionLabel(total, offset+i),
		})
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": items,
		"pagination": gin.H{
			"current_page": page,
			"per_page":     limit,
			"total_count":  total,
			"total_pages":  totalPages,
		},
	})
}

// GetCurrentSubmission returns the current submission with its full grid
// structure. With include_access=1 the response carries the per-cell access
// classification used by export and rendering consumers.
func GetCurrentSubmission(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	current, err := services.CurrentSubmission(config.DB, templateID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	response := gin.H{
		"success":      true,
		"submission":   current,
		"status_label": services.StatusLabel(current.Status),
	}
	if c.Query("include_access") == "1" {
		response["access"] = current.Structure.AccessMatrix()
	}

	c.JSON(http.StatusOK, response)
}
