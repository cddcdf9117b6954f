package controllers

import (
	"net/http"
	"strconv"

	"template-review-api/config"
	"template-review-api/models"
	"template-review-api/services"

	"github.com/gin-gonic/gin"
)

type DecisionRequest struct {
	Decision        string `json:"decision" binding:"required"`
	Comment         string `json:"comment"`
	ExpectedVersion *int   `json:"expected_version"`
}

type ResubmitRequest struct {
	Grid            GridPayload `json:"grid" binding:"required"`
	ExpectedVersion *int        `json:"expected_version"`
}

// GetReviewQueue lists templates whose current submission is awaiting
// review, oldest submission first so reviewers work in arrival order.
func GetReviewQueue(c *gin.Context) {
	var pending []models.Submission
	err := config.DB.
		Where("status = ?", models.SubmissionStatusPending).
		Where("version = (SELECT MAX(version) FROM template_submissions s2 WHERE s2.template_id = template_submissions.template_id)").
		Preload("Submitter").
		Order("created_at ASC").
		Find(&pending).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review queue"})
		return
	}

	templateIDs := make([]int, 0, len(pending))
	for i := range pending {
		templateIDs = append(templateIDs, pending[i].TemplateID)
	}

	templates := make(map[int]models.TemplateRequest, len(templateIDs))
	if len(templateIDs) > 0 {
		var rows []models.TemplateRequest
		if err := config.DB.Preload("Department").
			Preload("Equipment").
			Preload("Supervisor").
			Where("template_id IN ? AND delete_at IS NULL", templateIDs).
			Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
			return
		}
		for i := range rows {
			templates[rows[i].TemplateID] = rows[i]
		}
	}

	items := make([]gin.H, 0, len(pending))
	for i := range pending {
		template, ok := templates[pending[i].TemplateID]
		if !ok {
			continue
		}
		items = append(items, gin.H{
			"template":   template,
			"submission": pending[i],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"queue":   items,
		"total":   len(items),
	})
}

// PostDecision applies an approve/reject decision to a template's current
// submission. Role checks happen in the route guard; the workflow still
// enforces the status preconditions itself, so two reviewers can never both
// decide the same version.
func PostDecision(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	template, ok := loadTemplate(c, templateID)
	if !ok {
		return
	}

	submission, err := services.Decide(config.DB, templateID, req.Decision, userID, req.Comment, req.ExpectedVersion)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	services.NotifyDecision(config.DB, template, submission)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"submission":   submission,
		"status_label": services.StatusLabel(submission.Status),
	})
}

// PostResubmit creates a fresh pending submission after a rejection. Only
// the template's supervisor may resubmit.
func PostResubmit(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var req ResubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	structure, err := req.Grid.ToStructure()
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	template, ok := loadTemplate(c, templateID)
	if !ok {
		return
	}
	if template.SupervisorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the template supervisor can resubmit"})
		return
	}

	submission, err := services.Resubmit(config.DB, templateID, structure, userID, req.ExpectedVersion)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	services.NotifySubmissionCreated(config.DB, template, submission)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

func loadTemplate(c *gin.Context, templateID int) (*models.TemplateRequest, bool) {
	var template models.TemplateRequest
	if err := config.DB.Where("template_id = ? AND delete_at IS NULL", templateID).
		First(&template).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template request not found"})
		return nil, false
	}
	return &template, true
}
