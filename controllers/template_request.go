package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"template-review-api/config"
	"template-review-api/models"
	"template-review-api/services"
	"template-review-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateTemplateRequestInput struct {
	TemplateName string      `json:"template_name" binding:"required"`
	Description  *string     `json:"description"`
	DepartmentID int         `json:"department_id" binding:"required"`
	EquipmentID  int         `json:"equipment_id" binding:"required"`
	Grid         GridPayload `json:"grid" binding:"required"`
}

// CreateTemplateRequest registers a new template together with its initial
// pending submission. The caller becomes the template's supervisor.
func CreateTemplateRequest(c *gin.Context) {
	var req CreateTemplateRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if ok, reason := utils.ValidateTemplateName(req.TemplateName); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
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

	template := models.TemplateRequest{
		TemplateName: utils.SanitizeInput(req.TemplateName),
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		EquipmentID:  req.EquipmentID,
		SupervisorID: userID,
		CreateAt:     time.Now(),
	}

	var submission *models.Submission
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
		created, err := services.StartNewSubmission(tx, template.TemplateID, structure, userID, nil)
		if err != nil {
			return err
		}
		submission = created
		return nil
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	services.NotifySubmissionCreated(config.DB, &template, submission)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"template":   template,
		"submission": submission,
	})
}

// GetTemplateRequests lists templates visible to the caller, newest first.
// Supervisors see their own templates; reviewers and admins see everything.
func GetTemplateRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roleID, _ := c.Get("roleID")

	query := config.DB.Model(&models.TemplateRequest{}).
		Where("delete_at IS NULL")
	if roleID == models.RoleSupervisor {
		query = query.Where("supervisor_id = ?", userID)
	}
	if search := utils.SanitizeInput(c.Query("search")); search != "" {
		query = query.Where("template_name LIKE ?", "%"+search+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count template requests"})
		return
	}

	var templates []models.TemplateRequest
	if err := query.Preload("Department").
		Preload("Equipment").
		Preload("Supervisor").
		Order("create_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template requests"})
		return
	}

	templateIDs := make([]int, 0, len(templates))
	for i := range templates {
		templateIDs = append(templateIDs, templates[i].TemplateID)
	}
	statuses, err := services.CurrentStatuses(config.DB, templateIDs)
	if err != nil {
		log.Printf("Failed to resolve template statuses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve template statuses"})
		return
	}

	items := make([]gin.H, 0, len(templates))
	for i := range templates {
		status, found := statuses[templates[i].TemplateID]
		if !found {
			// Every template gets a submission at creation, so a gap here
			// means the history is damaged.
			log.Printf("Warning: template %d has no submissions", templates[i].TemplateID)
		}
		items = append(items, gin.H{
			"template":     templates[i],
			"status":       status,
			"status_label": services.StatusLabel(status),
		})
	}

	totalPages := (totalCount + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"templates": items,
		"pagination": gin.H{
			"current_page": page,
			"per_page":     limit,
			"total_count":  totalCount,
			"total_pages":  totalPages,
		},
	})
}

// GetTemplateRequest returns one template with its current submission.
func GetTemplateRequest(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var template models.TemplateRequest
	if err := config.DB.Preload("Department").
		Preload("Equipment").
		Preload("Supervisor").
		Where("template_id = ? AND delete_at IS NULL", templateID).
		First(&template).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template request not found"})
		return
	}

	current, err := services.CurrentSubmission(config.DB, templateID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"template":     template,
		"current":      current,
		"status":       current.Status,
		"status_label": services.StatusLabel(current.Status),
	})
}
