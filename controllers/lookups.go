package controllers

import (
	"net/http"

	"template-review-api/config"
	"template-review-api/models"

	"github.com/gin-gonic/gin"
)

// GetDepartments lists active departments for template request forms.
func GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := config.DB.Where("is_active = ? AND delete_at IS NULL", true).
		Order("department_name ASC").
		Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"departments": departments,
	})
}

// GetEquipment lists active equipment, optionally filtered by department.
func GetEquipment(c *gin.Context) {
	query := config.DB.Where("is_active = ? AND delete_at IS NULL", true)
	if departmentID := c.Query("department_id"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var equipment []models.Equipment
	if err := query.Order("equipment_name ASC").Find(&equipment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch equipment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"equipment": equipment,
	})
}
