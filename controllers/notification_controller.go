package controllers

import (
	"net/http"
	"strconv"

	"template-review-api/config"
	"template-review-api/models"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userID)
	if c.Query("unread") == "1" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("create_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
		"total":         len(notifications),
	})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || notificationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	result := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
