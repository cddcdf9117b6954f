package services

import (
	"fmt"
	"log"
	"time"

	"template-review-api/config"
	"template-review-api/models"

	"gorm.io/gorm"
)

// NotifyDecision records an in-app notification for the template's
// supervisor after a review decision and sends a best-effort email. Called
// after the decision transaction commits; a notification failure never rolls
// back a decision.
func NotifyDecision(db *gorm.DB, template *models.TemplateRequest, submission *models.Submission) {
	notifType := "success"
	title := "Template approved"
	message := fmt.Sprintf("Template %q version %d was approved.", template.TemplateName, submission.Version)
	if submission.Status == models.SubmissionStatusRejected {
		notifType = "warning"
		title = "Template rejected"
		message = fmt.Sprintf("Template %q version %d was rejected. You can revise and resubmit it.", template.TemplateName, submission.Version)
		if submission.ReviewComment != nil {
			message = fmt.Sprintf("%s Reviewer comment: %s", message, *submission.ReviewComment)
		}
	}

	createNotification(db, template.SupervisorID, title, message, notifType, template.TemplateID, submission.SubmissionID)

	var supervisor models.User
	if err := db.Where("user_id = ? AND delete_at IS NULL", template.SupervisorID).First(&supervisor).Error; err != nil {
		log.Printf("Warning: supervisor %d not found for decision mail: %v", template.SupervisorID, err)
		return
	}
	go func() {
		html := fmt.Sprintf("<p>%s</p><p>Submission number: %s</p>", message, submission.SubmissionNumber)
		if err := config.SendMail([]string{supervisor.Email}, title, html); err != nil {
			log.Printf("Warning: failed to send decision mail to %s: %v", supervisor.Email, err)
		}
	}()
}

// NotifySubmissionCreated tells reviewers a new submission entered the
// review queue.
func NotifySubmissionCreated(db *gorm.DB, template *models.TemplateRequest, submission *models.Submission) {
	title := "New template submission"
	message := fmt.Sprintf("Template %q version %d is awaiting review.", template.TemplateName, submission.Version)

	var reviewers []models.User
	if err := db.Where("role_id IN ? AND delete_at IS NULL", []int{models.RoleReviewer, models.RoleAdmin}).
		Find(&reviewers).Error; err != nil {
		log.Printf("Warning: failed to load reviewers for notification: %v", err)
		return
	}
	for _, reviewer := range reviewers {
		createNotification(db, reviewer.UserID, title, message, "info", template.TemplateID, submission.SubmissionID)
	}
}

func createNotification(db *gorm.DB, userID int, title, message, notifType string, templateID, submissionID int) {
	notification := models.Notification{
		UserID:              userID,
		Title:               title,
		Message:             message,
		Type:                notifType,
		RelatedTemplateID:   &templateID,
		RelatedSubmissionID: &submissionID,
		CreateAt:            time.Now(),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create notification for user %d: %v", userID, err)
	}
}
