package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"template-review-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// MinRejectCommentLen is the shortest comment accepted on a rejection.
	MinRejectCommentLen = 5
	// MaxReviewCommentLen is the longest comment accepted on any decision.
	MaxReviewCommentLen = 500
)

// CurrentOf returns the submission with the highest version in a loaded
// history slice.
func CurrentOf(history []models.Submission) (*models.Submission, error) {
	if len(history) == 0 {
		return nil, ErrEmptyHistory
	}
	current := &history[0]
	for i := range history {
		if history[i].Version > current.Version {
			current = &history[i]
		}
	}
	return current, nil
}

// NextVersion returns the version the next submission in the history should
// carry. Versions are 1-based.
func NextVersion(history []models.Submission) int {
	next := 1
	for i := range history {
		if history[i].Version >= next {
			next = history[i].Version + 1
		}
	}
	return next
}

// EnsureNoPending rejects a new submission while another one is still under
// review. The history invariant is at most one pending submission per
// template.
func EnsureNoPending(history []models.Submission) error {
	for i := range history {
		if history[i].IsPending() {
			return ErrConcurrentPendingSubmission
		}
	}
	return nil
}

// ValidateReviewComment enforces the comment rules for a canonical decision:
// rejections need a comment of at least MinRejectCommentLen characters, and
// no comment may exceed MaxReviewCommentLen. Approval comments are optional.
func ValidateReviewComment(decision, comment string) error {
	trimmed := strings.TrimSpace(comment)
	length := utf8.RuneCountInString(trimmed)
	if decision == models.SubmissionStatusRejected && length < MinRejectCommentLen {
		return fmt.Errorf("%w: at least %d characters", ErrCommentRequired, MinRejectCommentLen)
	}
	if length > MaxReviewCommentLen {
		return fmt.Errorf("%w: at most %d characters", ErrCommentTooLong, MaxReviewCommentLen)
	}
	return nil
}

// checkExpectedVersion applies the optimistic concurrency check when the
// caller supplied an expected version. currentVersion is 0 for an empty
// history.
func checkExpectedVersion(expected *int, currentVersion int) error {
	if expected != nil && *expected != currentVersion {
		return fmt.Errorf("%w: expected %d, stored %d", ErrStaleVersion, *expected, currentVersion)
	}
	return nil
}

// appendSubmission creates the next pending submission and its status
// history row. Must run inside a transaction that holds the template's
// submission rows locked.
func appendSubmission(tx *gorm.DB, templateID int, history []models.Submission, structure models.GridStructure, submitterID int) (*models.Submission, error) {
	now := time.Now()
	submission := models.Submission{
		SubmissionNumber: uuid.NewString(),
		TemplateID:       templateID,
		Version:          NextVersion(history),
		Status:           models.SubmissionStatusPending,
		Structure:        structure,
		SubmittedBy:      submitterID,
		CreatedAt:        now,
	}
	if err := tx.Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	var oldStatus *string
	if prior, err := CurrentOf(history); err == nil {
		status := prior.Status
		oldStatus = &status
	}
	entry := models.TemplateStatusHistory{
		TemplateID:   templateID,
		SubmissionID: submission.SubmissionID,
		OldStatus:    oldStatus,
		NewStatus:    models.SubmissionStatusPending,
		ChangedBy:    submitterID,
		CreatedAt:    now,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to log status history: %w", err)
	}
	return &submission, nil
}

// loadHistoryForUpdate reads a template's full submission history inside tx
// with the rows locked against concurrent writers.
func loadHistoryForUpdate(tx *gorm.DB, templateID int) ([]models.Submission, error) {
	var history []models.Submission
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("template_id = ?", templateID).
		Order("version ASC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load submission history: %w", err)
	}
	return history, nil
}

// StartNewSubmission appends a fresh pending submission for a template. It
// fails with ErrConcurrentPendingSubmission while another submission is
// under review. The check and the append run in one transaction so two
// callers can never both succeed; the unique (template_id, version) index
// backs the same guarantee at the storage level.
func StartNewSubmission(db *gorm.DB, templateID int, structure models.GridStructure, submitterID int, expectedVersion *int) (*models.Submission, error) {
	var created *models.Submission
	err := db.Transaction(func(tx *gorm.DB) error {
		history, err := loadHistoryForUpdate(tx, templateID)
		if err != nil {
			return err
		}
		currentVersion := 0
		if current, err := CurrentOf(history); err == nil {
			currentVersion = current.Version
		}
		if err := checkExpectedVersion(expectedVersion, currentVersion); err != nil {
			return err
		}
		if err := EnsureNoPending(history); err != nil {
			return err
		}
		created, err = appendSubmission(tx, templateID, history, structure, submitterID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Decide applies a reviewer decision to the template's current submission.
// The decision verb is normalized first; comment rules are enforced before
// any row is touched. Once a submission leaves pending it never changes
// again, so the update is guarded by the pending status as well as the row
// lock.
func Decide(db *gorm.DB, templateID int, decision string, reviewerID int, comment string, expectedVersion *int) (*models.Submission, error) {
	canonical, err := CanonicalDecision(decision)
	if err != nil {
		return nil, err
	}
	if err := ValidateReviewComment(canonical, comment); err != nil {
		return nil, err
	}

	var updated models.Submission
	err = db.Transaction(func(tx *gorm.DB) error {
		var current models.Submission
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("template_id = ?", templateID).
			Order("version DESC").
			First(&current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyHistory
			}
			return fmt.Errorf("failed to load current submission: %w", err)
		}
		if err := checkExpectedVersion(expectedVersion, current.Version); err != nil {
			return err
		}
		if !current.IsPending() {
			return ErrNoPendingSubmission
		}

		now := time.Now()
		trimmed := strings.TrimSpace(comment)
		updates := map[string]interface{}{
			"status":      canonical,
			"reviewer_id": reviewerID,
			"reviewed_at": now,
		}
		if trimmed != "" {
			updates["review_comment"] = trimmed
		}

		result := tx.Model(&models.Submission{}).
			Where("submission_id = ? AND status = ?", current.SubmissionID, models.SubmissionStatusPending).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update submission: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNoPendingSubmission
		}

		oldStatus := models.SubmissionStatusPending
		entry := models.TemplateStatusHistory{
			TemplateID:   templateID,
			SubmissionID: current.SubmissionID,
			OldStatus:    &oldStatus,
			NewStatus:    canonical,
			ChangedBy:    reviewerID,
			CreatedAt:    now,
		}
		if trimmed != "" {
			entry.Reason = &trimmed
		}
		note := fmt.Sprintf("review_decision:%s", canonical)
		entry.Notes = &note
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to log status history: %w", err)
		}

		current.Status = canonical
		current.ReviewerID = &reviewerID
		if trimmed != "" {
			current.ReviewComment = &trimmed
		}
		current.ReviewedAt = &now
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Resubmit appends a new pending submission after a rejection. Only legal
// while the current version is rejected; every prior submission stays
// untouched.
func Resubmit(db *gorm.DB, templateID int, structure models.GridStructure, submitterID int, expectedVersion *int) (*models.Submission, error) {
	var created *models.Submission
	err := db.Transaction(func(tx *gorm.DB) error {
		history, err := loadHistoryForUpdate(tx, templateID)
		if err != nil {
			return err
		}
		current, err := CurrentOf(history)
		if err != nil {
			return err
		}
		if err := checkExpectedVersion(expectedVersion, current.Version); err != nil {
			return err
		}
		if current.Status != models.SubmissionStatusRejected {
			return ErrNotRejected
		}
		created, err = appendSubmission(tx, templateID, history, structure, submitterID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
