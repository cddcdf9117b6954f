package services

import (
	"errors"
	"fmt"

	"template-review-api/models"

	"gorm.io/gorm"
)

// CurrentVersionLabel is the display label for the highest version.
const CurrentVersionLabel = "Current"

// CurrentSubmission returns a template's submission with the highest
// version. Reads never take locks; a reader racing a writer may observe the
// previous current version, which is fine because the log is append-only.
func CurrentSubmission(db *gorm.DB, templateID int) (*models.Submission, error) {
	var current models.Submission
	err := db.Where("template_id = ?", templateID).
		Order("version DESC").
		Preload("Reviewer").
		First(&current).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyHistory
		}
		return nil, fmt.Errorf("failed to load current submission: %w", err)
	}
	return &current, nil
}

// PageSubmissions returns one newest-first window over a template's
// submission history plus the total count for pagination. The window is
// restartable: the same offset and limit always address the same point in
// the version order, with new versions only ever prepending.
func PageSubmissions(db *gorm.DB, templateID int, offset, limit int) ([]models.Submission, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := db.Model(&models.Submission{}).
		Where("template_id = ?", templateID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	var submissions []models.Submission
	if err := db.Where("template_id = ?", templateID).
		Order("version DESC").
		Offset(offset).
		Limit(limit).
		Find(&submissions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch submissions: %w", err)
	}
	return submissions, total, nil
}

// VersionLabel computes the display label for a submission at the given
// index in the newest-first view. The newest entry is "Current"; older ones
// count down as v<N> so an entry keeps its number as new versions arrive.
func VersionLabel(total int64, indexFromNewest int) string {
	if indexFromNewest == 0 {
		return CurrentVersionLabel
	}
	return fmt.Sprintf("v%d", total-int64(indexFromNewest))
}

// DerivedStatus resolves a template's status from its current submission.
// Templates always have at least one submission; an empty history is
// reported, not hidden.
func DerivedStatus(db *gorm.DB, templateID int) (string, error) {
	current, err := CurrentSubmission(db, templateID)
	if err != nil {
		return "", err
	}
	return current.Status, nil
}

// CurrentStatuses resolves the derived status for several templates with a
// single query, keyed by template ID. Templates missing from the result have
// no submissions at all.
func CurrentStatuses(db *gorm.DB, templateIDs []int) (map[int]string, error) {
	statuses := make(map[int]string, len(templateIDs))
	if len(templateIDs) == 0 {
		return statuses, nil
	}

	var currents []models.Submission
	err := db.Where("template_id IN ?", templateIDs).
		Where("version = (SELECT MAX(version) FROM template_submissions s2 WHERE s2.template_id = template_submissions.template_id)").
		Find(&currents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current statuses: %w", err)
	}

	for i := range currents {
		statuses[currents[i].TemplateID] = currents[i].Status
	}
	return statuses, nil
}
