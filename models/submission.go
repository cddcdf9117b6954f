package models

import "time"

// Submission statuses. A submission transitions exactly once from pending to
// a terminal status and is immutable afterwards.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// Submission is one immutable version of a template grid under review.
// Versions are 1-based and strictly increasing within a template; the
// submission with the highest version is the current one.
type Submission struct {
	SubmissionID     int           `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	SubmissionNumber string        `gorm:"column:submission_number;unique" json:"submission_number"`
	TemplateID       int           `gorm:"column:template_id;uniqueIndex:uniq_template_version" json:"template_id"`
	Version          int           `gorm:"column:version;uniqueIndex:uniq_template_version" json:"version"`
	Status           string        `gorm:"column:status" json:"status"`
	Structure        GridStructure `gorm:"column:structure;type:json" json:"structure"`
	SubmittedBy      int           `gorm:"column:submitted_by" json:"submitted_by"`
	ReviewerID       *int          `gorm:"column:reviewer_id" json:"reviewer_id,omitempty"`
	ReviewComment    *string       `gorm:"column:review_comment" json:"review_comment,omitempty"`
	CreatedAt        time.Time     `gorm:"column:created_at" json:"created_at"`
	ReviewedAt       *time.Time    `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`

	// Relations
	Reviewer  *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Submitter *User `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
}

// TableName specifies the table name for Submission.
func (Submission) TableName() string {
	return "template_submissions"
}

// IsPending reports whether the submission is still awaiting review.
func (s *Submission) IsPending() bool {
	return s.Status == SubmissionStatusPending
}

// IsTerminal reports whether the submission has left review and may no
// longer change.
func (s *Submission) IsTerminal() bool {
	return s.Status == SubmissionStatusApproved || s.Status == SubmissionStatusRejected
}
