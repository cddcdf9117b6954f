package models

import "time"

// TemplateStatusHistory tracks historical status changes for template
// submissions. Rows are appended inside the same transaction as the change
// they record.
type TemplateStatusHistory struct {
	HistoryID    int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	TemplateID   int       `gorm:"column:template_id;index" json:"template_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	OldStatus    *string   `gorm:"column:old_status" json:"old_status"`
	NewStatus    string    `gorm:"column:new_status" json:"new_status"`
	ChangedBy    int       `gorm:"column:changed_by" json:"changed_by"`
	Reason       *string   `gorm:"column:reason" json:"reason"`
	Notes        *string   `gorm:"column:notes" json:"notes"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table for TemplateStatusHistory.
func (TemplateStatusHistory) TableName() string {
	return "template_status_history"
}
