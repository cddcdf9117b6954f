package models

import "time"

// TemplateRequest binds a template's identity to its submission history.
// The request itself carries no status; its status is derived from the
// current (highest-version) submission.
type TemplateRequest struct {
	TemplateID   int        `gorm:"primaryKey;column:template_id" json:"template_id"`
	TemplateName string     `gorm:"column:template_name" json:"template_name"`
	Description  *string    `gorm:"column:description" json:"description,omitempty"`
	DepartmentID int        `gorm:"column:department_id" json:"department_id"`
	EquipmentID  int        `gorm:"column:equipment_id" json:"equipment_id"`
	SupervisorID int        `gorm:"column:supervisor_id" json:"supervisor_id"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Department  Department   `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Equipment   Equipment    `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
	Supervisor  User         `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Submissions []Submission `gorm:"foreignKey:TemplateID" json:"submissions,omitempty"`
}

// TableName specifies the table name for TemplateRequest.
func (TemplateRequest) TableName() string {
	return "template_requests"
}
