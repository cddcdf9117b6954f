package models

import "time"

// Department is a lookup entity referenced by template requests. Managed
// outside this service; only read here.
type Department struct {
	DepartmentID   int        `gorm:"primaryKey;column:department_id" json:"department_id"`
	DepartmentName string     `gorm:"column:department_name" json:"department_name"`
	IsActive       bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName specifies the table name for Department.
func (Department) TableName() string {
	return "departments"
}
