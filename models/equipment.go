package models

import "time"

// Equipment is a lookup entity referenced by template requests. Managed
// outside this service; only read here.
type Equipment struct {
	EquipmentID   int        `gorm:"primaryKey;column:equipment_id" json:"equipment_id"`
	EquipmentName string     `gorm:"column:equipment_name" json:"equipment_name"`
	DepartmentID  *int       `gorm:"column:department_id" json:"department_id,omitempty"`
	IsActive      bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName specifies the table name for Equipment.
func (Equipment) TableName() string {
	return "equipment"
}
