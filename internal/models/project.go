package models

import (
	"gorm.io/gorm"
)

// Project is a grouping label on tasks; no lifecycle beyond create/delete.
type Project struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Color       string `json:"color,omitempty"`
	gorm.Model
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
