package models

import (
	"gorm.io/gorm"
)

// TeamMember is a roster entry: a person who can be assigned work.
// Distinct from the login identity (Credential); the two are joined
// by email only.
type TeamMember struct {
	ID       string `json:"id" gorm:"primaryKey"`
	UserID   string `json:"userId" gorm:"column:user_id"`
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"not null;index"`
	Role     string `json:"role"` // job role label, free text
	IsDoer   bool   `json:"isDoer" gorm:"column:is_doer;default:true"`
	IsActive bool   `json:"isActive" gorm:"column:is_active;default:true"`
	gorm.Model
}

// TableName specifies the table name for TeamMember Model
func (TeamMember) TableName() string {
	return "team_members"
}
