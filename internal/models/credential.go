package models

import (
	"gorm.io/gorm"
)

// SystemRole is the access role carried by a login identity.
type SystemRole string

const (
	RoleStaff      SystemRole = "staff"
	RoleAdmin      SystemRole = "admin"
	RoleSuperadmin SystemRole = "superadmin"
)

// ValidSystemRole reports whether s is one of the three known roles.
func ValidSystemRole(s SystemRole) bool {
	return s == RoleStaff || s == RoleAdmin || s == RoleSuperadmin
}

// Credential is a login record: looked up by (email, systemRole) when an
// OTP is requested and verified against the stored hash at login.
// The plaintext OTP is never persisted.
type Credential struct {
	ID         string     `json:"userId" gorm:"primaryKey;column:user_id"`
	Email      string     `json:"email" gorm:"not null;index"`
	OTPHash    string     `json:"-" gorm:"column:otp_hash;not null"`
	SystemRole SystemRole `json:"systemRole" gorm:"column:system_role;not null"`
	Name       string     `json:"name" gorm:"not null"`
	gorm.Model
}

// TableName specifies the table name for Credential Model
func (Credential) TableName() string {
	return "credentials"
}
