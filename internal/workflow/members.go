package workflow

import (
	"fmt"
	"strings"

	"task-approval-api/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateMemberInput carries the superadmin provisioning form.
type CreateMemberInput struct {
	Name       string
	Email      string
	Role       string // job role label, free text
	SystemRole models.SystemRole
	IsDoer     bool
}

// ProvisionedMember is the result of account creation: the roster entry
// plus the one-time credentials shown to the superadmin exactly once.
type ProvisionedMember struct {
	Member *models.TeamMember `json:"member"`
	UserID string             `json:"userId"`
	OTP    string             `json:"otp"`
}

// CreateMember provisions a new account: a roster entry for assignment
// plus a credential record for login, created together. Superadmin only.
// The returned OTP is not recoverable later; only its hash is stored.
func (e *Engine) CreateMember(in CreateMemberInput, actor Actor) (*ProvisionedMember, error) {
	if err := requireRole(actor, models.RoleSuperadmin); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if strings.TrimSpace(in.Role) == "" {
		return nil, fmt.Errorf("%w: job role is required", ErrValidation)
	}
	if !models.ValidSystemRole(in.SystemRole) {
		return nil, fmt.Errorf("%w: unknown system role %q", ErrValidation, in.SystemRole)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existing int64
	err := e.db.Model(&models.Credential{}).
		Where("email = ? AND system_role = ?", email, in.SystemRole).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("check existing credential: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: an account for %s with role %s already exists", ErrValidation, email, in.SystemRole)
	}

	userID := newUserID(email, in.SystemRole)
	otp := newOTP()
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash otp: %w", err)
	}

	member := models.TeamMember{
		ID:       newMemberID(),
		UserID:   userID,
		Name:     in.Name,
		Email:    email,
		Role:     in.Role,
		IsDoer:   in.IsDoer,
		IsActive: true,
	}
	cred := models.Credential{
		ID:         userID,
		Email:      email,
		OTPHash:    string(hash),
		SystemRole: in.SystemRole,
		Name:       in.Name,
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return tx.Create(&cred).Error
	})
	if err != nil {
		return nil, fmt.Errorf("provision member: %w", err)
	}

	return &ProvisionedMember{Member: &member, UserID: userID, OTP: otp}, nil
}

// DeleteMember removes a roster entry unconditionally. Tasks referencing
// the member keep their assignee email; the read path resolves it to a
// fallback label. Credentials are not revoked.
func (e *Engine) DeleteMember(memberID string, actor Actor) error {
	if err := requireRole(actor, models.RoleSuperadmin); err != nil {
		return err
	}

	var member models.TeamMember
	if err := e.db.Where("id = ?", memberID).First(&member).Error; err != nil {
		return e.translateNotFound(err, "team member", memberID)
	}
	if err := e.db.Delete(&member).Error; err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

// Members returns the full roster in insertion order.
func (e *Engine) Members() ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := e.db.Order("created_at asc").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// MemberByEmail resolves a roster entry by email, or ErrNotFound.
func (e *Engine) MemberByEmail(email string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := e.db.Where("email = ?", strings.ToLower(email)).First(&member).Error; err != nil {
		return nil, e.translateNotFound(err, "team member", email)
	}
	return &member, nil
}
