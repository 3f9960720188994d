package workflow

import (
	"strings"

	"task-approval-api/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// FindCredential looks up a login record by (email, systemRole), the
// pair checked when an OTP is requested. Returns ErrNotFound when no
// account matches.
func (e *Engine) FindCredential(email string, role models.SystemRole) (*models.Credential, error) {
	var cred models.Credential
	err := e.db.Where("email = ? AND system_role = ?", strings.ToLower(email), role).First(&cred).Error
	if err != nil {
		return nil, e.translateNotFound(err, "credential", email)
	}
	return &cred, nil
}

// VerifyOTP checks a plaintext OTP against the stored hash.
func (e *Engine) VerifyOTP(cred *models.Credential, otp string) bool {
	return bcrypt.CompareHashAndPassword([]byte(cred.OTPHash), []byte(otp)) == nil
}

// SeedSuperadmin creates the default superadmin credential if no
// superadmin account exists yet. Returns the generated OTP (empty when
// nothing was created) so the caller can surface it once at startup.
func (e *Engine) SeedSuperadmin(name, email string) (string, error) {
	var count int64
	err := e.db.Model(&models.Credential{}).
		Where("system_role = ?", models.RoleSuperadmin).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", nil
	}

	otp := newOTP()
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	cred := models.Credential{
		ID:         newUserID(email, models.RoleSuperadmin),
		Email:      strings.ToLower(email),
		OTPHash:    string(hash),
		SystemRole: models.RoleSuperadmin,
		Name:       name,
	}
	if err := e.db.Create(&cred).Error; err != nil {
		return "", err
	}
	return otp, nil
}
