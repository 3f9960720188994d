package testutil

import (
	"task-approval-api/internal/database"
	"task-approval-api/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// SeedMember inserts a roster entry for tests.
func SeedMember(db *gorm.DB, id, name, email string) (*models.TeamMember, error) {
	member := models.TeamMember{
		ID:       id,
		UserID:   "STF-TEST-" + id,
		Name:     name,
		Email:    email,
		Role:     "Graphic Designer",
		IsDoer:   true,
		IsActive: true,
	}
	if err := db.Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// SeedCredential inserts a login record with a bcrypt-hashed OTP.
func SeedCredential(db *gorm.DB, userID, name, email, otp string, role models.SystemRole) (*models.Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	cred := models.Credential{
		ID:         userID,
		Email:      email,
		OTPHash:    string(hash),
		SystemRole: role,
		Name:       name,
	}
	if err := db.Create(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}
