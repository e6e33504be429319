package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffdesk.com/staffdesk/security"
)

const resetTokenTTL = time.Hour

// CreatePasswordReset issues a one-shot reset token for a known credential.
// Unknown emails return an empty token without error so the endpoint cannot
// be used to enumerate accounts.
func CreatePasswordReset(db *gorm.DB, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var credential Credential
	err := db.Where("email = ?", email).First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up credential: %w", err)
	}

	reset := PasswordReset{
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := db.Create(&reset).Error; err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return reset.Token, nil
}

// ResetPassword consumes a reset token and replaces the credential's
// password hash. Used or expired tokens fail with ErrResetExpired, unknown
// ones with ErrNotFound.
func ResetPassword(db *gorm.DB, token, newPassword string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var reset PasswordReset
		err := tx.Where("token = ?", token).First(&reset).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load reset token: %w", err)
		}

		if reset.UsedAt != nil || time.Now().After(reset.ExpiresAt) {
			return ErrResetExpired
		}

		hash, err := security.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		result := tx.Model(&Credential{}).
			Where("email = ?", reset.Email).
			Update("password", hash)
		if result.Error != nil {
			return fmt.Errorf("failed to update credential: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		now := time.Now()
		return tx.Model(&reset).Update("used_at", &now).Error
	})
}
