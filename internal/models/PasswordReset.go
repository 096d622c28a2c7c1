package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset is a single-use token for the forgot-password flow.
type PasswordReset struct {
	gorm.Model
	UserID    uint   `gorm:"index"`
	Token     string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// Usable reports whether the token can still redeem a password change.
func (p *PasswordReset) Usable(now time.Time) bool {
	return p.UsedAt == nil && now.Before(p.ExpiresAt)
}
