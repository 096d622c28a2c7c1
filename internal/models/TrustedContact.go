package models

import "gorm.io/gorm"

// TrustedContact is a user-nominated phone contact for SOS alerts.
// Position keeps the slot order stable (1 or 2).
type TrustedContact struct {
	gorm.Model
	UserID   uint   `json:"-" gorm:"index"`
	Name     string `json:"name"`
	Phone    string `json:"phone"` // 10-digit Indian mobile, validated on write
	Position int    `json:"position"`
}
