package models

import "gorm.io/gorm"

type SOSAlert struct {
	gorm.Model
	PublicID      string `json:"id" gorm:"uniqueIndex"`
	UserID        uint   `json:"-" gorm:"index"`
	EmergencyType string `json:"emergency_type" gorm:"default:general"` // "general", "medical", "security", "fire"
	Status        string `json:"status" gorm:"default:active"`          // "active", "resolved"

	Location Location `json:"location" gorm:"embedded;embeddedPrefix:loc_"`
}
