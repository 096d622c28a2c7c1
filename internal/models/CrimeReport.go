package models

import "gorm.io/gorm"

// CrimeReport is a single reported incident. Reports are immutable once
// filed; only status moves through pending -> investigating -> resolved.
type CrimeReport struct {
	gorm.Model
	PublicID    string `json:"id" gorm:"uniqueIndex"`
	UserID      uint   `json:"-" gorm:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CrimeType   string `json:"crime_type"` // "theft", "women_safety", "drugs"
	Severity    string `json:"severity"`   // "low", "medium", "high"
	Status      string `json:"status" gorm:"default:pending"`
	IsAnonymous bool   `json:"is_anonymous"`

	Location Location `json:"location" gorm:"embedded;embeddedPrefix:loc_"`
}
