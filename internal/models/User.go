package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	PublicID   string `json:"id" gorm:"uniqueIndex"`
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex"`
	Password   string `json:"-"`
	Phone      string `json:"phone"`
	RollNumber string `json:"roll_number" gorm:"uniqueIndex"`

	// Up to two contacts that receive SOS messages over WhatsApp.
	TrustedContacts []TrustedContact `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"trusted_contacts,omitempty"`
}
