package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"echo_campus/internal/config"
	"echo_campus/internal/models"
)

// Indian mobile numbers only: ten digits starting 6-9, after stripping
// spaces, dashes and a +91/0 prefix.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// MaxTrustedContacts is the hard cap on contacts per user. SOS messages go
// to every contact, so the list is kept deliberately short.
const MaxTrustedContacts = 2

func GetProfile(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := config.DB.Preload("TrustedContacts").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func GetTrustedContacts(c *gin.Context) {
	userID := currentUserID(c)

	var contacts []models.TrustedContact
	if err := config.DB.Where("user_id = ?", userID).Order("position").Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// UpdateTrustedContacts replaces the user's contact list with the submitted
// slots. Both slots optional; an empty body clears the list.
func UpdateTrustedContacts(c *gin.Context) {
	userID := currentUserID(c)

	var body struct {
		Contact1Name  string `json:"contact1_name"`
		Contact1Phone string `json:"contact1_phone"`
		Contact2Name  string `json:"contact2_name"`
		Contact2Phone string `json:"contact2_phone"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contacts, err := contactsFromSlots(body.Contact1Name, body.Contact1Phone, body.Contact2Name, body.Contact2Phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.TrustedContact{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear contacts"})
		return
	}
	for i := range contacts {
		contacts[i].UserID = userID
		if err := tx.Create(&contacts[i]).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save contacts"})
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// contactsFromSlots validates the two fixed contact slots from the signup
// and profile forms. A slot counts only when both name and phone are set.
func contactsFromSlots(name1, phone1, name2, phone2 string) ([]models.TrustedContact, error) {
	var contacts []models.TrustedContact
	slots := []struct {
		name, phone string
	}{{name1, phone1}, {name2, phone2}}

	for i, slot := range slots {
		name := strings.TrimSpace(slot.name)
		phone := NormalizePhone(slot.phone)
		if name == "" && phone == "" {
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("contact %d: name is required", i+1)
		}
		if !phonePattern.MatchString(phone) {
			return nil, fmt.Errorf("contact %d: enter a valid 10-digit Indian mobile number", i+1)
		}
		contacts = append(contacts, models.TrustedContact{
			Name:     name,
			Phone:    phone,
			Position: i + 1,
		})
	}
	if len(contacts) > MaxTrustedContacts {
		return nil, errors.New("at most two trusted contacts are allowed")
	}
	return contacts, nil
}

// NormalizePhone strips formatting and a leading +91 or 0 from a phone
// number, leaving bare digits.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if len(digits) == 11 && strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}
	return digits
}

func currentUserID(c *gin.Context) uint {
	return uint(c.MustGet("user_id").(float64))
}
