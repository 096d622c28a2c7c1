package sos

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ist is used for the human-readable timestamp in alert messages.
var ist = time.FixedZone("IST", 5*3600+30*60)

// BuildMessage formats the emergency text sent to contacts: sender identity,
// a human timestamp and a map link built from the captured coordinate.
func BuildMessage(name, rollNumber string, at time.Time, lat, lng float64) string {
	var b strings.Builder
	b.WriteString("🚨 EMERGENCY ALERT - ECHO 🚨\n\n")
	fmt.Fprintf(&b, "User: %s\n", name)
	fmt.Fprintf(&b, "SRM Roll: %s\n", rollNumber)
	fmt.Fprintf(&b, "Time: %s\n", at.In(ist).Format("02 Jan 2006, 3:04:05 PM IST"))
	fmt.Fprintf(&b, "Location: https://maps.google.com/maps?q=%f,%f\n\n", lat, lng)
	b.WriteString("Immediate assistance required at SRM KTR Campus!\n\n")
	b.WriteString("This is an automated emergency alert from Echo Safety System.")
	return b.String()
}

// WhatsAppLink builds a wa.me deep link carrying the message. An empty phone
// produces the generic (contact-less) form.
func WhatsAppLink(phone, message string) string {
	if phone == "" {
		return "https://wa.me/?text=" + url.QueryEscape(message)
	}
	return "https://wa.me/91" + digitsOnly(phone) + "?text=" + url.QueryEscape(message)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
