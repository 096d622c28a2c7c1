package location

import (
	"fmt"
	"strings"

	"echo_campus/internal/crimecat"
	"echo_campus/internal/models"
)

// ReportInput is the client-side view of a report before submission.
type ReportInput struct {
	Title       string
	Description string
	CrimeType   string
	Severity    string
	Location    *models.Location
}

// ValidateReport checks a report before any network/store round-trip.
// Returns a single error naming everything that is missing or malformed.
func ValidateReport(in ReportInput) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if in.CrimeType == "" {
		missing = append(missing, "crime_type")
	}
	if in.Severity == "" {
		missing = append(missing, "severity")
	}
	if in.Location == nil {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if !crimecat.Valid(in.CrimeType) {
		return fmt.Errorf("invalid crime_type %q", in.CrimeType)
	}
	if !crimecat.ValidSeverity(in.Severity) {
		return fmt.Errorf("invalid severity %q", in.Severity)
	}
	return nil
}
