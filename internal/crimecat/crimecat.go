// Package crimecat is the single source of truth for crime category and
// severity attributes. Views must not re-derive these mappings.
package crimecat

// Categories recognised by the reporting flow.
const (
	Theft       = "theft"
	WomenSafety = "women_safety"
	Drugs       = "drugs"
)

// Severity levels for a report.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// All lists every valid category in display order.
func All() []string {
	return []string{Theft, WomenSafety, Drugs}
}

// Valid reports whether cat is a known category.
func Valid(cat string) bool {
	switch cat {
	case Theft, WomenSafety, Drugs:
		return true
	}
	return false
}

// ValidSeverity reports whether sev is a known severity.
func ValidSeverity(sev string) bool {
	switch sev {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Color returns the marker color for a category.
func Color(cat string) string {
	switch cat {
	case Theft:
		return "#dc2626" // red
	case WomenSafety:
		return "#ec4899" // pink
	case Drugs:
		return "#3b82f6" // blue
	default:
		return "#6b7280" // gray
	}
}

// Icon returns the marker glyph for a category.
func Icon(cat string) string {
	switch cat {
	case Theft:
		return "🔒"
	case WomenSafety:
		return "👩"
	case Drugs:
		return "💊"
	default:
		return "⚠️"
	}
}

// Label returns the human-readable name of a category.
func Label(cat string) string {
	switch cat {
	case Theft:
		return "Theft"
	case WomenSafety:
		return "Women Safety"
	case Drugs:
		return "Drug Related"
	default:
		return "Other"
	}
}

// Weight maps a severity to its heat-map weight. Unknown severities weigh
// the same as low so a malformed record never drops off the heat layer.
func Weight(sev string) int {
	switch sev {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}
