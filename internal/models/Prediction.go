package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Prediction is a forward-looking risk statement generated by the AI
// predictor. Read-only for API consumers.
type Prediction struct {
	gorm.Model
	PublicID           string         `json:"id" gorm:"uniqueIndex"`
	PredictionText     string         `json:"prediction_text"`
	ConfidenceLevel    string         `json:"confidence_level"` // "low", "medium", "high"
	CrimeType          string         `json:"crime_type"`
	LocationArea       string         `json:"location_area"`
	RiskFactors        pq.StringArray `json:"risk_factors" gorm:"type:text[]"`
	PreventiveMeasures pq.StringArray `json:"preventive_measures" gorm:"type:text[]"`
	DataSources        pq.StringArray `json:"data_sources" gorm:"type:text[]"`
	ValidUntil         time.Time      `json:"valid_until"`
}
