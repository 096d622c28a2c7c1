// Package predictor generates forward-looking campus risk statements from
// recent crime news, using an LLM when configured and deterministic
// fallbacks otherwise. The current set is cached and served without auth.
package predictor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"echo_campus/internal/models"
)

const maxPredictions = 3

// TrendAnalysis summarizes the direction of recent crime coverage.
type TrendAnalysis struct {
	TrendType          string                 `json:"trend_type"` // "increasing", "decreasing", "stable"
	CrimeCategories    []string               `json:"crime_categories"`
	TimePeriod         string                 `json:"time_period"`
	KeyInsights        []string               `json:"key_insights"`
	StatisticalSummary map[string]interface{} `json:"statistical_summary"`
}

// NewsSource supplies scored crime articles.
type NewsSource interface {
	FetchCrimeNews(ctx context.Context, pageSize int) ([]Article, error)
}

// Predictor owns the current prediction set. Refresh replaces it wholesale;
// readers always see a complete set.
type Predictor struct {
	news NewsSource
	llm  LLM // nil disables LLM generation, fallbacks still apply

	mu          sync.RWMutex
	predictions []models.Prediction
	trend       TrendAnalysis
	tips        []string
	refreshedAt time.Time

	now func() time.Time
}

func New(news NewsSource, llm LLM) *Predictor {
	return &Predictor{news: news, llm: llm, now: time.Now}
}

// Current returns the active prediction set with trend and safety tips.
// Before the first successful refresh it serves a deterministic default set
// so the predictions panel is never empty.
func (p *Predictor) Current() ([]models.Prediction, TrendAnalysis, []string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.predictions) == 0 {
		preds := defaultPredictions(p.now())
		return preds, defaultTrend(), SafetyTips(preds)
	}
	return p.predictions, p.trend, p.tips
}

// Refresh rebuilds predictions from fresh news. Every stage degrades rather
// than fails: no news means default predictions, LLM trouble means the
// keyword fallback.
func (p *Predictor) Refresh(ctx context.Context) {
	var articles []Article
	if p.news != nil {
		var err error
		articles, err = p.news.FetchCrimeNews(ctx, 20)
		if err != nil {
			logrus.WithError(err).Warn("predictor: news fetch failed, continuing without articles")
		}
	}

	trend := p.analyzeTrend(ctx, articles)
	predictions := p.generate(ctx, articles, trend)
	tips := SafetyTips(predictions)

	p.mu.Lock()
	p.predictions = predictions
	p.trend = trend
	p.tips = tips
	p.refreshedAt = p.now()
	p.mu.Unlock()

	logrus.WithField("count", len(predictions)).Info("predictor: prediction set refreshed")
}

func (p *Predictor) analyzeTrend(ctx context.Context, articles []Article) TrendAnalysis {
	summary := statisticalSummary(articles)
	categories := articleCategories(articles)

	if len(articles) == 0 {
		return TrendAnalysis{
			TrendType:          "stable",
			CrimeCategories:    []string{},
			TimePeriod:         "past_week",
			KeyInsights:        []string{"No significant crime data available for analysis"},
			StatisticalSummary: summary,
		}
	}

	if p.llm != nil {
		prompt := trendPrompt(articles, summary)
		raw, err := p.llm.Complete(ctx, trendSystemMessage, prompt)
		if err == nil {
			var parsed struct {
				TrendType       string   `json:"trend_type"`
				CrimeCategories []string `json:"crime_categories"`
				TimePeriod      string   `json:"time_period"`
				KeyInsights     []string `json:"key_insights"`
			}
			if jsonErr := json.Unmarshal([]byte(stripFences(raw)), &parsed); jsonErr == nil {
				if len(parsed.CrimeCategories) == 0 {
					parsed.CrimeCategories = categories
				}
				return TrendAnalysis{
					TrendType:          orDefault(parsed.TrendType, "stable"),
					CrimeCategories:    parsed.CrimeCategories,
					TimePeriod:         orDefault(parsed.TimePeriod, "past_week"),
					KeyInsights:        parsed.KeyInsights,
					StatisticalSummary: summary,
				}
			}
			logrus.Warn("predictor: unparseable trend response, using keyword analysis")
		} else {
			logrus.WithError(err).Warn("predictor: trend analysis failed, using keyword analysis")
		}
	}

	return TrendAnalysis{
		TrendType:          "stable",
		CrimeCategories:    categories,
		TimePeriod:         "past_week",
		KeyInsights:        []string{"Analysis based on keyword scoring of recent coverage"},
		StatisticalSummary: summary,
	}
}

func (p *Predictor) generate(ctx context.Context, articles []Article, trend TrendAnalysis) []models.Prediction {
	if len(articles) == 0 {
		return defaultPredictions(p.now())
	}

	if p.llm != nil {
		raw, err := p.llm.Complete(ctx, predictionSystemMessage, predictionPrompt(articles, trend))
		if err == nil {
			if preds, parseErr := p.parsePredictions(raw, articles); parseErr == nil {
				return preds
			}
			logrus.Warn("predictor: unparseable prediction response, using fallback set")
		} else {
			logrus.WithError(err).Warn("predictor: prediction generation failed, using fallback set")
		}
	}
	return FallbackPredictions(articles, p.now())
}

func (p *Predictor) parsePredictions(raw string, articles []Article) ([]models.Prediction, error) {
	var parsed []struct {
		PredictionText     string   `json:"prediction_text"`
		ConfidenceLevel    string   `json:"confidence_level"`
		CrimeType          string   `json:"crime_type"`
		LocationArea       string   `json:"location_area"`
		RiskFactors        []string `json:"risk_factors"`
		PreventiveMeasures []string `json:"preventive_measures"`
		ValidityDays       int      `json:"validity_days"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("predictor: empty prediction array")
	}

	sources := articleSources(articles, 5)
	now := p.now()
	out := make([]models.Prediction, 0, maxPredictions)
	for _, pr := range parsed {
		days := pr.ValidityDays
		if days <= 0 {
			days = 7
		}
		out = append(out, models.Prediction{
			PublicID:           uuid.NewString(),
			PredictionText:     orDefault(pr.PredictionText, "Crime prediction generated"),
			ConfidenceLevel:    orDefault(pr.ConfidenceLevel, "medium"),
			CrimeType:          orDefault(pr.CrimeType, "general"),
			LocationArea:       orDefault(pr.LocationArea, "Campus Area"),
			RiskFactors:        pr.RiskFactors,
			PreventiveMeasures: pr.PreventiveMeasures,
			DataSources:        sources,
			ValidUntil:         now.AddDate(0, 0, days),
		})
		if len(out) == maxPredictions {
			break
		}
	}
	return out, nil
}

// FallbackPredictions builds a deterministic prediction set from article
// keyword counts, for when the LLM is unavailable or misbehaves.
func FallbackPredictions(articles []Article, now time.Time) []models.Prediction {
	counts := map[string]int{}
	for _, a := range articles {
		counts[Categorize(a.Title)]++
	}
	mostCommon := "property"
	best := 0
	for cat, n := range counts {
		if cat != "general" && n > best {
			mostCommon, best = cat, n
		}
	}

	confidence := "low"
	if len(articles) > 5 {
		confidence = "medium"
	}
	sources := articleSources(articles, 3)

	return []models.Prediction{
		{
			PublicID:           uuid.NewString(),
			PredictionText:     fmt.Sprintf("Increased %s crime risk in campus areas based on recent trends", mostCommon),
			ConfidenceLevel:    confidence,
			CrimeType:          mostCommon,
			LocationArea:       "Campus Parking Areas",
			RiskFactors:        []string{"Recent increase in reported incidents", "Limited security coverage", "High foot traffic"},
			PreventiveMeasures: []string{"Increase security patrols", "Improve lighting", "Install security cameras"},
			DataSources:        sources,
			ValidUntil:         now.AddDate(0, 0, 7),
		},
		{
			PublicID:           uuid.NewString(),
			PredictionText:     "General safety concerns around academic buildings during evening hours",
			ConfidenceLevel:    "medium",
			CrimeType:          "general",
			LocationArea:       "Academic Buildings",
			RiskFactors:        []string{"Evening hours", "Reduced visibility", "Fewer people around"},
			PreventiveMeasures: []string{"Travel in groups", "Use campus escort service", "Stay in well-lit areas"},
			DataSources:        sources,
			ValidUntil:         now.AddDate(0, 0, 5),
		},
		{
			PublicID:           uuid.NewString(),
			PredictionText:     "Recommended increased vigilance in dormitory areas",
			ConfidenceLevel:    "low",
			CrimeType:          "property",
			RiskFactors:        []string{"High-value items", "Multiple entry points", "Varying security awareness"},
			PreventiveMeasures: []string{"Lock doors and windows", "Secure valuables", "Report suspicious activity"},
			LocationArea:       "Dormitory Complex",
			DataSources:        sources,
			ValidUntil:         now.AddDate(0, 0, 7),
		},
	}
}

// SafetyTips derives general tips from the preventive measures across the
// current predictions, topped up with evergreen advice.
func SafetyTips(predictions []models.Prediction) []string {
	general := []string{
		"Stay alert and trust your instincts",
		"Keep emergency contacts readily available",
		"Use campus safety apps and emergency call boxes",
		"Inform someone of your whereabouts when going out",
		"Avoid displaying expensive items in public",
	}
	if len(predictions) == 0 {
		return general
	}

	seen := map[string]bool{}
	tips := []string{}
	for _, pred := range predictions {
		for _, m := range pred.PreventiveMeasures {
			if !seen[m] {
				seen[m] = true
				tips = append(tips, m)
			}
		}
	}
	tips = append(tips, general...)
	if len(tips) > 8 {
		tips = tips[:8]
	}
	return tips
}

func defaultPredictions(now time.Time) []models.Prediction {
	return []models.Prediction{
		{
			PublicID:        uuid.NewString(),
			PredictionText:  "High theft risk near Main Library this weekend",
			ConfidenceLevel: "high",
			CrimeType:       "theft",
			LocationArea:    "Academic Block A",
			ValidUntil:      now.AddDate(0, 0, 7),
		},
		{
			PublicID:        uuid.NewString(),
			PredictionText:  "Increased women safety concerns near Hostel Road after 8 PM",
			ConfidenceLevel: "medium",
			CrimeType:       "women_safety",
			LocationArea:    "Hostel Complex",
			ValidUntil:      now.AddDate(0, 0, 5),
		},
		{
			PublicID:        uuid.NewString(),
			PredictionText:  "Drug activity detected near Sports Complex",
			ConfidenceLevel: "medium",
			CrimeType:       "drugs",
			LocationArea:    "Sports Complex",
			ValidUntil:      now.AddDate(0, 0, 3),
		},
	}
}

func defaultTrend() TrendAnalysis {
	return TrendAnalysis{
		TrendType:          "stable",
		CrimeCategories:    []string{},
		TimePeriod:         "past_week",
		KeyInsights:        []string{"No significant crime data available for analysis"},
		StatisticalSummary: map[string]interface{}{"total_articles": 0, "average_crime_score": 0.0},
	}
}

func statisticalSummary(articles []Article) map[string]interface{} {
	summary := map[string]interface{}{"total_articles": len(articles)}
	if len(articles) == 0 {
		summary["average_crime_score"] = 0.0
		return summary
	}
	total := 0.0
	sources := map[string]bool{}
	for _, a := range articles {
		total += a.CrimeScore
		sources[a.SourceName] = true
	}
	summary["average_crime_score"] = total / float64(len(articles))
	summary["unique_sources"] = len(sources)
	return summary
}

func articleCategories(articles []Article) []string {
	seen := map[string]bool{}
	cats := []string{}
	for _, a := range articles {
		c := Categorize(a.Title)
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	return cats
}

func articleSources(articles []Article, max int) []string {
	sources := []string{}
	seen := map[string]bool{}
	for _, a := range articles {
		if a.SourceName == "" || seen[a.SourceName] {
			continue
		}
		seen[a.SourceName] = true
		sources = append(sources, a.SourceName)
		if len(sources) == max {
			break
		}
	}
	return sources
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

const trendSystemMessage = "You are an expert crime analyst specializing in campus safety and crime trend analysis. Provide accurate, data-driven insights based on news articles."

const predictionSystemMessage = "You are a campus safety expert who generates accurate, actionable crime predictions based on data analysis. Focus on practical campus safety measures."

func trendPrompt(articles []Article, summary map[string]interface{}) string {
	lines := make([]string, 0, len(articles))
	for i, a := range articles {
		if i == 20 {
			break
		}
		lines = append(lines, fmt.Sprintf("- %.100s (score %.1f, %s)", a.Title, a.CrimeScore, a.SourceName))
	}
	return fmt.Sprintf(`Analyze the following crime-related news articles for campus safety.

ARTICLES:
%s

TOTALS: %d articles, average severity %.2f/10.

Respond with ONLY a JSON object:
{"trend_type":"increasing|decreasing|stable","crime_categories":["..."],"time_period":"past_week","key_insights":["..."]}`,
		strings.Join(lines, "\n"), summary["total_articles"], summary["average_crime_score"])
}

func predictionPrompt(articles []Article, trend TrendAnalysis) string {
	lines := make([]string, 0, 10)
	for i, a := range articles {
		if i == 10 {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s (score %.1f, %s)", a.Title, a.CrimeScore, a.PublishedAt.Format("2006-01-02")))
	}
	return fmt.Sprintf(`Based on this trend analysis and recent incidents, generate exactly 3 campus safety predictions.

TREND: %s; categories: %s; insights: %s.

RECENT INCIDENTS:
%s

Focus on areas like "Academic Buildings", "Dormitories", "Campus Parking", "Library Area".
Respond with ONLY a JSON array:
[{"prediction_text":"...","confidence_level":"high|medium|low","crime_type":"violent|property|drug|assault|general","location_area":"...","risk_factors":["..."],"preventive_measures":["..."],"validity_days":7}]`,
		trend.TrendType, strings.Join(trend.CrimeCategories, ", "), strings.Join(trend.KeyInsights, "; "), strings.Join(lines, "\n"))
}
