package predictor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const newsBaseURL = "https://newsapi.org/v2"

// Article is one crime-relevant news item with a derived severity score.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	SourceName  string    `json:"source_name"`
	PublishedAt time.Time `json:"published_at"`
	CrimeScore  float64   `json:"crime_score"`
}

// NewsClient fetches crime-related articles from NewsAPI.
type NewsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewNewsClient(apiKey string) *NewsClient {
	return &NewsClient{
		apiKey:     apiKey,
		baseURL:    newsBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *NewsClient) SetBaseURL(base string) { c.baseURL = base }

type newsResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// FetchCrimeNews pulls recent crime coverage near the campus, scores each
// article and returns them sorted by score, highest first.
func (c *NewsClient) FetchCrimeNews(ctx context.Context, pageSize int) ([]Article, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	q := url.Values{}
	q.Set("q", `crime OR theft OR robbery OR assault OR "drug bust" Chennai`)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", fmt.Sprint(pageSize))
	q.Set("from", time.Now().AddDate(0, 0, -7).Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news: unexpected status %d", resp.StatusCode)
	}

	var nr newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("news: decode response: %w", err)
	}

	articles := make([]Article, 0, len(nr.Articles))
	for _, a := range nr.Articles {
		if a.Title == "" {
			continue
		}
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			SourceName:  a.Source.Name,
			PublishedAt: a.PublishedAt,
			CrimeScore:  ScoreArticle(a.Title, a.Description),
		})
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].CrimeScore > articles[j].CrimeScore })
	return articles, nil
}

// crimeKeywords maps signal words to severity contributions on a 0-10 scale.
var crimeKeywords = map[string]float64{
	"murder": 4, "homicide": 4, "shooting": 4, "stabbing": 4,
	"assault": 3, "attack": 3, "robbery": 3, "kidnap": 3, "harassment": 3,
	"theft": 2, "burglary": 2, "stolen": 2, "snatching": 2,
	"drug": 2, "narcotics": 2, "overdose": 2,
	"arrest": 1, "police": 1, "crime": 1,
}

// ScoreArticle derives a 0-10 crime severity score from keyword hits.
func ScoreArticle(title, description string) float64 {
	text := strings.ToLower(title + " " + description)
	score := 0.0
	for word, weight := range crimeKeywords {
		if strings.Contains(text, word) {
			score += weight
		}
	}
	if score > 10 {
		score = 10
	}
	return score
}

// Categorize classifies an article title into a coarse crime type.
func Categorize(title string) string {
	t := strings.ToLower(title)
	switch {
	case containsAny(t, "murder", "killing", "homicide", "shooting", "stabbing"):
		return "violent"
	case containsAny(t, "theft", "robbery", "burglary", "stolen", "snatching"):
		return "property"
	case containsAny(t, "drug", "narcotics", "substance", "overdose"):
		return "drug"
	case containsAny(t, "assault", "attack", "harassment"):
		return "assault"
	default:
		return "general"
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
