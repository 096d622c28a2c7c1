// Package geocode wraps the Mapbox geocoding API for forward and reverse
// lookups. Results are memoized so repeated lookups for the same place do
// not burn quota.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// ErrNoMatch is returned when a forward lookup yields zero features.
var ErrNoMatch = errors.New("geocode: no match for query")

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// Match is a resolved place.
type Match struct {
	Lat     float64
	Lng     float64
	Address string
}

// Client talks to the Mapbox places endpoint.
type Client struct {
	baseURL     string
	accessToken string
	// forward lookups are biased toward this point; first match wins
	proximityLat float64
	proximityLng float64

	httpClient *http.Client
	cache      *gocache.Cache
}

// NewClient builds a geocoding client biased toward the given reference
// point (the campus center).
func NewClient(accessToken string, proximityLat, proximityLng float64) *Client {
	return &Client{
		baseURL:      defaultBaseURL,
		accessToken:  accessToken,
		proximityLat: proximityLat,
		proximityLng: proximityLng,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		cache:        gocache.New(15*time.Minute, 30*time.Minute),
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(base string) { c.baseURL = base }

type featureCollection struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"` // [lng, lat]
	} `json:"features"`
}

// Forward resolves a free-text address to a coordinate, preferring places
// near the proximity point. Returns ErrNoMatch when nothing is found.
func (c *Client) Forward(ctx context.Context, query string) (*Match, error) {
	key := "fwd:" + query
	if hit, ok := c.cache.Get(key); ok {
		return hit.(*Match), nil
	}

	u := fmt.Sprintf("%s/%s.json?access_token=%s&proximity=%f,%f&types=address,poi",
		c.baseURL, url.PathEscape(query), url.QueryEscape(c.accessToken), c.proximityLng, c.proximityLat)

	fc, err := c.fetch(ctx, u)
	if err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, ErrNoMatch
	}

	// first match wins
	f := fc.Features[0]
	if len(f.Center) < 2 {
		return nil, fmt.Errorf("geocode: malformed feature center for %q", query)
	}
	m := &Match{Lat: f.Center[1], Lng: f.Center[0], Address: f.PlaceName}
	c.cache.Set(key, m, gocache.DefaultExpiration)
	return m, nil
}

// Reverse resolves a coordinate to a human-readable address.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	key := fmt.Sprintf("rev:%.5f,%.5f", lat, lng)
	if hit, ok := c.cache.Get(key); ok {
		return hit.(string), nil
	}

	u := fmt.Sprintf("%s/%f,%f.json?access_token=%s&types=address,poi",
		c.baseURL, lng, lat, url.QueryEscape(c.accessToken))

	fc, err := c.fetch(ctx, u)
	if err != nil {
		return "", err
	}
	if len(fc.Features) == 0 {
		return "", ErrNoMatch
	}

	addr := fc.Features[0].PlaceName
	c.cache.Set(key, addr, gocache.DefaultExpiration)
	return addr, nil
}

func (c *Client) fetch(ctx context.Context, u string) (*featureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("geocode: non-200 from Mapbox")
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("geocode: decode response: %w", err)
	}
	return &fc, nil
}
