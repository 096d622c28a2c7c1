// Package location implements the report form's location resolution: device
// geolocation, address search, or the fixed campus fallback. Exactly one
// method produces the location; the last successful resolution wins.
package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"echo_campus/internal/geocode"
	"echo_campus/internal/mapview"
	"echo_campus/internal/models"
)

// CampusAddress labels the fixed fallback point.
const CampusAddress = "SRM KTR Campus (Selected on Map)"

// ErrNotFound is returned by UseSearch when the geocoder has no match; any
// previously resolved location is preserved.
var ErrNotFound = errors.New("location: address not found")

// Geocoder is the subset of the geocoding client the resolver needs.
type Geocoder interface {
	Forward(ctx context.Context, query string) (*geocode.Match, error)
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

// Resolver tracks the report form's resolved location.
type Resolver struct {
	geo Geocoder
	loc *models.Location
}

func NewResolver(geo Geocoder) *Resolver {
	return &Resolver{geo: geo}
}

// Location returns the currently resolved location, or nil when unset.
func (r *Resolver) Location() *models.Location { return r.loc }

// UseDevice resolves from device coordinates, reverse-geocoding for an
// address. Geocoder failure falls back to a coordinate string; the location
// is still considered resolved.
func (r *Resolver) UseDevice(ctx context.Context, lat, lng float64) *models.Location {
	address, err := r.geo.Reverse(ctx, lat, lng)
	if err != nil {
		logrus.WithError(err).Debug("location: reverse geocode failed, using coordinate string")
		address = fmt.Sprintf("%.4f, %.4f", lat, lng)
	}
	r.loc = &models.Location{Lat: lat, Lng: lng, Address: address, Source: "current"}
	return r.loc
}

// UseSearch forward-geocodes a free-text address, biased toward the campus
// reference point; the geocoder's first match wins. A zero-result search
// returns ErrNotFound and leaves any earlier resolution in place.
func (r *Resolver) UseSearch(ctx context.Context, query string) (*models.Location, error) {
	if query == "" {
		return nil, ErrNotFound
	}
	m, err := r.geo.Forward(ctx, query)
	if err != nil {
		if errors.Is(err, geocode.ErrNoMatch) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.loc = &models.Location{Lat: m.Lat, Lng: m.Lng, Address: m.Address, Source: "search"}
	return r.loc, nil
}

// UseFallback sets the fixed campus point, for when map-pick interaction is
// unavailable.
func (r *Resolver) UseFallback() *models.Location {
	r.loc = &models.Location{
		Lat:     mapview.CampusLat,
		Lng:     mapview.CampusLng,
		Address: CampusAddress,
		Source:  "map",
	}
	return r.loc
}
