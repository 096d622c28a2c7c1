package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echo_campus/internal/geocode"
	"echo_campus/internal/models"
)

type fakeGeocoder struct {
	forward    map[string]*geocode.Match
	reverseOut string
	reverseErr error
}

func (f *fakeGeocoder) Forward(_ context.Context, query string) (*geocode.Match, error) {
	if m, ok := f.forward[query]; ok {
		return m, nil
	}
	return nil, geocode.ErrNoMatch
}

func (f *fakeGeocoder) Reverse(_ context.Context, _, _ float64) (string, error) {
	return f.reverseOut, f.reverseErr
}

func TestUseDeviceWithAddress(t *testing.T) {
	r := NewResolver(&fakeGeocoder{reverseOut: "Main Library, SRM KTR"})

	loc := r.UseDevice(context.Background(), 12.8240, 80.0460)
	require.NotNil(t, loc)
	assert.Equal(t, "Main Library, SRM KTR", loc.Address)
	assert.Equal(t, "current", loc.Source)
}

func TestUseDeviceFallsBackToCoordinateString(t *testing.T) {
	r := NewResolver(&fakeGeocoder{reverseErr: errors.New("geocoder down")})

	loc := r.UseDevice(context.Background(), 12.8236, 80.0452)
	require.NotNil(t, loc)
	assert.Equal(t, "12.8236, 80.0452", loc.Address)
	assert.Equal(t, "current", loc.Source)
}

func TestUseSearchFirstMatchWins(t *testing.T) {
	r := NewResolver(&fakeGeocoder{forward: map[string]*geocode.Match{
		"hostel road": {Lat: 12.8211, Lng: 80.0411, Address: "Hostel Road, Potheri"},
	}})

	loc, err := r.UseSearch(context.Background(), "hostel road")
	require.NoError(t, err)
	assert.Equal(t, "search", loc.Source)
	assert.Equal(t, 12.8211, loc.Lat)
}

func TestUseSearchNoMatchPreservesPrevious(t *testing.T) {
	r := NewResolver(&fakeGeocoder{reverseOut: "Somewhere"})

	prev := r.UseDevice(context.Background(), 12.8, 80.0)
	_, err := r.UseSearch(context.Background(), "nonexistent place xyz")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, prev, r.Location())
}

func TestUseSearchNoMatchWithNoPrevious(t *testing.T) {
	r := NewResolver(&fakeGeocoder{})
	_, err := r.UseSearch(context.Background(), "nowhere")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, r.Location())
}

func TestLastResolutionWins(t *testing.T) {
	r := NewResolver(&fakeGeocoder{
		reverseOut: "Device Spot",
		forward:    map[string]*geocode.Match{"gate 1": {Lat: 12.82, Lng: 80.04, Address: "Gate 1"}},
	})

	r.UseDevice(context.Background(), 12.83, 80.05)
	_, err := r.UseSearch(context.Background(), "gate 1")
	require.NoError(t, err)
	assert.Equal(t, "search", r.Location().Source)

	r.UseFallback()
	assert.Equal(t, "map", r.Location().Source)
	assert.Equal(t, CampusAddress, r.Location().Address)
}

func TestValidateReport(t *testing.T) {
	loc := &models.Location{Lat: 12.82, Lng: 80.04}
	valid := ReportInput{
		Title:       "Bike stolen",
		Description: "Near the library cycle stand",
		CrimeType:   "theft",
		Severity:    "medium",
		Location:    loc,
	}
	assert.NoError(t, ValidateReport(valid))

	t.Run("each missing field rejects", func(t *testing.T) {
		cases := map[string]ReportInput{
			"title":       {Description: "d", CrimeType: "theft", Severity: "low", Location: loc},
			"description": {Title: "t", CrimeType: "theft", Severity: "low", Location: loc},
			"crime_type":  {Title: "t", Description: "d", Severity: "low", Location: loc},
			"severity":    {Title: "t", Description: "d", CrimeType: "theft", Location: loc},
			"location":    {Title: "t", Description: "d", CrimeType: "theft", Severity: "low"},
		}
		for field, in := range cases {
			err := ValidateReport(in)
			require.Error(t, err, field)
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("unknown enums reject", func(t *testing.T) {
		bad := valid
		bad.CrimeType = "vandalism"
		assert.Error(t, ValidateReport(bad))

		bad = valid
		bad.Severity = "extreme"
		assert.Error(t, ValidateReport(bad))
	})
}
