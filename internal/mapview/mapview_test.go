package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echo_campus/internal/models"
)

func incident(id, crimeType, severity string, lat, lng float64) models.CrimeReport {
	return models.CrimeReport{
		PublicID:  id,
		Title:     "t-" + id,
		CrimeType: crimeType,
		Severity:  severity,
		Location:  models.Location{Lat: lat, Lng: lng},
	}
}

func campusIncidents() []models.CrimeReport {
	return []models.CrimeReport{
		incident("a", "theft", "high", 12.8236, 80.0452), // campus center
		incident("b", "women_safety", "medium", 12.8300, 80.0500),
		incident("c", "drugs", "low", 12.8600, 80.0800),
		incident("d", "theft", "low", 13.0000, 80.2000), // far outside default viewport
	}
}

func TestBoundsContainsInclusive(t *testing.T) {
	b := Bounds{South: 12.0, North: 13.0, West: 80.0, East: 81.0}

	assert.True(t, b.Contains(12.5, 80.5))
	// edges are inclusive
	assert.True(t, b.Contains(12.0, 80.0))
	assert.True(t, b.Contains(13.0, 81.0))
	assert.True(t, b.Contains(12.0, 81.0))
	// just outside
	assert.False(t, b.Contains(13.0001, 80.5))
	assert.False(t, b.Contains(12.5, 79.9999))
}

func TestVisibleEqualsBoundsIntersectFilter(t *testing.T) {
	c := NewComposer()
	c.SetIncidents(campusIncidents())

	visible := c.Visible()
	require.Len(t, visible, 3) // "d" lies outside the default viewport

	// exact set check against the definition
	want := map[string]bool{}
	for _, in := range campusIncidents() {
		if c.Viewport().Contains(in.Location.Lat, in.Location.Lng) {
			want[in.PublicID] = true
		}
	}
	got := map[string]bool{}
	for _, in := range visible {
		got[in.PublicID] = true
	}
	assert.Equal(t, want, got)

	c.SetFilter("theft")
	visible = c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].PublicID)
}

func TestCountsPartitionTotal(t *testing.T) {
	c := NewComposer()
	c.SetIncidents(campusIncidents())

	counts := c.Counts()
	assert.Equal(t, 4, counts["total"])
	assert.Equal(t, counts["total"], counts["theft"]+counts["women_safety"]+counts["drugs"])
}

func TestByCategoryIgnoresViewport(t *testing.T) {
	c := NewComposer()
	c.SetIncidents(campusIncidents())
	c.SetFilter("theft")

	// "d" is a theft outside the viewport: counted by category, not visible
	assert.Len(t, c.ByCategory(), 2)
	assert.Len(t, c.Visible(), 1)
}

func TestUnknownFilterFallsBackToAll(t *testing.T) {
	c := NewComposer()
	c.SetIncidents(campusIncidents())
	c.SetFilter("arson")
	assert.Equal(t, FilterAll, c.Filter())
	assert.Len(t, c.ByCategory(), 4)
}

func TestSelectionClearedWhenNotVisible(t *testing.T) {
	c := NewComposer()
	c.SetIncidents(campusIncidents())

	c.Select("b")
	require.NotNil(t, c.Selected())

	// filtering away the selected incident clears the selection
	c.SetFilter("theft")
	assert.Nil(t, c.Selected())

	// selection also dies with a viewport move
	c.SetFilter(FilterAll)
	c.Select("a")
	require.NotNil(t, c.Selected())
	c.SetViewport(Bounds{South: 13.0, North: 14.0, West: 80.0, East: 81.0})
	assert.Nil(t, c.Selected())
}

func TestHeatLayerWeights(t *testing.T) {
	c := NewComposer()
	c.SetIncidents(campusIncidents())

	fc := c.HeatLayer()
	require.Len(t, fc.Features, 3)

	weights := map[string]int{}
	for _, f := range fc.Features {
		weights[f.ID] = f.Properties["weight"].(int)
	}
	assert.Equal(t, 3, weights["a"]) // high
	assert.Equal(t, 2, weights["b"]) // medium
	assert.Equal(t, 1, weights["c"]) // low
}

func TestHeatLayerTracksFilterChanges(t *testing.T) {
	c := NewComposer()
	c.SetIncidents(campusIncidents())
	c.SetFilter("drugs")

	fc := c.HeatLayer()
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "drugs", fc.Features[0].Properties["type"])
}

func TestMarkersCarryCategoryAttributes(t *testing.T) {
	c := NewComposer()
	c.SetIncidents(campusIncidents())

	for _, m := range c.Markers() {
		assert.NotEmpty(t, m.Color)
		assert.NotEmpty(t, m.Icon)
	}
}
