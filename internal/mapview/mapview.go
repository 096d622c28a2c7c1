// Package mapview derives the map layers shown on the crime map: the
// category-filtered incident set, the viewport-visible subset, and the
// severity-weighted heat layer.
package mapview

import (
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"echo_campus/internal/crimecat"
	"echo_campus/internal/models"
)

// FilterAll disables category filtering.
const FilterAll = "all"

// Campus reference point and default viewport (5km box around campus).
var (
	CampusLat = 12.8236
	CampusLng = 80.0452

	DefaultViewport = Bounds{South: 12.7786, North: 12.8686, West: 80.0002, East: 80.0902}
)

// Bounds is the geographic rectangle currently visible on the map widget.
type Bounds struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// Contains reports whether the coordinate falls inside the box, edges
// inclusive.
func (b Bounds) Contains(lat, lng float64) bool {
	box := geom.NewBounds(geom.XY).Set(b.West, b.South, b.East, b.North)
	return box.OverlapsPoint(geom.XY, geom.Coord{lng, lat})
}

// Composer holds the mutable map view state: incidents, a category filter,
// a viewport and a selection. Views are recomputed, never mutated in place.
type Composer struct {
	incidents  []models.CrimeReport
	filter     string
	viewport   Bounds
	selectedID string
}

func NewComposer() *Composer {
	return &Composer{filter: FilterAll, viewport: DefaultViewport}
}

// SetIncidents replaces the underlying incident list.
func (c *Composer) SetIncidents(incidents []models.CrimeReport) {
	c.incidents = incidents
	c.reconcileSelection()
}

// SetFilter switches the category filter. Unknown categories fall back to
// showing everything.
func (c *Composer) SetFilter(cat string) {
	if cat != FilterAll && !crimecat.Valid(cat) {
		cat = FilterAll
	}
	c.filter = cat
	c.reconcileSelection()
}

func (c *Composer) Filter() string { return c.filter }

// SetViewport moves the visible bounding box.
func (c *Composer) SetViewport(b Bounds) {
	c.viewport = b
	c.reconcileSelection()
}

func (c *Composer) Viewport() Bounds { return c.viewport }

// ByCategory returns incidents matching the active category filter only,
// ignoring the viewport. Used for sidebar counts.
func (c *Composer) ByCategory() []models.CrimeReport {
	out := make([]models.CrimeReport, 0, len(c.incidents))
	for _, in := range c.incidents {
		if c.filter == FilterAll || in.CrimeType == c.filter {
			out = append(out, in)
		}
	}
	return out
}

// Visible returns incidents matching the category filter whose coordinate
// falls within the current viewport. Used for the marker layer and list.
func (c *Composer) Visible() []models.CrimeReport {
	out := make([]models.CrimeReport, 0, len(c.incidents))
	for _, in := range c.ByCategory() {
		if c.viewport.Contains(in.Location.Lat, in.Location.Lng) {
			out = append(out, in)
		}
	}
	return out
}

// Counts returns per-category totals over the full incident set.
func (c *Composer) Counts() map[string]int {
	counts := map[string]int{"total": len(c.incidents)}
	for _, cat := range crimecat.All() {
		counts[cat] = 0
	}
	for _, in := range c.incidents {
		if crimecat.Valid(in.CrimeType) {
			counts[in.CrimeType]++
		}
	}
	return counts
}

// Select marks an incident as selected. Selection survives filter and
// viewport changes only while the incident stays visible.
func (c *Composer) Select(id string) {
	c.selectedID = id
	c.reconcileSelection()
}

// Selected returns the currently selected incident, or nil.
func (c *Composer) Selected() *models.CrimeReport {
	if c.selectedID == "" {
		return nil
	}
	for i := range c.incidents {
		if c.incidents[i].PublicID == c.selectedID {
			return &c.incidents[i]
		}
	}
	return nil
}

func (c *Composer) reconcileSelection() {
	if c.selectedID == "" {
		return
	}
	for _, in := range c.Visible() {
		if in.PublicID == c.selectedID {
			return
		}
	}
	c.selectedID = ""
}

// HeatLayer builds the GeoJSON heat-map source from the visible set, each
// point weighted by severity.
func (c *Composer) HeatLayer() *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, in := range c.Visible() {
		pt := geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{in.Location.Lng, in.Location.Lat})
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       in.PublicID,
			Geometry: pt,
			Properties: map[string]interface{}{
				"type":     in.CrimeType,
				"severity": in.Severity,
				"weight":   crimecat.Weight(in.Severity),
			},
		})
	}
	return fc
}

// Markers returns the marker descriptors for the visible set.
func (c *Composer) Markers() []Marker {
	visible := c.Visible()
	markers := make([]Marker, 0, len(visible))
	for _, in := range visible {
		markers = append(markers, Marker{
			ID:        in.PublicID,
			Title:     in.Title,
			CrimeType: in.CrimeType,
			Severity:  in.Severity,
			Color:     crimecat.Color(in.CrimeType),
			Icon:      crimecat.Icon(in.CrimeType),
			Location:  in.Location,
			CreatedAt: in.CreatedAt,
		})
	}
	return markers
}

// Marker is one incident formatted for map rendering.
type Marker struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	CrimeType string          `json:"type"`
	Severity  string          `json:"severity"`
	Color     string          `json:"color"`
	Icon      string          `json:"icon"`
	Location  models.Location `json:"location"`
	CreatedAt time.Time       `json:"created_at"`
}
