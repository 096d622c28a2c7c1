package models

// Location is a coordinate pair with a best-effort address.
// It is always embedded in a CrimeReport or SOSAlert, never stored on its own.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
	Source  string  `json:"source,omitempty"` // "current", "search" or "map"
}
