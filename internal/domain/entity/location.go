// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// UnnamedPOI is the sentinel name for points of interest without a name tag.
const UnnamedPOI = "Unnamed"

// GeoResult is a canonical geocoding result for a free-text address.
// It is immutable once created; identity for deduplication purposes is
// exact (Lat, Lng) equality.
type GeoResult struct {
	Lat         float64 `json:"lat"`          // The geographic latitude.
	Lng         float64 `json:"lng"`          // The geographic longitude.
	DisplayName string  `json:"display_name"` // The provider's human-readable address.
}

// SameCoordinates reports whether two results describe the same point at
// full precision.
func (g GeoResult) SameCoordinates(other GeoResult) bool {
	return g.Lat == other.Lat && g.Lng == other.Lng
}

// Amenity is a single point of interest discovered near an analyzed location.
// Walking is true when the point was found by the walking-radius query; a
// point found by both radius queries keeps the walking tag, the stricter
// radius takes priority.
type Amenity struct {
	Type           string  `json:"type"`            // Matched category value, e.g. "restaurant".
	Name           string  `json:"name"`            // Name tag, or the UnnamedPOI sentinel.
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Walking        bool    `json:"walking"`
	DistanceMeters float64 `json:"distance_meters"` // Haversine distance from the analyzed center.
}

// AnalyzedLocation is the triple currently displayed: the resolved address,
// the deduplicated point set around it, and the derived scores. It is
// replaced atomically on each commit, never partially updated.
type AnalyzedLocation struct {
	Geo        GeoResult    `json:"geo"`
	Points     []Amenity    `json:"points"`
	Scores     *ScoreResult `json:"scores,omitempty"`
	AnalyzedAt time.Time    `json:"analyzed_at"`
}
