package service

import (
	"context"

	"insight/internal/domain/entity"
)

// POIFetcher queries the map-data service for points of interest around a
// center, once per radius tier.
//
// Fetch always returns a slice, possibly empty: a failed or malformed
// response on either radius query is logged by the implementation and
// treated as an empty result for that query, it never aborts the other
// query. The returned set contains no two entries with identical
// coordinates rounded to 6 decimal places; walking-tier entries win ties.
type POIFetcher interface {
	Fetch(ctx context.Context, lat, lng float64, walkRadiusMeters, driveRadiusMeters int) []entity.Amenity
}
