package usecase

import (
	"context"

	"insight/internal/domain/entity"
)

// InsightUsecase drives the geocode -> fetch -> score pipeline for one
// logical session.
//
// Suggest is the resolving step: it debounces and geocodes free-text input
// into a candidate location without any POI work. A nil result with a nil
// error means the address did not resolve. Analyze commits a candidate
// (explicit, or the last suggested one when geo is nil): it is a no-op for
// the currently analyzed coordinates, otherwise it records history, fetches
// POIs at the configured radii, scores them, and atomically replaces the
// analyzed location. Results of superseded pipelines are discarded.
type InsightUsecase interface {
	Suggest(ctx context.Context, address string) (*entity.GeoResult, error)
	Analyze(ctx context.Context, geo *entity.GeoResult) (*entity.AnalyzedLocation, error)
	Current(ctx context.Context) (*entity.AnalyzedLocation, error)
	History(ctx context.Context) ([]string, error)
}
