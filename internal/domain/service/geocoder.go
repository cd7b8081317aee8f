// Package service defines interfaces for external collaborators the
// use cases depend on. Implementations live under internal/infra.
package service

import (
	"context"

	"insight/internal/domain/entity"
	"insight/internal/errors"
)

// ErrSuperseded is returned for a pending call that was abandoned because a
// newer call replaced it. It signals "no result delivered", not a failure;
// callers drop the call silently.
var ErrSuperseded = errors.New("superseded by a newer request")

// Geocoder resolves a free-text address into a canonical location.
//
// The contract collapses all provider failures into a nil result: a nil
// *GeoResult with a nil error means "no match or provider unreachable".
// Implementations debounce bursts of calls; abandoned calls return
// ErrSuperseded.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*entity.GeoResult, error)
}
