// Package geocode implements the address resolution chain: a keyed primary
// provider with a free fallback, behind a shared debounce window.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"insight/internal/domain/entity"
	"insight/internal/errors"
)

// ErrNoMatch is returned when a provider responds successfully but has no
// result for the address. The chain logs it and consults the next provider.
var ErrNoMatch = errors.New("no geocoding match")

// provider is a single geocoding backend.
type provider interface {
	Name() string
	Lookup(ctx context.Context, address string) (*entity.GeoResult, error)
}

// searchResult is the wire shape shared by both providers: coordinates come
// back as strings and are parsed to floats here.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func decodeFirstMatch(body io.Reader) (*entity.GeoResult, error) {
	var results []searchResult
	if err := json.NewDecoder(body).Decode(&results); err != nil {
		return nil, errors.Wrap(err, "decode geocoding response")
	}

	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse latitude")
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse longitude")
	}

	return &entity.GeoResult{
		Lat:         lat,
		Lng:         lng,
		DisplayName: results[0].DisplayName,
	}, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}
