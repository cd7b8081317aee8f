// Package overpass implements the POI fetcher against an Overpass QL
// endpoint.
package overpass

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"insight/config"
	"insight/internal/domain/entity"
	"insight/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	overpass "github.com/serjvanilla/go-overpass"
	"golang.org/x/time/rate"
)

// queryClient is the part of the Overpass client the fetcher uses.
type queryClient interface {
	Query(query string) (overpass.Result, error)
}

// Fetcher queries the POI service once per radius tier and merges the
// results into a deduplicated point set.
type Fetcher struct {
	client  queryClient
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewFetcher builds a fetcher backed by the configured Overpass endpoint.
func NewFetcher(cfg *config.Config, logger *slog.Logger) service.POIFetcher {
	httpClient := &http.Client{Timeout: cfg.Overpass.RequestTimeout}
	client := overpass.NewWithSettings(cfg.Overpass.Endpoint, cfg.Overpass.Parallelism, httpClient)

	return &Fetcher{
		client:  &client,
		limiter: rate.NewLimiter(rate.Limit(cfg.Overpass.RequestsPerSecond), cfg.Overpass.Parallelism),
		logger:  logger,
	}
}

// Fetch runs the walking-radius and driving-radius queries concurrently,
// joins them, and deduplicates on the 6-decimal coordinate key. Walking
// results are concatenated first, so a point found in both tiers keeps the
// walking tag. A failed query degrades to an empty tier, never an error.
func (f *Fetcher) Fetch(ctx context.Context, lat, lng float64, walkRadiusMeters, driveRadiusMeters int) []entity.Amenity {
	var walking, driving []entity.Amenity

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		walking = f.fetchTier(ctx, lat, lng, walkRadiusMeters, true)
	}()
	go func() {
		defer wg.Done()
		driving = f.fetchTier(ctx, lat, lng, driveRadiusMeters, false)
	}()
	wg.Wait()

	return dedupe(append(walking, driving...))
}

func (f *Fetcher) fetchTier(ctx context.Context, lat, lng float64, radiusMeters int, walking bool) []entity.Amenity {
	if err := f.limiter.Wait(ctx); err != nil {
		f.logger.Warn("poi query cancelled while rate limited", slog.Any("error", err))

		return nil
	}

	result, err := f.client.Query(buildQuery(lat, lng, radiusMeters))
	if err != nil {
		f.logger.Warn("poi query failed",
			slog.Int("radius_m", radiusMeters),
			slog.Bool("walking", walking),
			slog.Any("error", err))

		return nil
	}

	return mapNodes(&result, lat, lng, walking)
}

func buildQuery(lat, lng float64, radiusMeters int) string {
	var b strings.Builder
	b.WriteString("[out:json];\n(\n")
	for _, filter := range categoryFilters {
		fmt.Fprintf(&b, "  node(around:%d,%f,%f)[%s];\n", radiusMeters, lat, lng, filter)
	}
	b.WriteString(");\nout;")

	return b.String()
}

func mapNodes(result *overpass.Result, centerLat, centerLng float64, walking bool) []entity.Amenity {
	center := orb.Point{centerLng, centerLat}

	amenities := make([]entity.Amenity, 0, len(result.Nodes))
	for _, node := range result.Nodes {
		if node == nil {
			continue
		}

		category, ok := categoryOf(node.Tags)
		if !ok {
			continue
		}

		name := node.Tags["name"]
		if name == "" {
			name = entity.UnnamedPOI
		}

		amenities = append(amenities, entity.Amenity{
			Type:           category,
			Name:           name,
			Lat:            node.Lat,
			Lng:            node.Lon,
			Walking:        walking,
			DistanceMeters: geo.Distance(center, orb.Point{node.Lon, node.Lat}),
		})
	}

	return amenities
}

// dedupe keeps the first occurrence per coordinate key. Callers concatenate
// walking results before driving results, so the stricter tier wins ties.
func dedupe(points []entity.Amenity) []entity.Amenity {
	seen := make(map[string]struct{}, len(points))
	unique := make([]entity.Amenity, 0, len(points))
	for _, p := range points {
		key := coordinateKey(p.Lat, p.Lng)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, p)
	}

	return unique
}

func coordinateKey(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', 6, 64) + "," + strconv.FormatFloat(lng, 'f', 6, 64)
}
