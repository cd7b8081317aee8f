package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"insight/config"
	"insight/internal/domain/entity"
	domainerrors "insight/internal/domain/errors"
	"insight/internal/domain/repository"
	"insight/internal/domain/scoring"
	"insight/internal/domain/service"
	"insight/internal/errors"
	"insight/internal/usecase"
)

type insightService struct {
	geocoder    service.Geocoder
	fetcher     service.POIFetcher
	historyRepo repository.HistoryRepository
	cfg         *config.Config
	logger      *slog.Logger

	mu         sync.Mutex
	pending    *entity.GeoResult
	current    *entity.AnalyzedLocation
	generation uint64
}

// NewInsightService creates the pipeline orchestrator.
func NewInsightService(
	geocoder service.Geocoder,
	fetcher service.POIFetcher,
	historyRepo repository.HistoryRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.InsightUsecase {
	return &insightService{
		geocoder:    geocoder,
		fetcher:     fetcher,
		historyRepo: historyRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// Suggest resolves free-text input into a candidate location and remembers
// it for a later commit. No POI work happens here.
func (s *insightService) Suggest(ctx context.Context, address string) (*entity.GeoResult, error) {
	geo, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		// Abandoned debounced calls pass through untouched so callers can
		// drop them silently.
		return nil, err
	}

	s.mu.Lock()
	s.pending = geo
	s.mu.Unlock()

	return geo, nil
}

// Analyze commits a candidate location and runs the fetch -> score pipeline.
func (s *insightService) Analyze(ctx context.Context, geo *entity.GeoResult) (*entity.AnalyzedLocation, error) {
	s.mu.Lock()
	if geo == nil {
		geo = s.pending
	}
	if geo == nil {
		s.mu.Unlock()

		return nil, domainerrors.ErrNoLocationResolved
	}

	// Idempotent guard: committing the currently analyzed coordinates again
	// must not trigger another fetch or score computation.
	if s.current != nil && s.current.Geo.SameCoordinates(*geo) {
		current := s.current
		s.mu.Unlock()

		return current, nil
	}

	s.generation++
	generation := s.generation

	// Enter the calculating state: geo is known, scores are cleared.
	s.current = &entity.AnalyzedLocation{Geo: *geo}
	s.mu.Unlock()

	s.recordHistory(ctx, geo.DisplayName)

	walkRadius := s.cfg.Insight.WalkingRadiusMeters
	driveRadius := s.cfg.Insight.DrivingRadiusMeters

	points := s.fetcher.Fetch(ctx, geo.Lat, geo.Lng, walkRadius, driveRadius)
	scores := scoring.Calculate(points, float64(driveRadius))

	s.mu.Lock()
	defer s.mu.Unlock()

	// Last-write-wins keyed to the triggering location: a pipeline that was
	// superseded while in flight must not overwrite a newer one's state.
	if s.generation != generation {
		s.logger.Debug("discarding superseded analysis",
			slog.String("display_name", geo.DisplayName))

		return nil, domainerrors.ErrAnalysisSuperseded
	}

	s.current = &entity.AnalyzedLocation{
		Geo:        *geo,
		Points:     points,
		Scores:     &scores,
		AnalyzedAt: time.Now(),
	}

	return s.current, nil
}

// Current returns the analyzed location triple, if any.
func (s *insightService) Current(_ context.Context) (*entity.AnalyzedLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, domainerrors.ErrNoAnalyzedLocation
	}

	return s.current, nil
}

// History returns the recent-address list, most recent first.
func (s *insightService) History(ctx context.Context) ([]string, error) {
	entries, err := s.historyRepo.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return []string{}, nil
		}

		return nil, domainerrors.ErrHistoryUnavailable.WithDetails(err.Error())
	}

	return entries, nil
}

// recordHistory pushes a display name onto the front of the history list,
// removing prior occurrences and truncating to the configured limit.
// History failures never abort an analysis; they are logged and skipped.
func (s *insightService) recordHistory(ctx context.Context, displayName string) {
	if displayName == "" {
		return
	}

	entries, err := s.historyRepo.Load(ctx)
	if err != nil && !errors.Is(err, repository.ErrHistoryNotFound) {
		s.logger.Warn("failed to load address history", slog.Any("error", err))

		return
	}

	updated := pushFront(entries, displayName, s.cfg.Insight.HistoryLimit)
	if err := s.historyRepo.Save(ctx, updated); err != nil {
		s.logger.Warn("failed to save address history", slog.Any("error", err))
	}
}

func pushFront(entries []string, name string, limit int) []string {
	updated := make([]string, 0, len(entries)+1)
	updated = append(updated, name)
	for _, entry := range entries {
		if entry != name {
			updated = append(updated, entry)
		}
	}
	if len(updated) > limit {
		updated = updated[:limit]
	}

	return updated
}
