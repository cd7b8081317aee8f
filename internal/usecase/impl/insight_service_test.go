package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"insight/config"
	"insight/internal/domain/entity"
	domainerrors "insight/internal/domain/errors"
	"insight/internal/domain/repository"
	"insight/internal/domain/service"
	"insight/internal/errors"
	mockRepo "insight/internal/mocks/repository"
	mockService "insight/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Insight = &config.InsightConfig{
		WalkingRadiusMeters: 500,
		DrivingRadiusMeters: 2000,
		HistoryLimit:        10,
	}

	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHistoryRepo is a stateful in-memory history slot.
type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []string
	loadErr error
	saveErr error
}

func (f *fakeHistoryRepo) Load(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.entries == nil {
		return nil, repository.ErrHistoryNotFound
	}

	return append([]string{}, f.entries...), nil
}

func (f *fakeHistoryRepo) Save(_ context.Context, addresses []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries = addresses

	return nil
}

// fakeFetcher lets tests control the point set per location.
type fakeFetcher struct {
	fn    func(lat, lng float64) []entity.Amenity
	calls atomic.Int64
}

func (f *fakeFetcher) Fetch(_ context.Context, lat, lng float64, _, _ int) []entity.Amenity {
	f.calls.Add(1)
	if f.fn != nil {
		return f.fn(lat, lng)
	}

	return []entity.Amenity{}
}

func makePoints(walking, driving int) []entity.Amenity {
	points := make([]entity.Amenity, 0, walking+driving)
	for i := 0; i < walking; i++ {
		points = append(points, entity.Amenity{Type: "cafe", Walking: true})
	}
	for i := 0; i < driving; i++ {
		points = append(points, entity.Amenity{Type: "fuel", Walking: false})
	}

	return points
}

func TestInsightService_SuggestStoresPendingCandidate(t *testing.T) {
	ctx := context.Background()
	geo := &entity.GeoResult{Lat: 38.8977, Lng: -77.0365, DisplayName: "White House"}

	mockGeocoder := mockService.NewMockGeocoder(t)
	mockGeocoder.On("Geocode", ctx, "1600 Pennsylvania Ave").Return(geo, nil)

	fetcher := &fakeFetcher{fn: func(float64, float64) []entity.Amenity { return makePoints(30, 80) }}
	svc := NewInsightService(mockGeocoder, fetcher, &fakeHistoryRepo{}, testConfig(), testLogger())

	suggested, err := svc.Suggest(ctx, "1600 Pennsylvania Ave")
	require.NoError(t, err)
	assert.Equal(t, geo, suggested)

	// Committing without an explicit location uses the pending candidate.
	location, err := svc.Analyze(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, *geo, location.Geo)
	assert.EqualValues(t, 1, fetcher.calls.Load())
}

func TestInsightService_SuggestNoResults(t *testing.T) {
	ctx := context.Background()

	mockGeocoder := mockService.NewMockGeocoder(t)
	mockGeocoder.On("Geocode", ctx, "gibberish").Return(nil, nil)

	svc := NewInsightService(mockGeocoder, &fakeFetcher{}, &fakeHistoryRepo{}, testConfig(), testLogger())

	suggested, err := svc.Suggest(ctx, "gibberish")
	require.NoError(t, err)
	assert.Nil(t, suggested)

	_, err = svc.Analyze(ctx, nil)
	assert.ErrorIs(t, err, domainerrors.ErrNoLocationResolved)
}

func TestInsightService_SuggestSupersededPassesThrough(t *testing.T) {
	ctx := context.Background()

	mockGeocoder := mockService.NewMockGeocoder(t)
	mockGeocoder.On("Geocode", ctx, "typing...").Return(nil, service.ErrSuperseded)

	svc := NewInsightService(mockGeocoder, &fakeFetcher{}, &fakeHistoryRepo{}, testConfig(), testLogger())

	_, err := svc.Suggest(ctx, "typing...")
	assert.ErrorIs(t, err, service.ErrSuperseded)
}

func TestInsightService_AnalyzeComputesScores(t *testing.T) {
	ctx := context.Background()
	geo := &entity.GeoResult{Lat: 38.8977, Lng: -77.0365, DisplayName: "White House"}

	mockFetcher := mockService.NewMockPOIFetcher(t)
	mockFetcher.On("Fetch", ctx, geo.Lat, geo.Lng, 500, 2000).Return(makePoints(30, 80)).Once()

	svc := NewInsightService(mockService.NewMockGeocoder(t), mockFetcher, &fakeHistoryRepo{}, testConfig(), testLogger())

	location, err := svc.Analyze(ctx, geo)
	require.NoError(t, err)
	require.NotNil(t, location.Scores)
	assert.InDelta(t, 6.0, location.Scores.WalkingScore, 1e-9)
	assert.InDelta(t, 8.0, location.Scores.DrivingScore, 1e-9)
	assert.Equal(t, entity.DensitySuburban, location.Scores.UrbanSuburbanIndex)
	assert.Len(t, location.Points, 110)
	assert.False(t, location.AnalyzedAt.IsZero())

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, location, current)
}

func TestInsightService_AnalyzeIdempotentForSameCoordinates(t *testing.T) {
	ctx := context.Background()
	geo := &entity.GeoResult{Lat: 25.7744853, Lng: -80.1920912, DisplayName: "Miami"}

	fetcher := &fakeFetcher{fn: func(float64, float64) []entity.Amenity { return makePoints(5, 5) }}
	svc := NewInsightService(mockService.NewMockGeocoder(t), fetcher, &fakeHistoryRepo{}, testConfig(), testLogger())

	first, err := svc.Analyze(ctx, geo)
	require.NoError(t, err)

	second, err := svc.Analyze(ctx, geo)
	require.NoError(t, err)

	assert.Same(t, first, second, "re-committing the same coordinates returns the existing analysis")
	assert.EqualValues(t, 1, fetcher.calls.Load(), "exactly one fetch for repeated identical commits")
}

func TestInsightService_HistoryOrdering(t *testing.T) {
	ctx := context.Background()
	addressA := &entity.GeoResult{Lat: 1, Lng: 1, DisplayName: "A"}
	addressB := &entity.GeoResult{Lat: 2, Lng: 2, DisplayName: "B"}

	history := &fakeHistoryRepo{}
	svc := NewInsightService(mockService.NewMockGeocoder(t), &fakeFetcher{}, history, testConfig(), testLogger())

	for _, geo := range []*entity.GeoResult{addressA, addressB, addressA} {
		_, err := svc.Analyze(ctx, geo)
		require.NoError(t, err)
	}

	entries, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, entries, "re-committing moves an entry to the front without duplication")
}

func TestInsightService_HistoryFailureDoesNotAbortAnalysis(t *testing.T) {
	ctx := context.Background()
	geo := &entity.GeoResult{Lat: 3, Lng: 4, DisplayName: "C"}

	history := &fakeHistoryRepo{loadErr: errors.New("store offline")}
	svc := NewInsightService(mockService.NewMockGeocoder(t), &fakeFetcher{}, history, testConfig(), testLogger())

	location, err := svc.Analyze(ctx, geo)
	require.NoError(t, err)
	assert.NotNil(t, location.Scores)
}

func TestInsightService_SupersededPipelineIsDiscarded(t *testing.T) {
	ctx := context.Background()
	first := &entity.GeoResult{Lat: 10, Lng: 10, DisplayName: "first"}
	second := &entity.GeoResult{Lat: 20, Lng: 20, DisplayName: "second"}

	var svcRef *insightService
	fetcher := &fakeFetcher{}
	fetcher.fn = func(lat, _ float64) []entity.Amenity {
		// While the first pipeline is in flight, a newer commit lands.
		if lat == first.Lat {
			_, err := svcRef.Analyze(ctx, second)
			require.NoError(t, err)
		}

		return makePoints(1, 1)
	}

	svc := NewInsightService(mockService.NewMockGeocoder(t), fetcher, &fakeHistoryRepo{}, testConfig(), testLogger())
	svcRef = svc.(*insightService)

	_, err := svc.Analyze(ctx, first)
	assert.ErrorIs(t, err, domainerrors.ErrAnalysisSuperseded)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, *second, current.Geo, "the stale pipeline must not overwrite the newer result")
}

func TestInsightService_CurrentBeforeAnyAnalysis(t *testing.T) {
	svc := NewInsightService(mockService.NewMockGeocoder(t), &fakeFetcher{}, &fakeHistoryRepo{}, testConfig(), testLogger())

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrNoAnalyzedLocation)
}

func TestInsightService_HistoryEmptyAndErrors(t *testing.T) {
	ctx := context.Background()

	mockHistory := mockRepo.NewMockHistoryRepository(t)
	mockHistory.On("Load", ctx).Return(nil, repository.ErrHistoryNotFound).Once()
	mockHistory.On("Load", ctx).Return(nil, errors.New("disk error")).Once()

	svc := NewInsightService(mockService.NewMockGeocoder(t), &fakeFetcher{}, mockHistory, testConfig(), testLogger())

	entries, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.History(ctx)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "HISTORY_UNAVAILABLE", appErr.ErrorCode())
}

func TestPushFront(t *testing.T) {
	assert.Equal(t, []string{"A"}, pushFront(nil, "A", 10))
	assert.Equal(t, []string{"B", "A"}, pushFront([]string{"A"}, "B", 10))
	assert.Equal(t, []string{"A", "B"}, pushFront([]string{"B", "A"}, "A", 10))

	full := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	capped := pushFront(full, "0", 10)
	assert.Len(t, capped, 10)
	assert.Equal(t, "0", capped[0])
	assert.NotContains(t, capped, "10")
}

func TestInsightService_GeocoderCollapsedFailures(t *testing.T) {
	// The orchestrator never observes a failure distinct from "no data".
	ctx := context.Background()

	mockGeocoder := mockService.NewMockGeocoder(t)
	mockGeocoder.On("Geocode", ctx, mock.Anything).Return(nil, nil)

	svc := NewInsightService(mockGeocoder, &fakeFetcher{}, &fakeHistoryRepo{}, testConfig(), testLogger())

	geo, err := svc.Suggest(ctx, "unreachable provider town")
	require.NoError(t, err)
	assert.Nil(t, geo)
}
