package service

import (
	"context"

	"insight/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockPOIFetcher is a mock implementation of service.POIFetcher.
type MockPOIFetcher struct {
	mock.Mock
}

// NewMockPOIFetcher creates a mock that verifies its expectations on cleanup.
func NewMockPOIFetcher(t mockTestingT) *MockPOIFetcher {
	m := &MockPOIFetcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPOIFetcher) Fetch(ctx context.Context, lat, lng float64, walkRadiusMeters, driveRadiusMeters int) []entity.Amenity {
	args := m.Called(ctx, lat, lng, walkRadiusMeters, driveRadiusMeters)

	points, _ := args.Get(0).([]entity.Amenity)

	return points
}
