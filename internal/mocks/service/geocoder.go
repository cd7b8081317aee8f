// Package service contains testify mocks for the domain service interfaces.
package service

import (
	"context"

	"insight/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockGeocoder is a mock implementation of service.Geocoder.
type MockGeocoder struct {
	mock.Mock
}

type mockTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewMockGeocoder creates a mock that verifies its expectations on cleanup.
func NewMockGeocoder(t mockTestingT) *MockGeocoder {
	m := &MockGeocoder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*entity.GeoResult, error) {
	args := m.Called(ctx, address)

	var geo *entity.GeoResult
	if args.Get(0) != nil {
		geo = args.Get(0).(*entity.GeoResult)
	}

	return geo, args.Error(1)
}
