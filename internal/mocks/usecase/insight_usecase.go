// Package usecase contains testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"insight/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockInsightUsecase is a mock implementation of usecase.InsightUsecase.
type MockInsightUsecase struct {
	mock.Mock
}

type mockTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewMockInsightUsecase creates a mock that verifies its expectations on cleanup.
func NewMockInsightUsecase(t mockTestingT) *MockInsightUsecase {
	m := &MockInsightUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockInsightUsecase) Suggest(ctx context.Context, address string) (*entity.GeoResult, error) {
	args := m.Called(ctx, address)

	var geo *entity.GeoResult
	if args.Get(0) != nil {
		geo = args.Get(0).(*entity.GeoResult)
	}

	return geo, args.Error(1)
}

func (m *MockInsightUsecase) Analyze(ctx context.Context, geo *entity.GeoResult) (*entity.AnalyzedLocation, error) {
	args := m.Called(ctx, geo)

	var location *entity.AnalyzedLocation
	if args.Get(0) != nil {
		location = args.Get(0).(*entity.AnalyzedLocation)
	}

	return location, args.Error(1)
}

func (m *MockInsightUsecase) Current(ctx context.Context) (*entity.AnalyzedLocation, error) {
	args := m.Called(ctx)

	var location *entity.AnalyzedLocation
	if args.Get(0) != nil {
		location = args.Get(0).(*entity.AnalyzedLocation)
	}

	return location, args.Error(1)
}

func (m *MockInsightUsecase) History(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)

	entries, _ := args.Get(0).([]string)

	return entries, args.Error(1)
}
