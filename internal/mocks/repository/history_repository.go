// Package repository contains testify mocks for the domain repositories.
package repository

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockHistoryRepository is a mock implementation of repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

type mockTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewMockHistoryRepository creates a mock that verifies its expectations on cleanup.
func NewMockHistoryRepository(t mockTestingT) *MockHistoryRepository {
	m := &MockHistoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockHistoryRepository) Load(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)

	entries, _ := args.Get(0).([]string)

	return entries, args.Error(1)
}

func (m *MockHistoryRepository) Save(ctx context.Context, addresses []string) error {
	args := m.Called(ctx, addresses)

	return args.Error(0)
}
