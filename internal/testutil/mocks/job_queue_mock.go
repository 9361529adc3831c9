package mocks

import "github.com/stretchr/testify/mock"

// MockJobQueue is a mock implementation of jobs.Queue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueStatsRefresh(collectionID string) error {
	args := m.Called(collectionID)
	return args.Error(0)
}
