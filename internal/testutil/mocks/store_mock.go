package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mrezvani/vocaflash/internal/models"
)

// MockStore is a mock implementation of store.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetItems(ctx context.Context, collectionID string) ([]models.Card, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockStore) GetItem(ctx context.Context, collectionID, cardID string) (*models.Card, error) {
	args := m.Called(ctx, collectionID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockStore) AddItem(ctx context.Context, collectionID string, card models.Card) (models.Card, error) {
	args := m.Called(ctx, collectionID, card)
	return args.Get(0).(models.Card), args.Error(1)
}

func (m *MockStore) UpdateItem(ctx context.Context, collectionID, cardID string, card models.Card) error {
	args := m.Called(ctx, collectionID, cardID, card)
	return args.Error(0)
}

func (m *MockStore) DeleteItem(ctx context.Context, collectionID, cardID string) error {
	args := m.Called(ctx, collectionID, cardID)
	return args.Error(0)
}

func (m *MockStore) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockStore) InsertCollection(ctx context.Context, c models.Collection) (models.Collection, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Collection), args.Error(1)
}

func (m *MockStore) GetCollection(ctx context.Context, id string) (*models.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockStore) ListCollections(ctx context.Context) ([]models.Collection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockStore) UpdateCollection(ctx context.Context, c models.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStore) DeleteCollection(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) InsertReviewEvent(ctx context.Context, event models.ReviewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockStore) ReviewHistory(ctx context.Context, cardID string, limit int) ([]models.ReviewEvent, error) {
	args := m.Called(ctx, cardID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewEvent), args.Error(1)
}

func (m *MockStore) CollectionStats(ctx context.Context, collectionID string, now int64) (*models.CollectionStats, error) {
	args := m.Called(ctx, collectionID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionStats), args.Error(1)
}

func (m *MockStore) RefreshCollectionStats(ctx context.Context, collectionID string, now int64) error {
	args := m.Called(ctx, collectionID, now)
	return args.Error(0)
}

func (m *MockStore) CachedCollectionStats(ctx context.Context, collectionID string) (*models.CollectionStats, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionStats), args.Error(1)
}
