package services

import (
	"context"
	"time"

	"github.com/mrezvani/vocaflash/internal/errors"
	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/store"
)

// StatsService exposes per-collection review aggregates.
type StatsService interface {
	CollectionStats(ctx context.Context, collectionID string) (*models.CollectionStats, error)
	RefreshCollectionStats(ctx context.Context, collectionID string) error
}

type statsService struct {
	store store.Store
}

// NewStatsService creates a new StatsService
func NewStatsService(s store.Store) StatsService {
	return &statsService{store: s}
}

// CollectionStats prefers the cached snapshot and falls back to a live
// aggregate when none has been computed yet.
func (s *statsService) CollectionStats(ctx context.Context, collectionID string) (*models.CollectionStats, error) {
	if _, err := s.store.GetCollection(ctx, collectionID); err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("collection", collectionID)
		}
		return nil, errors.NewStoreError(err)
	}

	cached, err := s.store.CachedCollectionStats(ctx, collectionID)
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && !isNotFound(err) {
		logger.FromContext(ctx).Warn("stats cache read failed, computing live: %v", err)
	}

	now := time.Now().UnixMilli()
	stats, err := s.store.CollectionStats(ctx, collectionID, now)
	if err != nil {
		return nil, errors.NewStoreError(err)
	}
	return stats, nil
}

func (s *statsService) RefreshCollectionStats(ctx context.Context, collectionID string) error {
	now := time.Now().UnixMilli()
	if err := s.store.RefreshCollectionStats(ctx, collectionID, now); err != nil {
		if isNotFound(err) {
			return errors.NewNotFoundError("collection", collectionID)
		}
		return errors.NewStoreError(err)
	}
	return nil
}
