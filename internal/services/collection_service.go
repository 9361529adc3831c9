package services

import (
	"context"
	"strings"

	"github.com/mrezvani/vocaflash/internal/errors"
	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/store"
)

// CollectionService handles collection-related business logic
type CollectionService interface {
	CreateCollection(ctx context.Context, c models.Collection) (*models.Collection, error)
	GetCollection(ctx context.Context, id string) (*models.Collection, error)
	ListCollections(ctx context.Context) ([]models.Collection, error)
	UpdateCollection(ctx context.Context, c models.Collection) error
	DeleteCollection(ctx context.Context, id string) error
}

type collectionService struct {
	store store.CollectionStore
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(s store.CollectionStore) CollectionService {
	return &collectionService{store: s}
}

func (s *collectionService) CreateCollection(ctx context.Context, c models.Collection) (*models.Collection, error) {
	log := logger.FromContext(ctx)

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}
	if c.Language == "" {
		c.Language = "english"
	}
	if c.TargetLanguage == "" {
		c.TargetLanguage = "persian"
	}

	created, err := s.store.InsertCollection(ctx, c)
	if err != nil {
		log.Error("failed to create collection: %v", err)
		return nil, errors.NewStoreError(err)
	}
	log.Info("collection created: id=%s, name=%q", created.ID, created.Name)
	return &created, nil
}

func (s *collectionService) GetCollection(ctx context.Context, id string) (*models.Collection, error) {
	c, err := s.store.GetCollection(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("collection", id)
		}
		return nil, errors.NewStoreError(err)
	}
	return c, nil
}

func (s *collectionService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	collections, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, errors.NewStoreError(err)
	}
	return collections, nil
}

func (s *collectionService) UpdateCollection(ctx context.Context, c models.Collection) error {
	log := logger.FromContext(ctx)

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return errors.NewValidationError("name", "must not be empty")
	}

	if err := s.store.UpdateCollection(ctx, c); err != nil {
		if isNotFound(err) {
			return errors.NewNotFoundError("collection", c.ID)
		}
		log.Error("failed to update collection: %v", err)
		return errors.NewStoreError(err)
	}
	return nil
}

func (s *collectionService) DeleteCollection(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := s.store.DeleteCollection(ctx, id); err != nil {
		if isNotFound(err) {
			return errors.NewNotFoundError("collection", id)
		}
		log.Error("failed to delete collection: %v", err)
		return errors.NewStoreError(err)
	}
	log.Info("collection deleted: id=%s", id)
	return nil
}
