package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrezvani/vocaflash/internal/models"
)

// ErrNotFound is returned when the addressed document does not exist.
var ErrNotFound = errors.New("not found")

// StoreError wraps any failure from the persistence boundary. Callers treat
// every failure identically: the operation may be retried with the same
// arguments.
type StoreError struct {
	Op  string // operation that failed, e.g. "updateItem"
	Key string // collection or card identifier involved
	Err error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store: %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err for the given operation and key.
func NewStoreError(op, key string, err error) *StoreError {
	return &StoreError{Op: op, Key: key, Err: err}
}

// CardStore is the minimal document-store contract the review engine depends
// on. Cards are keyed by opaque string identifiers; AddItem assigns the id.
type CardStore interface {
	GetItems(ctx context.Context, collectionID string) ([]models.Card, error)
	AddItem(ctx context.Context, collectionID string, card models.Card) (models.Card, error)
	UpdateItem(ctx context.Context, collectionID, cardID string, card models.Card) error
	DeleteItem(ctx context.Context, collectionID, cardID string) error

	GetItem(ctx context.Context, collectionID, cardID string) (*models.Card, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
}

// CollectionStore handles collection metadata.
type CollectionStore interface {
	InsertCollection(ctx context.Context, c models.Collection) (models.Collection, error)
	GetCollection(ctx context.Context, id string) (*models.Collection, error)
	ListCollections(ctx context.Context) ([]models.Collection, error)
	UpdateCollection(ctx context.Context, c models.Collection) error
	DeleteCollection(ctx context.Context, id string) error
}

// HistoryStore appends and reads the per-card review log.
type HistoryStore interface {
	InsertReviewEvent(ctx context.Context, event models.ReviewEvent) error
	ReviewHistory(ctx context.Context, cardID string, limit int) ([]models.ReviewEvent, error)
}

// StatsStore computes and caches per-collection aggregates.
type StatsStore interface {
	CollectionStats(ctx context.Context, collectionID string, now int64) (*models.CollectionStats, error)
	RefreshCollectionStats(ctx context.Context, collectionID string, now int64) error
	CachedCollectionStats(ctx context.Context, collectionID string) (*models.CollectionStats, error)
}

// Store is the full persistence surface implemented by the sqlite backend.
type Store interface {
	CardStore
	CollectionStore
	HistoryStore
	StatsStore
}
