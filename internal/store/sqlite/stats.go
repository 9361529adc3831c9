package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/store"
)

const dueSoonWindowMs = 24 * 60 * 60 * 1000

// CollectionStats computes aggregates live from the cards table.
func (s *Store) CollectionStats(ctx context.Context, collectionID string, now int64) (*models.CollectionStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_store")
	log.Debug("computing collection stats: collection_id=%s", collectionID)

	var st models.CollectionStats
	st.CollectionID = collectionID
	err := s.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(total_reviews), 0),
    COALESCE(SUM(CASE WHEN next_review_at <= ? THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN next_review_at > ? AND next_review_at <= ? THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN learning_status = 'mastered' THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN ease_factor <= 1.5 AND total_reviews >= 3 THEN 1 ELSE 0 END), 0),
    COALESCE(CAST(SUM(correct_answers) AS REAL) / NULLIF(SUM(total_reviews), 0), 0),
    COALESCE(AVG(ease_factor), 0),
    COALESCE(AVG(interval_days), 0)
FROM cards
WHERE collection_id = ?
`, now, now, now+dueSoonWindowMs, collectionID).Scan(
		&st.TotalCards, &st.TotalReviews, &st.CardsDue, &st.CardsDueSoon,
		&st.CardsMastered, &st.CardsStruggling, &st.OverallAccuracy,
		&st.AvgEaseFactor, &st.AvgIntervalDays)
	if err != nil {
		log.Error("failed to compute collection stats: %v", err)
		return nil, store.NewStoreError("collectionStats", collectionID, err)
	}
	return &st, nil
}

// RefreshCollectionStats recomputes aggregates and upserts the cache row.
func (s *Store) RefreshCollectionStats(ctx context.Context, collectionID string, now int64) error {
	log := logger.FromContext(ctx).WithPrefix("stats_store")
	log.Debug("refreshing stats cache: collection_id=%s", collectionID)

	st, err := s.CollectionStats(ctx, collectionID, now)
	if err != nil {
		return err
	}

	err = tx(ctx, s.db, func(t *sql.Tx) error {
		_, err := t.ExecContext(ctx, `
INSERT INTO collection_stats (collection_id, total_cards, total_reviews, cards_due, cards_due_soon,
    cards_mastered, cards_struggling, overall_accuracy, avg_ease_factor, avg_interval_days, refreshed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(collection_id) DO UPDATE SET
    total_cards = excluded.total_cards,
    total_reviews = excluded.total_reviews,
    cards_due = excluded.cards_due,
    cards_due_soon = excluded.cards_due_soon,
    cards_mastered = excluded.cards_mastered,
    cards_struggling = excluded.cards_struggling,
    overall_accuracy = excluded.overall_accuracy,
    avg_ease_factor = excluded.avg_ease_factor,
    avg_interval_days = excluded.avg_interval_days,
    refreshed_at = excluded.refreshed_at
`, st.CollectionID, st.TotalCards, st.TotalReviews, st.CardsDue, st.CardsDueSoon,
			st.CardsMastered, st.CardsStruggling, st.OverallAccuracy,
			st.AvgEaseFactor, st.AvgIntervalDays, time.Now().UnixMilli())
		return err
	})
	if err != nil {
		log.Error("failed to write stats cache: %v", err)
		return store.NewStoreError("refreshCollectionStats", collectionID, err)
	}
	return nil
}

// CachedCollectionStats reads the cache row; ErrNotFound when never refreshed.
func (s *Store) CachedCollectionStats(ctx context.Context, collectionID string) (*models.CollectionStats, error) {
	var st models.CollectionStats
	st.CollectionID = collectionID
	err := s.db.QueryRowContext(ctx, `
SELECT total_cards, total_reviews, cards_due, cards_due_soon, cards_mastered, cards_struggling,
       overall_accuracy, avg_ease_factor, avg_interval_days, refreshed_at
FROM collection_stats
WHERE collection_id = ?
`, collectionID).Scan(&st.TotalCards, &st.TotalReviews, &st.CardsDue, &st.CardsDueSoon,
		&st.CardsMastered, &st.CardsStruggling, &st.OverallAccuracy,
		&st.AvgEaseFactor, &st.AvgIntervalDays, &st.RefreshedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("cachedCollectionStats", collectionID, store.ErrNotFound)
	}
	if err != nil {
		return nil, store.NewStoreError("cachedCollectionStats", collectionID, err)
	}
	return &st, nil
}
