package sqlite

import (
	"context"

	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/store"
)

func (s *Store) InsertReviewEvent(ctx context.Context, event models.ReviewEvent) error {
	log := logger.FromContext(ctx).WithPrefix("history_store")
	log.Debug("inserting review event: card_id=%s, confidence=%d", event.CardID, event.Confidence)

	_, err := s.db.ExecContext(ctx, `
INSERT INTO review_history (card_id, confidence, response_time_ms, reviewed_at)
VALUES (?, ?, ?, ?)
`, event.CardID, int(event.Confidence), event.ResponseTimeMs, event.ReviewedAt)
	if err != nil {
		log.Error("failed to insert review event: %v", err)
		return store.NewStoreError("insertReviewEvent", event.CardID, err)
	}
	return nil
}

func (s *Store) ReviewHistory(ctx context.Context, cardID string, limit int) ([]models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("history_store")
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, card_id, confidence, response_time_ms, reviewed_at
FROM review_history
WHERE card_id = ?
ORDER BY reviewed_at DESC
LIMIT ?
`, cardID, limit)
	if err != nil {
		log.Error("failed to query review history: %v", err)
		return nil, store.NewStoreError("reviewHistory", cardID, err)
	}
	defer rows.Close()

	var events []models.ReviewEvent
	for rows.Next() {
		var e models.ReviewEvent
		var confidence int
		if err := rows.Scan(&e.ID, &e.CardID, &confidence, &e.ResponseTimeMs, &e.ReviewedAt); err != nil {
			return nil, store.NewStoreError("reviewHistory", cardID, err)
		}
		e.Confidence = models.ConfidenceLevel(confidence)
		events = append(events, e)
	}
	return events, rows.Err()
}
