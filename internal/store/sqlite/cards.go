package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/store"
)

const cardColumns = `id, collection_id, front, front_core, back, back_core, card_type, part_of_speech,
definition, synonyms, antonyms, examples, image_url, audio_url, notes, learning_status,
reviewed_number, total_reviews, correct_answers, incorrect_answers, avg_response_time_ms,
last_confidence, streak_count, lapses, interval_days, ease_factor, next_review_at, repetitions,
created_at, updated_at`

func (s *Store) GetItems(ctx context.Context, collectionID string) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_store")
	log.Debug("fetching cards: collection_id=%s", collectionID)

	rows, err := s.db.QueryContext(ctx, `
SELECT `+cardColumns+`
FROM cards
WHERE collection_id = ?
ORDER BY created_at
`, collectionID)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, store.NewStoreError("getItems", collectionID, err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, store.NewStoreError("getItems", collectionID, err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("getItems", collectionID, err)
	}
	log.Debug("found %d cards", len(cards))
	return cards, nil
}

func (s *Store) GetItem(ctx context.Context, collectionID, cardID string) (*models.Card, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+cardColumns+`
FROM cards
WHERE id = ? AND collection_id = ?
`, cardID, collectionID)

	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("getItem", cardID, store.ErrNotFound)
	}
	if err != nil {
		return nil, store.NewStoreError("getItem", cardID, err)
	}
	return &c, nil
}

func (s *Store) AddItem(ctx context.Context, collectionID string, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_store")

	now := time.Now().UnixMilli()
	card.ID = uuid.NewString()
	card.CollectionID = collectionID
	card.CreatedAt = now
	card.UpdatedAt = now
	log.Debug("inserting card: id=%s, front=%q", card.ID, card.Front)

	synonyms, antonyms, examples, err := marshalContent(card)
	if err != nil {
		return models.Card{}, store.NewStoreError("addItem", collectionID, err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO cards (`+cardColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, card.ID, card.CollectionID, card.Front, card.FrontCore, card.Back, card.BackCore,
		string(card.CardType), string(card.PartOfSpeech), card.Definition,
		synonyms, antonyms, examples, card.ImageURL, card.AudioURL, card.Notes,
		string(card.LearningStatus), card.ReviewedNumber,
		card.Stats.TotalReviews, card.Stats.CorrectAnswers, card.Stats.IncorrectAnswers,
		card.Stats.AverageResponseTimeMs, int(card.Stats.LastConfidence),
		card.Stats.StreakCount, card.Stats.Lapses,
		card.Schedule.IntervalDays, card.Schedule.EaseFactor, card.Schedule.NextReviewAt,
		card.Schedule.Repetitions, card.CreatedAt, card.UpdatedAt)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return models.Card{}, store.NewStoreError("addItem", collectionID, err)
	}
	return card, nil
}

func (s *Store) UpdateItem(ctx context.Context, collectionID, cardID string, card models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_store")
	log.Debug("updating card: id=%s, interval=%.1f, ease=%.2f", cardID, card.Schedule.IntervalDays, card.Schedule.EaseFactor)

	synonyms, antonyms, examples, err := marshalContent(card)
	if err != nil {
		return store.NewStoreError("updateItem", cardID, err)
	}

	res, err := s.db.ExecContext(ctx, `
UPDATE cards
SET front = ?, front_core = ?, back = ?, back_core = ?, card_type = ?, part_of_speech = ?,
    definition = ?, synonyms = ?, antonyms = ?, examples = ?, image_url = ?, audio_url = ?,
    notes = ?, learning_status = ?, reviewed_number = ?,
    total_reviews = ?, correct_answers = ?, incorrect_answers = ?, avg_response_time_ms = ?,
    last_confidence = ?, streak_count = ?, lapses = ?,
    interval_days = ?, ease_factor = ?, next_review_at = ?, repetitions = ?,
    updated_at = ?
WHERE id = ? AND collection_id = ?
`, card.Front, card.FrontCore, card.Back, card.BackCore, string(card.CardType), string(card.PartOfSpeech),
		card.Definition, synonyms, antonyms, examples, card.ImageURL, card.AudioURL,
		card.Notes, string(card.LearningStatus), card.ReviewedNumber,
		card.Stats.TotalReviews, card.Stats.CorrectAnswers, card.Stats.IncorrectAnswers,
		card.Stats.AverageResponseTimeMs, int(card.Stats.LastConfidence),
		card.Stats.StreakCount, card.Stats.Lapses,
		card.Schedule.IntervalDays, card.Schedule.EaseFactor, card.Schedule.NextReviewAt,
		card.Schedule.Repetitions, card.UpdatedAt, cardID, collectionID)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return store.NewStoreError("updateItem", cardID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.NewStoreError("updateItem", cardID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, collectionID, cardID string) error {
	log := logger.FromContext(ctx).WithPrefix("card_store")
	log.Debug("deleting card: id=%s", cardID)

	res, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ? AND collection_id = ?`, cardID, collectionID)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return store.NewStoreError("deleteItem", cardID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.NewStoreError("deleteItem", cardID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_store")

	query := sqlBuilder.Select(cardColumns).From("cards")
	if filter.CollectionID != "" {
		query = query.Where(squirrel.Eq{"collection_id": filter.CollectionID})
	}
	if filter.CardType != "" {
		query = query.Where(squirrel.Eq{"card_type": string(filter.CardType)})
	}
	if filter.LearningStatus != "" {
		query = query.Where(squirrel.Eq{"learning_status": string(filter.LearningStatus)})
	}
	if filter.DueBefore > 0 {
		query = query.Where(squirrel.LtOrEq{"next_review_at": filter.DueBefore})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"front": like},
			squirrel.Like{"back": like},
		})
	}

	query = query.OrderBy("updated_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, store.NewStoreError("listCards", filter.CollectionID, err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, store.NewStoreError("listCards", filter.CollectionID, err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, store.NewStoreError("listCards", filter.CollectionID, err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (models.Card, error) {
	var c models.Card
	var cardType, partOfSpeech, status string
	var synonyms, antonyms, examples string
	var lastConfidence int

	err := row.Scan(&c.ID, &c.CollectionID, &c.Front, &c.FrontCore, &c.Back, &c.BackCore,
		&cardType, &partOfSpeech, &c.Definition, &synonyms, &antonyms, &examples,
		&c.ImageURL, &c.AudioURL, &c.Notes, &status, &c.ReviewedNumber,
		&c.Stats.TotalReviews, &c.Stats.CorrectAnswers, &c.Stats.IncorrectAnswers,
		&c.Stats.AverageResponseTimeMs, &lastConfidence, &c.Stats.StreakCount, &c.Stats.Lapses,
		&c.Schedule.IntervalDays, &c.Schedule.EaseFactor, &c.Schedule.NextReviewAt,
		&c.Schedule.Repetitions, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Card{}, err
	}

	c.CardType = models.CardType(cardType)
	c.PartOfSpeech = models.PartOfSpeech(partOfSpeech)
	c.LearningStatus = models.LearningStatus(status)
	c.Stats.LastConfidence = models.ConfidenceLevel(lastConfidence)

	if err := json.Unmarshal([]byte(synonyms), &c.Synonyms); err != nil {
		return models.Card{}, err
	}
	if err := json.Unmarshal([]byte(antonyms), &c.Antonyms); err != nil {
		return models.Card{}, err
	}
	if err := json.Unmarshal([]byte(examples), &c.Examples); err != nil {
		return models.Card{}, err
	}
	return c, nil
}

func marshalContent(card models.Card) (synonyms, antonyms, examples string, err error) {
	sb, err := json.Marshal(emptySlice(card.Synonyms))
	if err != nil {
		return "", "", "", err
	}
	ab, err := json.Marshal(emptySlice(card.Antonyms))
	if err != nil {
		return "", "", "", err
	}
	ex := card.Examples
	if ex == nil {
		ex = []models.UsageExample{}
	}
	eb, err := json.Marshal(ex)
	if err != nil {
		return "", "", "", err
	}
	return string(sb), string(ab), string(eb), nil
}

func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
