package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/store"
	"github.com/mrezvani/vocaflash/internal/testutil"
)

func newCollection(t *testing.T, s store.CollectionStore) models.Collection {
	t.Helper()
	c, err := s.InsertCollection(context.Background(), models.Collection{
		Name:           "Daily Words",
		Language:       "english",
		TargetLanguage: "persian",
	})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	return c
}

func sampleCard() models.Card {
	return models.Card{
		Front:     "meticulous",
		FrontCore: "meticulous",
		Back:      "دقیق",
		CardType:  models.CardTypeWord,
		Synonyms:  []string{"thorough", "careful"},
		Examples: []models.UsageExample{
			{Example: "She is meticulous about details.", Translation: "او در جزئیات دقیق است."},
		},
		LearningStatus: models.StatusNew,
		Schedule: models.SpacedRepetitionState{
			EaseFactor: 2.5,
		},
	}
}

func TestCollectionCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created := newCollection(t, s)

	got, err := s.GetCollection(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Daily Words", got.Name)
	assert.Equal(t, "english", got.Language)
	assert.Equal(t, 0, got.CardCount)

	created.Name = "Weekly Words"
	require.NoError(t, s.UpdateCollection(ctx, created))

	got, err = s.GetCollection(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekly Words", got.Name)

	require.NoError(t, s.DeleteCollection(ctx, created.ID))

	_, err = s.GetCollection(ctx, created.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestCollectionNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.GetCollection(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = s.UpdateCollection(ctx, models.Collection{ID: "missing", Name: "x"})
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = s.DeleteCollection(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestCardRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	coll := newCollection(t, s)

	created, err := s.AddItem(ctx, coll.ID, sampleCard())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, coll.ID, created.CollectionID)
	assert.NotZero(t, created.CreatedAt)

	got, err := s.GetItem(ctx, coll.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "meticulous", got.Front)
	assert.Equal(t, "دقیق", got.Back)
	assert.Equal(t, []string{"thorough", "careful"}, got.Synonyms)
	require.Len(t, got.Examples, 1)
	assert.Equal(t, "She is meticulous about details.", got.Examples[0].Example)
	assert.Equal(t, 2.5, got.Schedule.EaseFactor)

	// Collection card count reflects the insert.
	c, err := s.GetCollection(ctx, coll.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.CardCount)
}

func TestCardUpdatePersistsReviewState(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	coll := newCollection(t, s)

	created, err := s.AddItem(ctx, coll.ID, sampleCard())
	require.NoError(t, err)

	created.ReviewedNumber = 1
	created.LearningStatus = models.StatusLearning
	created.Stats = models.ReviewStats{
		TotalReviews:          1,
		CorrectAnswers:        1,
		AverageResponseTimeMs: 1500,
		LastConfidence:        models.ConfidenceGood,
		StreakCount:           1,
	}
	created.Schedule = models.SpacedRepetitionState{
		IntervalDays: 1,
		EaseFactor:   2.5,
		NextReviewAt: time.Now().UnixMilli() + 86_400_000,
		Repetitions:  1,
	}
	created.UpdatedAt = time.Now().UnixMilli()
	require.NoError(t, s.UpdateItem(ctx, coll.ID, created.ID, created))

	got, err := s.GetItem(ctx, coll.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewedNumber)
	assert.Equal(t, models.StatusLearning, got.LearningStatus)
	assert.Equal(t, models.ConfidenceGood, got.Stats.LastConfidence)
	assert.Equal(t, 1500.0, got.Stats.AverageResponseTimeMs)
	assert.Equal(t, 1.0, got.Schedule.IntervalDays)
	assert.Equal(t, 1, got.Schedule.Repetitions)
}

func TestCardNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	coll := newCollection(t, s)

	_, err := s.GetItem(ctx, coll.ID, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = s.UpdateItem(ctx, coll.ID, "missing", sampleCard())
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = s.DeleteItem(ctx, coll.ID, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDeleteCollectionCascadesToCards(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	coll := newCollection(t, s)

	created, err := s.AddItem(ctx, coll.ID, sampleCard())
	require.NoError(t, err)

	require.NoError(t, s.DeleteCollection(ctx, coll.ID))

	_, err = s.GetItem(ctx, coll.ID, created.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestListCardsFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	coll := newCollection(t, s)

	word := sampleCard()
	word.LearningStatus = models.StatusLearning
	_, err := s.AddItem(ctx, coll.ID, word)
	require.NoError(t, err)

	idiom := models.Card{
		Front:          "break the ice",
		Back:           "سر صحبت را باز کردن",
		CardType:       models.CardTypeIdiom,
		LearningStatus: models.StatusNew,
		Schedule:       models.SpacedRepetitionState{EaseFactor: 2.5},
	}
	_, err = s.AddItem(ctx, coll.ID, idiom)
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter models.CardFilter
		fronts []string
	}{
		{
			name:   "by collection",
			filter: models.CardFilter{CollectionID: coll.ID},
			fronts: []string{"meticulous", "break the ice"},
		},
		{
			name:   "by card type",
			filter: models.CardFilter{CollectionID: coll.ID, CardType: models.CardTypeIdiom},
			fronts: []string{"break the ice"},
		},
		{
			name:   "by learning status",
			filter: models.CardFilter{CollectionID: coll.ID, LearningStatus: models.StatusLearning},
			fronts: []string{"meticulous"},
		},
		{
			name:   "by search term",
			filter: models.CardFilter{CollectionID: coll.ID, Search: "ice"},
			fronts: []string{"break the ice"},
		},
		{
			name:   "due now matches all new cards",
			filter: models.CardFilter{CollectionID: coll.ID, DueBefore: time.Now().UnixMilli()},
			fronts: []string{"meticulous", "break the ice"},
		},
		{
			name:   "no match",
			filter: models.CardFilter{CollectionID: coll.ID, Search: "nonexistent"},
			fronts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := s.ListCards(ctx, tt.filter)
			require.NoError(t, err)

			var fronts []string
			for _, c := range cards {
				fronts = append(fronts, c.Front)
			}
			assert.ElementsMatch(t, tt.fronts, fronts)
		})
	}
}

func TestReviewHistory(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	coll := newCollection(t, s)

	card, err := s.AddItem(ctx, coll.ID, sampleCard())
	require.NoError(t, err)

	base := time.Now().UnixMilli()
	for i, conf := range []models.ConfidenceLevel{models.ConfidenceHard, models.ConfidenceGood, models.ConfidenceEasy} {
		err := s.InsertReviewEvent(ctx, models.ReviewEvent{
			CardID:         card.ID,
			Confidence:     conf,
			ResponseTimeMs: int64(1000 + i*100),
			ReviewedAt:     base + int64(i*1000),
		})
		require.NoError(t, err)
	}

	events, err := s.ReviewHistory(ctx, card.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Most recent first.
	assert.Equal(t, models.ConfidenceEasy, events[0].Confidence)
	assert.Equal(t, models.ConfidenceHard, events[2].Confidence)

	events, err = s.ReviewHistory(ctx, card.ID, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestCollectionStatsLive(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	coll := newCollection(t, s)
	now := time.Now().UnixMilli()

	due := sampleCard()
	due.Schedule.NextReviewAt = now - 1000
	due.Stats = models.ReviewStats{TotalReviews: 4, CorrectAnswers: 3, IncorrectAnswers: 1}
	_, err := s.AddItem(ctx, coll.ID, due)
	require.NoError(t, err)

	mastered := sampleCard()
	mastered.Front = "resilient"
	mastered.LearningStatus = models.StatusMastered
	mastered.Schedule.NextReviewAt = now + 30*86_400_000
	mastered.Stats = models.ReviewStats{TotalReviews: 6, CorrectAnswers: 6}
	_, err = s.AddItem(ctx, coll.ID, mastered)
	require.NoError(t, err)

	st, err := s.CollectionStats(ctx, coll.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalCards)
	assert.Equal(t, 10, st.TotalReviews)
	assert.Equal(t, 1, st.CardsDue)
	assert.Equal(t, 1, st.CardsMastered)
	assert.InDelta(t, 0.9, st.OverallAccuracy, 1e-9)
}

func TestStatsCacheRefreshAndRead(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	coll := newCollection(t, s)
	now := time.Now().UnixMilli()

	_, err := s.CachedCollectionStats(ctx, coll.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	_, err = s.AddItem(ctx, coll.ID, sampleCard())
	require.NoError(t, err)

	require.NoError(t, s.RefreshCollectionStats(ctx, coll.ID, now))

	cached, err := s.CachedCollectionStats(ctx, coll.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.TotalCards)
	assert.NotZero(t, cached.RefreshedAt)

	// Second refresh upserts the same row.
	_, err = s.AddItem(ctx, coll.ID, func() models.Card {
		c := sampleCard()
		c.Front = "ambiguous"
		return c
	}())
	require.NoError(t, err)

	require.NoError(t, s.RefreshCollectionStats(ctx, coll.ID, now))

	cached, err = s.CachedCollectionStats(ctx, coll.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cached.TotalCards)
}
