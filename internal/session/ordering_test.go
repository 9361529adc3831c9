package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/session"
)

func cardAt(id string, updatedDaysAgo int, reviewedNumber int, now time.Time) models.Card {
	return models.Card{
		ID:             id,
		UpdatedAt:      now.Add(-time.Duration(updatedDaysAgo) * 24 * time.Hour).UnixMilli(),
		ReviewedNumber: reviewedNumber,
	}
}

func ids(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestOrderCards_RecentPartitionFirst(t *testing.T) {
	now := time.Now()

	recent := cardAt("recent", 2, 1, now)
	stale := cardAt("stale", 10, 0, now)

	ordered := session.OrderCards([]models.Card{stale, recent}, now)

	require.Len(t, ordered, 2)
	assert.Equal(t, []string{"recent", "stale"}, ids(ordered),
		"a recently touched under-reviewed card outranks a staler one")
}

func TestOrderCards_RecentSortedByReviewedNumber(t *testing.T) {
	now := time.Now()

	cards := []models.Card{
		cardAt("thrice", 1, 3, now),
		cardAt("never", 2, 0, now),
		cardAt("once", 3, 1, now),
	}

	ordered := session.OrderCards(cards, now)
	assert.Equal(t, []string{"never", "once", "thrice"}, ids(ordered))
}

func TestOrderCards_OlderSortedByUpdatedAtThenReviewedNumber(t *testing.T) {
	now := time.Now()

	a := cardAt("a", 6, 2, now)
	b := cardAt("b", 8, 1, now)
	c := cardAt("c", 8, 0, now)
	c.UpdatedAt = b.UpdatedAt // same timestamp, tie broken by reviewedNumber

	ordered := session.OrderCards([]models.Card{a, b, c}, now)
	assert.Equal(t, []string{"a", "c", "b"}, ids(ordered))
}

func TestOrderCards_HeavilyReviewedRecentCardFallsBack(t *testing.T) {
	now := time.Now()

	// Touched yesterday but already reviewed many times: not "recent".
	veteran := cardAt("veteran", 1, 9, now)
	fresh := cardAt("fresh", 2, 0, now)

	ordered := session.OrderCards([]models.Card{veteran, fresh}, now)
	assert.Equal(t, []string{"fresh", "veteran"}, ids(ordered))
}

func TestOrderCards_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	cards := []models.Card{
		cardAt("x", 10, 3, now),
		cardAt("y", 1, 0, now),
	}

	_ = session.OrderCards(cards, now)
	assert.Equal(t, "x", cards[0].ID)
	assert.Equal(t, "y", cards[1].ID)
}
