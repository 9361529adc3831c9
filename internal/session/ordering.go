package session

import (
	"sort"
	"time"

	"github.com/mrezvani/vocaflash/internal/models"
)

// Ordering policy parameters: cards touched within the recent window that
// are still under-reviewed jump the queue.
const (
	recentWindow      = 5 * 24 * time.Hour
	recentReviewLimit = 4
)

// OrderCards returns a new slice with the session ordering applied: first
// the "recent" partition (updated within the last five days and reviewed
// fewer than four times) sorted by ascending reviewedNumber, then the rest
// sorted by descending updatedAt with ascending reviewedNumber as the tie
// break. This front-loads cards still being learned without starving stale
// ones.
func OrderCards(cards []models.Card, now time.Time) []models.Card {
	cutoff := now.Add(-recentWindow).UnixMilli()

	var recent, older []models.Card
	for _, c := range cards {
		if c.UpdatedAt > cutoff && c.ReviewedNumber < recentReviewLimit {
			recent = append(recent, c)
		} else {
			older = append(older, c)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ReviewedNumber < recent[j].ReviewedNumber
	})
	sort.SliceStable(older, func(i, j int) bool {
		if older[i].UpdatedAt != older[j].UpdatedAt {
			return older[i].UpdatedAt > older[j].UpdatedAt
		}
		return older[i].ReviewedNumber < older[j].ReviewedNumber
	})

	ordered := make([]models.Card, 0, len(cards))
	ordered = append(ordered, recent...)
	ordered = append(ordered, older...)
	return ordered
}
