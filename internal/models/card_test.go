package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrezvani/vocaflash/internal/models"
)

func TestCardIsDue(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		nextReviewAt int64
		want         bool
	}{
		{name: "never reviewed", nextReviewAt: 0, want: true},
		{name: "due in the past", nextReviewAt: now.Add(-time.Hour).UnixMilli(), want: true},
		{name: "due exactly now", nextReviewAt: now.UnixMilli(), want: true},
		{name: "due in the future", nextReviewAt: now.Add(time.Hour).UnixMilli(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.Card{
				Schedule: models.SpacedRepetitionState{NextReviewAt: tt.nextReviewAt},
			}
			assert.Equal(t, tt.want, c.IsDue(now))
		})
	}
}
