package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/srs"
)

func newScheduler(t *testing.T) *srs.Scheduler {
	t.Helper()
	s, err := srs.NewScheduler(srs.DefaultConfig())
	require.NoError(t, err)
	return s
}

func TestSchedule_GraduationSequence(t *testing.T) {
	s := newScheduler(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	state := models.SpacedRepetitionState{IntervalDays: 1, EaseFactor: 2.5, Repetitions: 0}

	state = s.Schedule(state, models.ConfidenceGood, now)
	assert.Equal(t, 1.0, state.IntervalDays, "first success uses the initial interval")
	assert.Equal(t, 2.5, state.EaseFactor)
	assert.Equal(t, 1, state.Repetitions)

	state = s.Schedule(state, models.ConfidenceGood, now)
	assert.Equal(t, 6.0, state.IntervalDays, "second success uses the fixed second step")
	assert.Equal(t, 2, state.Repetitions)

	state = s.Schedule(state, models.ConfidenceGood, now)
	assert.Equal(t, 15.0, state.IntervalDays, "third success multiplies by ease (round(6*2.5))")
	assert.Equal(t, 3, state.Repetitions)
}

func TestSchedule_LapseResetsIntervalAndRepetitions(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()

	state := models.SpacedRepetitionState{IntervalDays: 15, EaseFactor: 2.5, Repetitions: 3}
	updated := s.Schedule(state, models.ConfidenceVeryHard, now)

	assert.Equal(t, 1.0, updated.IntervalDays, "lapse resets interval to the initial value")
	assert.InDelta(t, 2.2, updated.EaseFactor, 1e-9, "very hard drops ease by 0.3")
	assert.Equal(t, 0, updated.Repetitions, "lapse resets repetitions")
}

func TestSchedule_HardIsAlsoALapse(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()

	state := models.SpacedRepetitionState{IntervalDays: 40, EaseFactor: 2.0, Repetitions: 6}
	updated := s.Schedule(state, models.ConfidenceHard, now)

	assert.Equal(t, 1.0, updated.IntervalDays)
	assert.Equal(t, 0, updated.Repetitions)
	assert.InDelta(t, 1.85, updated.EaseFactor, 1e-9)
}

func TestSchedule_EaseFactorClamping(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()

	tests := []struct {
		name       string
		ease       float64
		confidence models.ConfidenceLevel
		expected   float64
	}{
		{"floor holds under repeated failure", 1.3, models.ConfidenceVeryHard, 1.3},
		{"ceiling holds under easy", 3.0, models.ConfidenceVeryEasy, 3.0},
		{"out-of-range low input is pulled up", 0.5, models.ConfidenceGood, 1.3},
		{"out-of-range high input is pulled down", 9.9, models.ConfidenceGood, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := models.SpacedRepetitionState{IntervalDays: 5, EaseFactor: tt.ease, Repetitions: 2}
			updated := s.Schedule(state, tt.confidence, now)
			assert.InDelta(t, tt.expected, updated.EaseFactor, 1e-9)
		})
	}
}

func TestSchedule_EasyBonusGrowsIntervalFaster(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()
	state := models.SpacedRepetitionState{IntervalDays: 10, EaseFactor: 2.0, Repetitions: 2}

	good := s.Schedule(state, models.ConfidenceGood, now)
	easy := s.Schedule(state, models.ConfidenceEasy, now)
	veryEasy := s.Schedule(state, models.ConfidenceVeryEasy, now)

	assert.Equal(t, 20.0, good.IntervalDays)
	assert.Equal(t, 27.0, easy.IntervalDays, "round(10 * 2.1 * 1.3)")
	assert.Equal(t, 32.0, veryEasy.IntervalDays, "round(10 * 2.15 * 1.5)")
}

func TestSchedule_NextReviewAtFromExplicitNow(t *testing.T) {
	s := newScheduler(t)
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)

	state := models.SpacedRepetitionState{IntervalDays: 1, EaseFactor: 2.5, Repetitions: 1}
	updated := s.Schedule(state, models.ConfidenceGood, now)

	require.Equal(t, 6.0, updated.IntervalDays)
	assert.Equal(t, now.UnixMilli()+6*86_400_000, updated.NextReviewAt)
}

func TestSchedule_MinimumIntervalFloor(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()

	// A tiny accrued interval times ease still lands at the floor.
	state := models.SpacedRepetitionState{IntervalDays: 0.1, EaseFactor: 1.3, Repetitions: 2}
	updated := s.Schedule(state, models.ConfidenceGood, now)

	assert.GreaterOrEqual(t, updated.IntervalDays, 1.0)
}

func TestSchedule_Deterministic(t *testing.T) {
	s := newScheduler(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	state := models.SpacedRepetitionState{IntervalDays: 6, EaseFactor: 2.5, Repetitions: 2}

	first := s.Schedule(state, models.ConfidenceEasy, now)
	second := s.Schedule(state, models.ConfidenceEasy, now)

	assert.Equal(t, first, second, "identical inputs must yield identical outputs")
	assert.Equal(t, 6.0, state.IntervalDays, "input state is not mutated")
}

func TestSchedule_InitialState(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()

	state := s.InitialState(now)
	assert.Equal(t, 0.0, state.IntervalDays)
	assert.Equal(t, srs.DefaultEaseFactor, state.EaseFactor)
	assert.Equal(t, now.UnixMilli(), state.NextReviewAt, "new cards are due immediately")
	assert.Equal(t, 0, state.Repetitions)
}

func TestNewScheduler_ConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*srs.Config)
	}{
		{"min ease above max ease", func(c *srs.Config) { c.MinEaseFactor = 3.5 }},
		{"zero initial interval", func(c *srs.Config) { c.InitialIntervalDays = 0 }},
		{"negative minimum interval", func(c *srs.Config) { c.MinimumIntervalDays = -1 }},
		{"interval bonus below one", func(c *srs.Config) { c.IntervalBonusEasy = 0.5 }},
		{"lapse threshold out of range", func(c *srs.Config) { c.LapseThreshold = 9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := srs.DefaultConfig()
			tt.mutate(&cfg)
			_, err := srs.NewScheduler(cfg)
			require.Error(t, err)
		})
	}
}
