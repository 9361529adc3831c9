package srs

import (
	"math"
	"time"

	"github.com/mrezvani/vocaflash/internal/errors"
	"github.com/mrezvani/vocaflash/internal/models"
)

const msPerDay = 86_400_000

// Scheduler computes the next scheduling state for a card from its current
// state and one review outcome, SM-2 style. Schedule is pure: it reads no
// clock beyond the explicit now parameter and never mutates its input.
type Scheduler struct {
	cfg Config
}

// NewScheduler validates the configuration and returns a Scheduler.
func NewScheduler(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigurationError(err.Error())
	}
	return &Scheduler{cfg: cfg}, nil
}

// Config returns the scheduler's parameter set.
func (s *Scheduler) Config() Config {
	return s.cfg
}

// InitialState returns the scheduling state for a brand-new card: due
// immediately, default ease, no interval accrued.
func (s *Scheduler) InitialState(now time.Time) models.SpacedRepetitionState {
	return models.SpacedRepetitionState{
		IntervalDays: 0,
		EaseFactor:   DefaultEaseFactor,
		NextReviewAt: now.UnixMilli(),
		Repetitions:  0,
	}
}

// Schedule returns the next state after one review response. Confidence must
// be a valid level; callers validate at the boundary before reaching here.
//
// A response below the lapse threshold resets the interval to the initial
// value and repetitions to zero. A success advances repetitions and grows
// the interval: initial on the first success, the fixed second step on the
// second, then round(interval * ease * bonus) floored at the minimum.
func (s *Scheduler) Schedule(state models.SpacedRepetitionState, confidence models.ConfidenceLevel, now time.Time) models.SpacedRepetitionState {
	next := state

	ease := state.EaseFactor + s.cfg.easeDelta(confidence)
	next.EaseFactor = clamp(ease, s.cfg.MinEaseFactor, s.cfg.MaxEaseFactor)

	if confidence < s.cfg.LapseThreshold {
		next.IntervalDays = s.cfg.InitialIntervalDays
		next.Repetitions = 0
	} else {
		next.Repetitions = state.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = s.cfg.InitialIntervalDays
		case 2:
			next.IntervalDays = s.cfg.SecondIntervalDays
		default:
			next.IntervalDays = math.Round(state.IntervalDays * next.EaseFactor * s.cfg.intervalBonus(confidence))
		}
		if next.IntervalDays < s.cfg.MinimumIntervalDays {
			next.IntervalDays = s.cfg.MinimumIntervalDays
		}
	}

	next.NextReviewAt = now.UnixMilli() + int64(next.IntervalDays*msPerDay)
	return next
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
