package srs

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mrezvani/vocaflash/internal/models"
)

// DefaultEaseFactor is the ease assigned to brand-new cards.
const DefaultEaseFactor = 2.5

// Config holds the tunable parameters of the scheduling algorithm.
// All fields have working defaults; see DefaultConfig.
type Config struct {
	// InitialIntervalDays is the interval after the first successful review
	// and after every lapse.
	InitialIntervalDays float64 `validate:"gt=0"`

	// SecondIntervalDays is the fixed interval after the second consecutive
	// successful review (SM-2 convention).
	SecondIntervalDays float64 `validate:"gt=0"`

	// MinimumIntervalDays floors every computed interval.
	MinimumIntervalDays float64 `validate:"gt=0"`

	MinEaseFactor float64 `validate:"gt=0"`
	MaxEaseFactor float64 `validate:"gt=0"`

	// Ease adjustments applied per confidence level.
	EaseDeltaVeryHard float64
	EaseDeltaHard     float64
	EaseDeltaGood     float64
	EaseDeltaEasy     float64
	EaseDeltaVeryEasy float64

	// Interval growth bonus applied on top of the ease factor for the
	// easier success grades.
	IntervalBonusEasy     float64 `validate:"gte=1"`
	IntervalBonusVeryEasy float64 `validate:"gte=1"`

	// LapseThreshold is the confidence below which a response counts as a
	// failure for scheduling purposes.
	LapseThreshold models.ConfidenceLevel
}

// DefaultConfig returns the standard SM-2-style parameter set.
func DefaultConfig() Config {
	return Config{
		InitialIntervalDays:   1,
		SecondIntervalDays:    6,
		MinimumIntervalDays:   1,
		MinEaseFactor:         1.3,
		MaxEaseFactor:         3.0,
		EaseDeltaVeryHard:     -0.3,
		EaseDeltaHard:         -0.15,
		EaseDeltaGood:         0,
		EaseDeltaEasy:         0.10,
		EaseDeltaVeryEasy:     0.15,
		IntervalBonusEasy:     1.3,
		IntervalBonusVeryEasy: 1.5,
		LapseThreshold:        models.ConfidenceGood,
	}
}

var validate = validator.New()

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.MinEaseFactor > c.MaxEaseFactor {
		return fmt.Errorf("minEaseFactor %.2f exceeds maxEaseFactor %.2f", c.MinEaseFactor, c.MaxEaseFactor)
	}
	if !c.LapseThreshold.Valid() {
		return fmt.Errorf("lapseThreshold %d outside confidence range", c.LapseThreshold)
	}
	return nil
}

func (c Config) easeDelta(confidence models.ConfidenceLevel) float64 {
	switch confidence {
	case models.ConfidenceVeryHard:
		return c.EaseDeltaVeryHard
	case models.ConfidenceHard:
		return c.EaseDeltaHard
	case models.ConfidenceGood:
		return c.EaseDeltaGood
	case models.ConfidenceEasy:
		return c.EaseDeltaEasy
	case models.ConfidenceVeryEasy:
		return c.EaseDeltaVeryEasy
	default:
		return 0
	}
}

func (c Config) intervalBonus(confidence models.ConfidenceLevel) float64 {
	switch confidence {
	case models.ConfidenceEasy:
		return c.IntervalBonusEasy
	case models.ConfidenceVeryEasy:
		return c.IntervalBonusVeryEasy
	default:
		return 1.0
	}
}
