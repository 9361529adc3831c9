package srs

import "github.com/mrezvani/vocaflash/internal/models"

// Thresholds for the derived learning status label.
const (
	masteredRepetitions  = 5
	masteredIntervalDays = 30
	reviewingRepetitions = 2
)

// DeriveStatus maps a card's current statistics and schedule onto a learning
// status label. The mastered rule follows the usual SM-2 heuristic: enough
// consecutive successes, a long interval, and a comfortable last response.
func DeriveStatus(stats models.ReviewStats, schedule models.SpacedRepetitionState) models.LearningStatus {
	switch {
	case stats.TotalReviews == 0:
		return models.StatusNew
	case stats.LastConfidence != 0 && !stats.LastConfidence.IsCorrect():
		return models.StatusForgotten
	case schedule.Repetitions >= masteredRepetitions &&
		schedule.IntervalDays >= masteredIntervalDays &&
		stats.LastConfidence >= models.ConfidenceEasy:
		return models.StatusMastered
	case schedule.Repetitions >= reviewingRepetitions:
		return models.StatusReviewing
	default:
		return models.StatusLearning
	}
}
