package srs

import "github.com/mrezvani/vocaflash/internal/models"

// UpdateStats folds one review outcome into a card's cumulative statistics.
// Pure: the input is never mutated. The response time average is a running
// mean over all reviews, and TotalReviews == CorrectAnswers +
// IncorrectAnswers holds on the output whenever it held on the input.
func UpdateStats(stats models.ReviewStats, confidence models.ConfidenceLevel, responseTimeMs int64) models.ReviewStats {
	next := stats
	next.TotalReviews = stats.TotalReviews + 1

	if confidence.IsCorrect() {
		next.CorrectAnswers = stats.CorrectAnswers + 1
		next.StreakCount = stats.StreakCount + 1
	} else {
		next.IncorrectAnswers = stats.IncorrectAnswers + 1
		next.StreakCount = 0
		next.Lapses = stats.Lapses + 1
	}

	total := stats.AverageResponseTimeMs*float64(stats.TotalReviews) + float64(responseTimeMs)
	next.AverageResponseTimeMs = total / float64(next.TotalReviews)
	next.LastConfidence = confidence
	return next
}
