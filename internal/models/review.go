package models

// ConfidenceLevel is the learner's self-reported recall difficulty for one
// review, ordered from hardest to easiest.
type ConfidenceLevel int

const (
	ConfidenceVeryHard ConfidenceLevel = iota + 1
	ConfidenceHard
	ConfidenceGood
	ConfidenceEasy
	ConfidenceVeryEasy
)

// Valid reports whether the level is within the 5-level domain.
func (c ConfidenceLevel) Valid() bool {
	return c >= ConfidenceVeryHard && c <= ConfidenceVeryEasy
}

// IsCorrect reports whether the response counts as correct, i.e. at or
// above the "good" threshold.
func (c ConfidenceLevel) IsCorrect() bool {
	return c >= ConfidenceGood
}

func (c ConfidenceLevel) String() string {
	switch c {
	case ConfidenceVeryHard:
		return "very_hard"
	case ConfidenceHard:
		return "hard"
	case ConfidenceGood:
		return "good"
	case ConfidenceEasy:
		return "easy"
	case ConfidenceVeryEasy:
		return "very_easy"
	default:
		return "unknown"
	}
}

// ReviewStats holds cumulative per-card review accounting.
// Invariant: TotalReviews == CorrectAnswers + IncorrectAnswers.
type ReviewStats struct {
	TotalReviews          int             `json:"total_reviews"`
	CorrectAnswers        int             `json:"correct_answers"`
	IncorrectAnswers      int             `json:"incorrect_answers"`
	AverageResponseTimeMs float64         `json:"average_response_time_ms"`
	LastConfidence        ConfidenceLevel `json:"last_confidence,omitempty"` // zero = never reviewed
	StreakCount           int             `json:"streak_count"`
	Lapses                int             `json:"lapses"`
}

// SpacedRepetitionState is the scheduling state of one card.
type SpacedRepetitionState struct {
	IntervalDays float64 `json:"interval_days"`
	EaseFactor   float64 `json:"ease_factor"`
	NextReviewAt int64   `json:"next_review_at"` // epoch ms
	Repetitions  int     `json:"repetitions"`    // consecutive successes since last lapse
}

// ReviewEvent is one row of the append-only review history.
type ReviewEvent struct {
	ID             int64           `json:"id"`
	CardID         string          `json:"card_id"`
	Confidence     ConfidenceLevel `json:"confidence"`
	ResponseTimeMs int64           `json:"response_time_ms"`
	ReviewedAt     int64           `json:"reviewed_at"` // epoch ms
}
