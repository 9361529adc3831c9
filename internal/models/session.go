package models

// SessionSummary is a read-only snapshot of one review session's aggregates.
// Sessions live in memory only and are never persisted.
type SessionSummary struct {
	SessionID   string  `json:"session_id"`
	Studied     int     `json:"studied"`
	Correct     int     `json:"correct"`
	Incorrect   int     `json:"incorrect"`
	TotalTimeMs int64   `json:"total_time_ms"`
	StartedAt   int64   `json:"started_at"` // epoch ms
	Remaining   int     `json:"remaining"`
	Accuracy    float64 `json:"accuracy"` // 0..1, 0 when nothing studied
}
