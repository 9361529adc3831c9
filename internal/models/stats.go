package models

// CollectionStats aggregates review progress across one collection.
type CollectionStats struct {
	CollectionID    string  `json:"collection_id"`
	TotalCards      int     `json:"total_cards"`
	TotalReviews    int     `json:"total_reviews"`
	CardsDue        int     `json:"cards_due"`
	CardsDueSoon    int     `json:"cards_due_soon"` // due within 24h
	CardsMastered   int     `json:"cards_mastered"`
	CardsStruggling int     `json:"cards_struggling"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	AvgEaseFactor   float64 `json:"avg_ease_factor"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
	RefreshedAt     int64   `json:"refreshed_at"` // epoch ms, 0 for live computation
}
