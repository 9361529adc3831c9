package models

// Collection groups cards for study. Language and TargetLanguage describe
// the direction of learning, e.g. english -> persian.
type Collection struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Level          string `json:"level,omitempty"` // beginner ... proficient
	Language       string `json:"language"`
	TargetLanguage string `json:"target_language"`
	CardCount      int    `json:"card_count"`
	CreatedAt      int64  `json:"created_at"`
	UpdatedAt      int64  `json:"updated_at"`
}
