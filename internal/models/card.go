package models

import "time"

// CardType classifies the kind of learnable content a card carries.
type CardType string

const (
	CardTypeWord          CardType = "word"
	CardTypeIdiom         CardType = "idiom"
	CardTypePhrase        CardType = "phrase"
	CardTypeSentence      CardType = "sentence"
	CardTypeGrammar       CardType = "grammar"
	CardTypePronunciation CardType = "pronunciation"
	CardTypeConversation  CardType = "conversation"
	CardTypeStanceMarker  CardType = "stance_marker"
	CardTypeCollocation   CardType = "collocation"
	CardTypeSlang         CardType = "slang"
)

// Valid reports whether the card type is one of the known values.
func (t CardType) Valid() bool {
	switch t {
	case CardTypeWord, CardTypeIdiom, CardTypePhrase, CardTypeSentence,
		CardTypeGrammar, CardTypePronunciation, CardTypeConversation,
		CardTypeStanceMarker, CardTypeCollocation, CardTypeSlang:
		return true
	}
	return false
}

// PartOfSpeech for word-type cards.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "noun"
	PartOfSpeechVerb         PartOfSpeech = "verb"
	PartOfSpeechAdjective    PartOfSpeech = "adjective"
	PartOfSpeechAdverb       PartOfSpeech = "adverb"
	PartOfSpeechPreposition  PartOfSpeech = "preposition"
	PartOfSpeechConjunction  PartOfSpeech = "conjunction"
	PartOfSpeechInterjection PartOfSpeech = "interjection"
	PartOfSpeechPronoun      PartOfSpeech = "pronoun"
	PartOfSpeechDeterminer   PartOfSpeech = "determiner"
)

// LearningStatus is a derived label describing where a card sits in the
// learning lifecycle. It is recomputed after every recorded response.
type LearningStatus string

const (
	StatusNew       LearningStatus = "new"
	StatusLearning  LearningStatus = "learning"
	StatusReviewing LearningStatus = "reviewing"
	StatusMastered  LearningStatus = "mastered"
	StatusForgotten LearningStatus = "forgotten"
)

// UsageExample is one example sentence with its translation.
type UsageExample struct {
	Example     string `json:"example"`
	Translation string `json:"translation"`
	Context     string `json:"context,omitempty"` // formal, informal, business, ...
}

// Card is a unit of learnable content together with its review state.
// Timestamps are epoch milliseconds; the storage layer owns CreatedAt and
// assigns ID on insert.
type Card struct {
	ID           string `json:"id,omitempty"`
	CollectionID string `json:"collection_id"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`

	Front     string `json:"front"`
	FrontCore string `json:"front_core,omitempty"`
	Back      string `json:"back"`
	BackCore  string `json:"back_core,omitempty"`

	CardType     CardType     `json:"card_type"`
	PartOfSpeech PartOfSpeech `json:"part_of_speech,omitempty"`

	Definition string         `json:"definition,omitempty"`
	Synonyms   []string       `json:"synonyms,omitempty"`
	Antonyms   []string       `json:"antonyms,omitempty"`
	Examples   []UsageExample `json:"examples,omitempty"`
	ImageURL   string         `json:"image_url,omitempty"`
	AudioURL   string         `json:"audio_url,omitempty"`
	Notes      string         `json:"notes,omitempty"`

	LearningStatus LearningStatus `json:"learning_status"`

	// ReviewedNumber is the lifetime count of review events, incremented
	// exactly once per committed response.
	ReviewedNumber int `json:"reviewed_number"`

	Stats    ReviewStats           `json:"review_stats"`
	Schedule SpacedRepetitionState `json:"spaced_repetition"`
}

// IsDue reports whether the card's next review time has passed.
func (c Card) IsDue(now time.Time) bool {
	return c.Schedule.NextReviewAt <= now.UnixMilli()
}

// CardFilter narrows card listings.
type CardFilter struct {
	CollectionID   string
	CardType       CardType
	LearningStatus LearningStatus
	DueBefore      int64 // epoch ms; 0 means no due constraint
	Search         string
	Limit          int
	Offset         int
}
