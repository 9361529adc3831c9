package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/mrezvani/vocaflash/internal/errors"
	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/srs"
	"github.com/mrezvani/vocaflash/internal/store"
)

// CardService handles card content management
type CardService interface {
	AddCard(ctx context.Context, collectionID string, card models.Card) (*models.Card, error)
	GetCard(ctx context.Context, collectionID, cardID string) (*models.Card, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	UpdateCardContent(ctx context.Context, collectionID, cardID string, card models.Card) (*models.Card, error)
	DeleteCard(ctx context.Context, collectionID, cardID string) error
	ReviewHistory(ctx context.Context, cardID string, limit int) ([]models.ReviewEvent, error)
}

type cardService struct {
	cards     store.CardStore
	history   store.HistoryStore
	scheduler *srs.Scheduler
}

// NewCardService creates a new CardService
func NewCardService(cards store.CardStore, history store.HistoryStore, scheduler *srs.Scheduler) CardService {
	return &cardService{cards: cards, history: history, scheduler: scheduler}
}

func (s *cardService) AddCard(ctx context.Context, collectionID string, card models.Card) (*models.Card, error) {
	log := logger.FromContext(ctx)

	card.Front = strings.TrimSpace(card.Front)
	card.Back = strings.TrimSpace(card.Back)
	if card.Front == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}
	if card.Back == "" {
		return nil, errors.NewValidationError("back", "must not be empty")
	}
	if card.CardType == "" {
		card.CardType = models.CardTypeWord
	}
	if !card.CardType.Valid() {
		return nil, errors.NewValidationError("card_type", "unknown card type")
	}

	// New cards start with a clean slate: zero stats, due immediately.
	card.Stats = models.ReviewStats{}
	card.Schedule = s.scheduler.InitialState(time.Now())
	card.ReviewedNumber = 0
	card.LearningStatus = models.StatusNew

	created, err := s.cards.AddItem(ctx, collectionID, card)
	if err != nil {
		log.Error("failed to add card: %v", err)
		return nil, errors.NewStoreError(err)
	}
	log.Info("card added: id=%s, front=%q", created.ID, created.Front)
	return &created, nil
}

func (s *cardService) GetCard(ctx context.Context, collectionID, cardID string) (*models.Card, error) {
	card, err := s.cards.GetItem(ctx, collectionID, cardID)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("card", cardID)
		}
		return nil, errors.NewStoreError(err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	cards, err := s.cards.ListCards(ctx, filter)
	if err != nil {
		return nil, errors.NewStoreError(err)
	}
	return cards, nil
}

// UpdateCardContent replaces content fields only; review statistics and
// scheduling state always carry over from the stored card.
func (s *cardService) UpdateCardContent(ctx context.Context, collectionID, cardID string, card models.Card) (*models.Card, error) {
	log := logger.FromContext(ctx)

	current, err := s.cards.GetItem(ctx, collectionID, cardID)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("card", cardID)
		}
		return nil, errors.NewStoreError(err)
	}

	card.Front = strings.TrimSpace(card.Front)
	card.Back = strings.TrimSpace(card.Back)
	if card.Front == "" || card.Back == "" {
		return nil, errors.NewValidationError("front/back", "must not be empty")
	}
	if card.CardType != "" && !card.CardType.Valid() {
		return nil, errors.NewValidationError("card_type", "unknown card type")
	}

	updated := *current
	updated.Front = card.Front
	updated.FrontCore = card.FrontCore
	updated.Back = card.Back
	updated.BackCore = card.BackCore
	if card.CardType != "" {
		updated.CardType = card.CardType
	}
	updated.PartOfSpeech = card.PartOfSpeech
	updated.Definition = card.Definition
	updated.Synonyms = card.Synonyms
	updated.Antonyms = card.Antonyms
	updated.Examples = card.Examples
	updated.ImageURL = card.ImageURL
	updated.AudioURL = card.AudioURL
	updated.Notes = card.Notes
	updated.UpdatedAt = time.Now().UnixMilli()

	if err := s.cards.UpdateItem(ctx, collectionID, cardID, updated); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewStoreError(err)
	}
	return &updated, nil
}

func (s *cardService) DeleteCard(ctx context.Context, collectionID, cardID string) error {
	log := logger.FromContext(ctx)

	if err := s.cards.DeleteItem(ctx, collectionID, cardID); err != nil {
		if isNotFound(err) {
			return errors.NewNotFoundError("card", cardID)
		}
		log.Error("failed to delete card: %v", err)
		return errors.NewStoreError(err)
	}
	return nil
}

func (s *cardService) ReviewHistory(ctx context.Context, cardID string, limit int) ([]models.ReviewEvent, error) {
	events, err := s.history.ReviewHistory(ctx, cardID, limit)
	if err != nil {
		return nil, errors.NewStoreError(err)
	}
	return events, nil
}

func isNotFound(err error) bool {
	return stderrors.Is(err, store.ErrNotFound)
}
