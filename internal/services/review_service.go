package services

import (
	"context"
	"time"

	"github.com/mrezvani/vocaflash/internal/errors"
	"github.com/mrezvani/vocaflash/internal/jobs"
	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/session"
	"github.com/mrezvani/vocaflash/internal/srs"
	"github.com/mrezvani/vocaflash/internal/store"
)

// SessionView is the API-facing snapshot of a running session.
type SessionView struct {
	SessionID    string                `json:"session_id"`
	CollectionID string                `json:"collection_id"`
	Cards        []models.Card         `json:"cards"`
	Position     int                   `json:"position"`
	Summary      models.SessionSummary `json:"summary"`
}

// ReviewService owns the live review sessions and applies graded responses
// through the session controller.
type ReviewService interface {
	StartSession(ctx context.Context, collectionID string) (*SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	Reveal(ctx context.Context, sessionID, cardID string) error
	RecordResponse(ctx context.Context, sessionID, cardID string, confidence models.ConfidenceLevel) (*models.Card, error)
	ResetCard(ctx context.Context, sessionID, cardID string) error
	Advance(ctx context.Context, sessionID string) (int, error)
	Previous(ctx context.Context, sessionID string) (int, error)
	GoTo(ctx context.Context, sessionID string, index int) error
	Summary(ctx context.Context, sessionID string) (*models.SessionSummary, error)
	AbandonSession(ctx context.Context, sessionID string) error
}

type reviewService struct {
	store     store.Store
	scheduler *srs.Scheduler
	sessions  *session.Manager
	queue     jobs.Queue
}

// NewReviewService creates a new ReviewService
func NewReviewService(s store.Store, scheduler *srs.Scheduler, sessions *session.Manager, queue jobs.Queue) ReviewService {
	return &reviewService{store: s, scheduler: scheduler, sessions: sessions, queue: queue}
}

func (s *reviewService) StartSession(ctx context.Context, collectionID string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	if _, err := s.store.GetCollection(ctx, collectionID); err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("collection", collectionID)
		}
		return nil, errors.NewStoreError(err)
	}

	cards, err := s.store.GetItems(ctx, collectionID)
	if err != nil {
		log.Error("failed to load cards for session: %v", err)
		return nil, errors.NewStoreError(err)
	}
	if len(cards) == 0 {
		return nil, errors.NewBadRequestError("collection has no cards to review")
	}

	due := 0
	now := time.Now()
	for _, card := range cards {
		if card.IsDue(now) {
			due++
		}
	}

	ctrl := s.sessions.Create(collectionID, cards, s.scheduler, s.store)
	log.Info("session started: session_id=%s, collection_id=%s, cards=%d, due=%d", ctrl.ID(), collectionID, ctrl.Len(), due)
	return viewOf(ctrl), nil
}

func (s *reviewService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	ctrl, err := s.controller(sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(ctrl), nil
}

func (s *reviewService) Reveal(ctx context.Context, sessionID, cardID string) error {
	ctrl, err := s.controller(sessionID)
	if err != nil {
		return err
	}
	return ctrl.Reveal(cardID)
}

func (s *reviewService) RecordResponse(ctx context.Context, sessionID, cardID string, confidence models.ConfidenceLevel) (*models.Card, error) {
	log := logger.FromContext(ctx)

	ctrl, err := s.controller(sessionID)
	if err != nil {
		return nil, err
	}

	res, err := ctrl.RecordResponse(ctx, cardID, confidence)
	if err != nil {
		return nil, err
	}

	// History and stats are best effort; the graded response is already
	// committed and must not be failed retroactively.
	event := models.ReviewEvent{
		CardID:         res.Card.ID,
		Confidence:     res.Confidence,
		ResponseTimeMs: res.ResponseTimeMs,
		ReviewedAt:     res.Card.UpdatedAt,
	}
	if err := s.store.InsertReviewEvent(ctx, event); err != nil {
		log.Warn("failed to store review event: %v", err)
	}
	if err := s.queue.EnqueueStatsRefresh(ctrl.CollectionID()); err != nil {
		log.Warn("failed to enqueue stats refresh: %v", err)
	}

	return &res.Card, nil
}

func (s *reviewService) ResetCard(ctx context.Context, sessionID, cardID string) error {
	ctrl, err := s.controller(sessionID)
	if err != nil {
		return err
	}
	return ctrl.ResetCard(cardID)
}

func (s *reviewService) Advance(ctx context.Context, sessionID string) (int, error) {
	ctrl, err := s.controller(sessionID)
	if err != nil {
		return 0, err
	}
	return ctrl.Advance(), nil
}

func (s *reviewService) Previous(ctx context.Context, sessionID string) (int, error) {
	ctrl, err := s.controller(sessionID)
	if err != nil {
		return 0, err
	}
	return ctrl.Previous(), nil
}

func (s *reviewService) GoTo(ctx context.Context, sessionID string, index int) error {
	ctrl, err := s.controller(sessionID)
	if err != nil {
		return err
	}
	return ctrl.GoTo(index)
}

func (s *reviewService) Summary(ctx context.Context, sessionID string) (*models.SessionSummary, error) {
	ctrl, err := s.controller(sessionID)
	if err != nil {
		return nil, err
	}
	summary := ctrl.Summary()
	return &summary, nil
}

func (s *reviewService) AbandonSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)
	if !s.sessions.Remove(sessionID) {
		return errors.NewNotFoundError("session", sessionID)
	}
	log.Info("session abandoned: session_id=%s", sessionID)
	return nil
}

func (s *reviewService) controller(sessionID string) (*session.Controller, error) {
	ctrl := s.sessions.Get(sessionID)
	if ctrl == nil {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return ctrl, nil
}

func viewOf(ctrl *session.Controller) *SessionView {
	return &SessionView{
		SessionID:    ctrl.ID(),
		CollectionID: ctrl.CollectionID(),
		Cards:        ctrl.Cards(),
		Position:     ctrl.Position(),
		Summary:      ctrl.Summary(),
	}
}
