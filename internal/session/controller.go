package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mrezvani/vocaflash/internal/errors"
	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/srs"
	"github.com/mrezvani/vocaflash/internal/store"
)

// cardState is the per-card state machine within a session.
type cardState int

const (
	stateHidden cardState = iota
	stateRevealed
	stateAnswered
)

func (s cardState) String() string {
	switch s {
	case stateHidden:
		return "hidden"
	case stateRevealed:
		return "revealed"
	case stateAnswered:
		return "answered"
	default:
		return "unknown"
	}
}

// Response is the committed outcome of one recorded response: the updated
// card snapshot plus the measured response time.
type Response struct {
	Card           models.Card
	Confidence     models.ConfidenceLevel
	ResponseTimeMs int64
}

// pendingResponse is a computed but not yet committed review outcome. It is
// kept when the persistence write fails so a retry re-issues the same write
// without recomputing, keeping reviewedNumber and the streak intact.
type pendingResponse struct {
	card           models.Card
	confidence     models.ConfidenceLevel
	responseTimeMs int64
}

// Controller owns the in-memory review queue for one collection. It applies
// the statistics tracker and the scheduler atomically per response, persists
// the resulting card through the store contract, and maintains session
// aggregates. A single logical caller is assumed; the mutex only guards the
// per-card in-flight accounting against overlapping awaited writes.
type Controller struct {
	id           string
	collectionID string
	scheduler    *srs.Scheduler
	cards        store.CardStore
	clock        func() time.Time

	mu         sync.Mutex
	queue      []models.Card
	index      map[string]int // card id -> queue position
	states     map[string]cardState
	revealedAt map[string]time.Time
	pending    map[string]*pendingResponse
	inFlight   map[string]bool
	cursor     int
	abandoned  bool

	startedAt   time.Time
	studied     int
	correct     int
	incorrect   int
	totalTimeMs int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock. Used by tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// New creates a session controller over the given cards, applying the
// session ordering policy. The slice is copied; callers keep their own.
func New(id, collectionID string, cards []models.Card, scheduler *srs.Scheduler, cardStore store.CardStore, opts ...Option) *Controller {
	c := &Controller{
		id:           id,
		collectionID: collectionID,
		scheduler:    scheduler,
		cards:        cardStore,
		clock:        time.Now,
		states:       make(map[string]cardState, len(cards)),
		revealedAt:   make(map[string]time.Time),
		pending:      make(map[string]*pendingResponse),
		inFlight:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.startedAt = c.clock()
	c.queue = OrderCards(cards, c.startedAt)
	c.index = make(map[string]int, len(c.queue))
	for i, card := range c.queue {
		c.index[card.ID] = i
		c.states[card.ID] = stateHidden
	}
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// CollectionID returns the collection this session reviews.
func (c *Controller) CollectionID() string {
	return c.collectionID
}

// Cards returns the ordered queue snapshot.
func (c *Controller) Cards() []models.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Card, len(c.queue))
	copy(out, c.queue)
	return out
}

// Reveal transitions a hidden card to revealed and records the reveal time,
// from which the response time is later measured.
func (c *Controller) Reveal(cardID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.abandoned {
		return errors.NewInvalidTransitionError("reveal", cardID, "abandoned")
	}
	state, ok := c.states[cardID]
	if !ok {
		return errors.NewNotFoundError("card", cardID)
	}
	if state != stateHidden {
		return errors.NewInvalidTransitionError("reveal", cardID, state.String())
	}

	c.states[cardID] = stateRevealed
	c.revealedAt[cardID] = c.clock()
	return nil
}

// ResetCard returns a revealed or answered card to hidden, discarding any
// uncommitted response. Committed responses are not undone.
func (c *Controller) ResetCard(cardID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.abandoned {
		return errors.NewInvalidTransitionError("reset", cardID, "abandoned")
	}
	state, ok := c.states[cardID]
	if !ok {
		return errors.NewNotFoundError("card", cardID)
	}
	if state == stateHidden {
		return errors.NewInvalidTransitionError("reset", cardID, state.String())
	}
	if c.inFlight[cardID] {
		return errors.NewInFlightConflictError(cardID)
	}

	c.states[cardID] = stateHidden
	delete(c.revealedAt, cardID)
	delete(c.pending, cardID)
	return nil
}

// RecordResponse applies one graded response to a revealed card: it folds
// the outcome into the card's statistics and schedule, increments
// reviewedNumber, persists the new snapshot, updates session aggregates and
// returns the updated card.
//
// On a persistence failure the computed snapshot is retained and the card
// stays revealed; calling RecordResponse again with the same confidence
// re-issues the identical write without recomputation, so a retry can never
// double-count. Aggregates and the answered transition happen only once the
// write succeeds.
func (c *Controller) RecordResponse(ctx context.Context, cardID string, confidence models.ConfidenceLevel) (Response, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	if !confidence.Valid() {
		return Response{}, errors.NewValidationError("confidence", "must be between 1 and 5")
	}

	c.mu.Lock()
	if c.abandoned {
		c.mu.Unlock()
		return Response{}, errors.NewInvalidTransitionError("recordResponse", cardID, "abandoned")
	}
	state, ok := c.states[cardID]
	if !ok {
		c.mu.Unlock()
		return Response{}, errors.NewNotFoundError("card", cardID)
	}
	if state != stateRevealed {
		c.mu.Unlock()
		return Response{}, errors.NewInvalidTransitionError("recordResponse", cardID, state.String())
	}
	if c.inFlight[cardID] {
		c.mu.Unlock()
		return Response{}, errors.NewInFlightConflictError(cardID)
	}

	p := c.pending[cardID]
	if p == nil {
		now := c.clock()
		responseTime := now.Sub(c.revealedAt[cardID]).Milliseconds()
		if responseTime < 0 {
			responseTime = 0
		}

		current := c.queue[c.index[cardID]]
		next := current
		next.Stats = srs.UpdateStats(current.Stats, confidence, responseTime)
		next.Schedule = c.scheduler.Schedule(current.Schedule, confidence, now)
		next.LearningStatus = srs.DeriveStatus(next.Stats, next.Schedule)
		next.ReviewedNumber = current.ReviewedNumber + 1
		next.UpdatedAt = now.UnixMilli()

		p = &pendingResponse{card: next, confidence: confidence, responseTimeMs: responseTime}
		c.pending[cardID] = p
		log.Debug("computed response: card_id=%s, confidence=%s, interval=%.1f, ease=%.2f",
			cardID, confidence, next.Schedule.IntervalDays, next.Schedule.EaseFactor)
	} else {
		if p.confidence != confidence {
			c.mu.Unlock()
			return Response{}, errors.NewBadRequestError(fmt.Sprintf(
				"card %s has a pending response with confidence %s; retry with the same confidence or reset the card", cardID, p.confidence))
		}
		log.Debug("retrying pending write: card_id=%s", cardID)
	}

	c.inFlight[cardID] = true
	c.mu.Unlock()

	err := c.cards.UpdateItem(ctx, c.collectionID, cardID, p.card)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight[cardID] = false

	if err != nil {
		log.Warn("persistence write failed, response kept for retry: card_id=%s: %v", cardID, err)
		return Response{}, errors.NewStoreError(err)
	}

	// Commit: working copy, state machine and aggregates advance together.
	c.queue[c.index[cardID]] = p.card
	c.states[cardID] = stateAnswered
	delete(c.pending, cardID)
	delete(c.revealedAt, cardID)

	c.studied++
	if p.confidence.IsCorrect() {
		c.correct++
	} else {
		c.incorrect++
	}
	c.totalTimeMs += p.responseTimeMs

	return Response{Card: p.card, Confidence: p.confidence, ResponseTimeMs: p.responseTimeMs}, nil
}

// Advance moves the cursor to the next card; it stops at the end.
func (c *Controller) Advance() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor < len(c.queue)-1 {
		c.cursor++
	}
	return c.cursor
}

// Previous moves the cursor to the previous card; it stops at the start.
func (c *Controller) Previous() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor > 0 {
		c.cursor--
	}
	return c.cursor
}

// GoTo moves the cursor to index.
func (c *Controller) GoTo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.queue) {
		return errors.NewBadRequestError("index out of range")
	}
	c.cursor = index
	return nil
}

// Current returns the card under the cursor.
func (c *Controller) Current() (models.Card, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return models.Card{}, false
	}
	return c.queue[c.cursor], true
}

// Position returns the cursor index.
func (c *Controller) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Len returns the queue length.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Abandon ends the session. In-flight writes complete, but no further
// operations are accepted.
func (c *Controller) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.abandoned = true
}

// Abandoned reports whether the session has been abandoned.
func (c *Controller) Abandoned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.abandoned
}

// Summary returns a read-only snapshot of the session aggregates.
func (c *Controller) Summary() models.SessionSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	accuracy := 0.0
	if c.studied > 0 {
		accuracy = float64(c.correct) / float64(c.studied)
	}
	return models.SessionSummary{
		SessionID:   c.id,
		Studied:     c.studied,
		Correct:     c.correct,
		Incorrect:   c.incorrect,
		TotalTimeMs: c.totalTimeMs,
		StartedAt:   c.startedAt.UnixMilli(),
		Remaining:   len(c.queue) - c.studied,
		Accuracy:    accuracy,
	}
}
