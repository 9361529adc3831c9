package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mrezvani/vocaflash/internal/errors"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/services"
	"github.com/mrezvani/vocaflash/internal/session"
	"github.com/mrezvani/vocaflash/internal/srs"
	storepkg "github.com/mrezvani/vocaflash/internal/store"
	"github.com/mrezvani/vocaflash/internal/testutil/mocks"
)

func newReviewService(t *testing.T, store *mocks.MockStore, queue *mocks.MockJobQueue) services.ReviewService {
	t.Helper()
	scheduler, err := srs.NewScheduler(srs.DefaultConfig())
	require.NoError(t, err)
	return services.NewReviewService(store, scheduler, session.NewManager(), queue)
}

func testCards() []models.Card {
	return []models.Card{
		{
			ID:           "card-1",
			CollectionID: "coll-1",
			Front:        "meticulous",
			Back:         "دقیق",
			CardType:     models.CardTypeWord,
			Schedule:     models.SpacedRepetitionState{EaseFactor: 2.5},
		},
	}
}

func TestStartSession(t *testing.T) {
	store := new(mocks.MockStore)
	queue := new(mocks.MockJobQueue)
	svc := newReviewService(t, store, queue)

	store.On("GetCollection", mock.Anything, "coll-1").Return(&models.Collection{ID: "coll-1"}, nil)
	store.On("GetItems", mock.Anything, "coll-1").Return(testCards(), nil)

	view, err := svc.StartSession(context.Background(), "coll-1")
	require.NoError(t, err)
	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, "coll-1", view.CollectionID)
	assert.Len(t, view.Cards, 1)
	assert.Equal(t, 0, view.Position)
	store.AssertExpectations(t)
}

func TestStartSession_UnknownCollection(t *testing.T) {
	store := new(mocks.MockStore)
	queue := new(mocks.MockJobQueue)
	svc := newReviewService(t, store, queue)

	store.On("GetCollection", mock.Anything, "missing").
		Return(nil, storepkg.NewStoreError("getCollection", "missing", storepkg.ErrNotFound))

	_, err := svc.StartSession(context.Background(), "missing")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestStartSession_EmptyCollection(t *testing.T) {
	store := new(mocks.MockStore)
	queue := new(mocks.MockJobQueue)
	svc := newReviewService(t, store, queue)

	store.On("GetCollection", mock.Anything, "coll-1").Return(&models.Collection{ID: "coll-1"}, nil)
	store.On("GetItems", mock.Anything, "coll-1").Return([]models.Card{}, nil)

	_, err := svc.StartSession(context.Background(), "coll-1")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)
}

func TestSessionNotFound(t *testing.T) {
	store := new(mocks.MockStore)
	queue := new(mocks.MockJobQueue)
	svc := newReviewService(t, store, queue)

	_, err := svc.GetSession(context.Background(), "nope")
	require.Error(t, err)

	err = svc.Reveal(context.Background(), "nope", "card-1")
	require.Error(t, err)

	err = svc.AbandonSession(context.Background(), "nope")
	require.Error(t, err)
}

func TestRecordResponse_PersistsAndEnqueuesRefresh(t *testing.T) {
	store := new(mocks.MockStore)
	queue := new(mocks.MockJobQueue)
	svc := newReviewService(t, store, queue)
	ctx := context.Background()

	store.On("GetCollection", mock.Anything, "coll-1").Return(&models.Collection{ID: "coll-1"}, nil)
	store.On("GetItems", mock.Anything, "coll-1").Return(testCards(), nil)
	store.On("UpdateItem", mock.Anything, "coll-1", "card-1", mock.AnythingOfType("models.Card")).Return(nil)
	store.On("InsertReviewEvent", mock.Anything, mock.AnythingOfType("models.ReviewEvent")).Return(nil)
	queue.On("EnqueueStatsRefresh", "coll-1").Return(nil)

	view, err := svc.StartSession(ctx, "coll-1")
	require.NoError(t, err)

	require.NoError(t, svc.Reveal(ctx, view.SessionID, "card-1"))

	card, err := svc.RecordResponse(ctx, view.SessionID, "card-1", models.ConfidenceGood)
	require.NoError(t, err)
	assert.Equal(t, 1, card.ReviewedNumber)
	assert.Equal(t, 1.0, card.Schedule.IntervalDays)
	assert.Equal(t, models.StatusLearning, card.LearningStatus)

	store.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestRecordResponse_RefreshFailureIsNotFatal(t *testing.T) {
	store := new(mocks.MockStore)
	queue := new(mocks.MockJobQueue)
	svc := newReviewService(t, store, queue)
	ctx := context.Background()

	store.On("GetCollection", mock.Anything, "coll-1").Return(&models.Collection{ID: "coll-1"}, nil)
	store.On("GetItems", mock.Anything, "coll-1").Return(testCards(), nil)
	store.On("UpdateItem", mock.Anything, "coll-1", "card-1", mock.AnythingOfType("models.Card")).Return(nil)
	store.On("InsertReviewEvent", mock.Anything, mock.AnythingOfType("models.ReviewEvent")).Return(nil)
	queue.On("EnqueueStatsRefresh", "coll-1").Return(assert.AnError)

	view, err := svc.StartSession(ctx, "coll-1")
	require.NoError(t, err)

	require.NoError(t, svc.Reveal(ctx, view.SessionID, "card-1"))

	_, err = svc.RecordResponse(ctx, view.SessionID, "card-1", models.ConfidenceGood)
	assert.NoError(t, err)
}

func TestAbandonSession(t *testing.T) {
	store := new(mocks.MockStore)
	queue := new(mocks.MockJobQueue)
	svc := newReviewService(t, store, queue)
	ctx := context.Background()

	store.On("GetCollection", mock.Anything, "coll-1").Return(&models.Collection{ID: "coll-1"}, nil)
	store.On("GetItems", mock.Anything, "coll-1").Return(testCards(), nil)

	view, err := svc.StartSession(ctx, "coll-1")
	require.NoError(t, err)

	require.NoError(t, svc.AbandonSession(ctx, view.SessionID))

	_, err = svc.GetSession(ctx, view.SessionID)
	assert.Error(t, err)
}
