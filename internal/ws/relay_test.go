package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"presentation-service/internal/mocks"
	"presentation-service/internal/models"
)

func frame(t *testing.T, event string, data any) []byte {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	raw, err := json.Marshal(models.LiveEvent{Event: event, Data: payload})
	require.NoError(t, err)
	return raw
}

func TestRelayVoteBroadcastsSubmittedState(t *testing.T) {
	hub := NewHub()
	presRepo := new(mocks.PresentationRepositoryMock)
	questionRepo := new(mocks.QuestionRepositoryMock)
	relay := NewRelay(hub, presRepo, questionRepo)

	alice, aliceConn := newTestClient("alice")
	hub.Register(alice)

	presRepo.On("UpdateByID", mock.Anything, "pres1", mock.Anything).Return(nil).Once()

	relay.HandleEvent(context.Background(), alice, frame(t, models.EventVote, map[string]any{"_id": "pres1", "slides": []any{}}))

	events := aliceConn.events(t)
	require.Len(t, events, 1)
	require.Equal(t, models.EventVoted, events[0].Event)
	require.NotEqual(t, "null", string(events[0].Data))
	presRepo.AssertExpectations(t)
}

func TestRelayVotePersistenceFailureBroadcastsNull(t *testing.T) {
	hub := NewHub()
	presRepo := new(mocks.PresentationRepositoryMock)
	relay := NewRelay(hub, presRepo, new(mocks.QuestionRepositoryMock))

	alice, aliceConn := newTestClient("alice")
	hub.Register(alice)

	presRepo.On("UpdateByID", mock.Anything, "pres1", mock.Anything).Return(assert.AnError).Once()

	relay.HandleEvent(context.Background(), alice, frame(t, models.EventVote, map[string]any{"_id": "pres1"}))

	events := aliceConn.events(t)
	require.Len(t, events, 1)
	require.Equal(t, models.EventVoted, events[0].Event)
	require.Equal(t, "null", string(events[0].Data))
	presRepo.AssertExpectations(t)
}

func TestRelaySendQuestionDefaultsToAnonymous(t *testing.T) {
	hub := NewHub()
	questionRepo := new(mocks.QuestionRepositoryMock)
	relay := NewRelay(hub, new(mocks.PresentationRepositoryMock), questionRepo)

	alice, aliceConn := newTestClient("alice")
	hub.Register(alice)

	created := models.Question{ID: 7, PresentationID: "pres1", UserName: models.AnonymousName, Content: "why?"}
	questionRepo.On("CreateQuestion", mock.Anything, mock.MatchedBy(func(q models.Question) bool {
		return q.UserName == models.AnonymousName && q.Vote == 0 && !q.HasAnswer
	})).Return(created, nil).Once()

	relay.HandleEvent(context.Background(), alice, frame(t, models.EventSendQuestion, map[string]any{
		"presentationId": "pres1",
		"content":        "why?",
	}))

	events := aliceConn.events(t)
	require.Len(t, events, 1)
	require.Equal(t, models.EventQuestionSent, events[0].Event)

	var got models.Question
	require.NoError(t, json.Unmarshal(events[0].Data, &got))
	require.Equal(t, 7, got.ID)
	require.Equal(t, models.AnonymousName, got.UserName)
	questionRepo.AssertExpectations(t)
}

func TestRelayUpdateQuestionFailureBroadcastsNull(t *testing.T) {
	hub := NewHub()
	questionRepo := new(mocks.QuestionRepositoryMock)
	relay := NewRelay(hub, new(mocks.PresentationRepositoryMock), questionRepo)

	alice, aliceConn := newTestClient("alice")
	hub.Register(alice)

	questionRepo.On("UpdateVote", mock.Anything, 9, 4).Return(models.Question{}, assert.AnError).Once()

	relay.HandleEvent(context.Background(), alice, frame(t, models.EventUpdateQuestion, map[string]any{"_id": 9, "vote": 4}))

	events := aliceConn.events(t)
	require.Len(t, events, 1)
	require.Equal(t, models.EventQuestionUpdated, events[0].Event)
	require.Equal(t, "null", string(events[0].Data))
	questionRepo.AssertExpectations(t)
}

func TestRelayStopPresentBroadcastsDespiteCleanupFailure(t *testing.T) {
	hub := NewHub()
	questionRepo := new(mocks.QuestionRepositoryMock)
	relay := NewRelay(hub, new(mocks.PresentationRepositoryMock), questionRepo)

	alice, aliceConn := newTestClient("alice")
	hub.Register(alice)

	questionRepo.On("DeleteByPresentation", mock.Anything, "pres1").Return(assert.AnError).Once()

	relay.HandleEvent(context.Background(), alice, frame(t, models.EventStopPresent, "pres1"))

	events := aliceConn.events(t)
	require.Len(t, events, 1)
	require.Equal(t, models.EventPresentStopped, events[0].Event)
	require.JSONEq(t, `"pres1"`, string(events[0].Data))
	questionRepo.AssertExpectations(t)
}

func TestRelaySlideChangeIsGlobal(t *testing.T) {
	hub := NewHub()
	relay := NewRelay(hub, new(mocks.PresentationRepositoryMock), new(mocks.QuestionRepositoryMock))

	alice, aliceConn := newTestClient("alice")
	bob, bobConn := newTestClient("bob")
	hub.Join(alice, "pres1")
	hub.Register(bob)

	relay.HandleEvent(context.Background(), alice, frame(t, models.EventChangeSlideIndex, map[string]any{"slideIndex": 3}))

	require.Len(t, aliceConn.events(t), 1)
	bobEvents := bobConn.events(t)
	require.Len(t, bobEvents, 1)
	require.Equal(t, models.EventSlideIndexChanged, bobEvents[0].Event)
}

func TestRelaySendMessageStaysInRoom(t *testing.T) {
	hub := NewHub()
	relay := NewRelay(hub, new(mocks.PresentationRepositoryMock), new(mocks.QuestionRepositoryMock))

	alice, aliceConn := newTestClient("alice")
	bob, bobConn := newTestClient("bob")
	carol, carolConn := newTestClient("carol")
	hub.Join(alice, "group-5")
	hub.Join(bob, "group-5")
	hub.Join(carol, "group-6")

	relay.HandleEvent(context.Background(), alice, frame(t, models.EventSendMessage, map[string]any{
		"room":    "group-5",
		"message": "hello",
	}))

	for name, fc := range map[string]*fakeConn{"alice": aliceConn, "bob": bobConn} {
		events := fc.events(t)
		require.Len(t, events, 2, name)
		require.Equal(t, models.EventMessageReceived, events[0].Event)
		require.Equal(t, models.EventMessageToNotify, events[1].Event)
	}
	require.Empty(t, carolConn.events(t))
}

func TestRelayJoinPresentationHasNoBroadcast(t *testing.T) {
	hub := NewHub()
	relay := NewRelay(hub, new(mocks.PresentationRepositoryMock), new(mocks.QuestionRepositoryMock))

	alice, aliceConn := newTestClient("alice")
	hub.Register(alice)

	relay.HandleEvent(context.Background(), alice, frame(t, models.EventJoinPresentation, "pres1"))

	require.Empty(t, aliceConn.events(t))
	require.Len(t, hub.ConnectionsOf("pres1"), 1)
}

func TestRelayDropsMalformedAndUnknownFrames(t *testing.T) {
	hub := NewHub()
	relay := NewRelay(hub, new(mocks.PresentationRepositoryMock), new(mocks.QuestionRepositoryMock))

	alice, aliceConn := newTestClient("alice")
	hub.Register(alice)

	relay.HandleEvent(context.Background(), alice, []byte("{not json"))
	relay.HandleEvent(context.Background(), alice, frame(t, "somethingElse", map[string]any{}))

	require.Empty(t, aliceConn.events(t))
}
