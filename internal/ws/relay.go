package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"presentation-service/internal/models"
	"presentation-service/internal/observability"
	"presentation-service/internal/repositories"
)

// Relay dispatches inbound live events: validate the payload shape, attempt
// at most one persistence side-effect, then hand the result to the hub.
//
// A store failure never skips the broadcast. For event kinds with a success
// payload the room receives a null sentinel instead; for the rest the error
// is swallowed and the submitted data goes out unchanged.
type Relay struct {
	hub           *Hub
	presentations repositories.PresentationRepository
	questions     repositories.QuestionRepository
}

// NewRelay constructs a Relay.
func NewRelay(hub *Hub, presentations repositories.PresentationRepository, questions repositories.QuestionRepository) *Relay {
	return &Relay{hub: hub, presentations: presentations, questions: questions}
}

// HandleEvent processes one inbound frame from a client. Events from the
// same client arrive here sequentially; a slow store call only suspends that
// client's loop.
func (r *Relay) HandleEvent(ctx context.Context, client *Client, raw []byte) {
	var evt models.LiveEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		log.Printf("relay: dropping malformed frame from %s: %v", client.ID(), err)
		return
	}

	observability.IncWSEvent(evt.Event)

	switch evt.Event {
	case models.EventVote:
		r.handleVote(ctx, evt.Data)
	case models.EventChangeSlideIndex:
		r.hub.BroadcastGlobal(models.EventSlideIndexChanged, evt.Data)
	case models.EventStartPresent:
		r.hub.BroadcastGlobal(models.EventPresentStarted, evt.Data)
	case models.EventStopPresent:
		r.handleStopPresent(ctx, evt.Data)
	case models.EventStopPresentUpdateGroup:
		r.hub.BroadcastGlobal(models.EventPresentStoppedByGroup, evt.Data)
	case models.EventSendQuestion:
		r.handleSendQuestion(ctx, evt.Data)
	case models.EventUpdateQuestion:
		r.handleUpdateQuestion(ctx, evt.Data)
	case models.EventUpdateHistory:
		r.handleUpdateHistory(ctx, evt.Data)
	case models.EventJoinPresentation:
		r.handleJoin(client, evt.Data)
	case models.EventSendMessage:
		r.handleSendMessage(evt.Data)
	default:
		log.Printf("relay: unknown event %q from %s", evt.Event, client.ID())
	}
}

// handleVote persists the submitted presentation state, then broadcasts the
// submitted data to every connected client, or a null sentinel when the
// store call failed.
func (r *Relay) handleVote(ctx context.Context, data json.RawMessage) {
	var payload struct {
		ID string `json:"_id"`
	}
	_ = json.Unmarshal(data, &payload)

	if err := r.presentations.UpdateByID(ctx, payload.ID, data); err != nil {
		log.Printf("relay: vote persistence failed for %q: %v", payload.ID, err)
		observability.IncWSPersistenceError(models.EventVote)
		r.hub.BroadcastGlobal(models.EventVoted, nil)
		return
	}
	r.hub.BroadcastGlobal(models.EventVoted, data)
}

// handleStopPresent removes the presentation's questions and broadcasts the
// stop signal regardless of the delete outcome.
func (r *Relay) handleStopPresent(ctx context.Context, data json.RawMessage) {
	var presentationID string
	_ = json.Unmarshal(data, &presentationID)

	if err := r.questions.DeleteByPresentation(ctx, presentationID); err != nil {
		log.Printf("relay: question cleanup failed for %q: %v", presentationID, err)
		observability.IncWSPersistenceError(models.EventStopPresent)
	}
	r.hub.BroadcastGlobal(models.EventPresentStopped, data)
}

func (r *Relay) handleSendQuestion(ctx context.Context, data json.RawMessage) {
	var submission models.QuestionSubmission
	_ = json.Unmarshal(data, &submission)

	if submission.UserName == "" {
		submission.UserName = models.AnonymousName
	}

	created, err := r.questions.CreateQuestion(ctx, models.Question{
		PresentationID: submission.PresentationID,
		UserName:       submission.UserName,
		Content:        submission.Content,
		Vote:           0,
		HasAnswer:      false,
		CreatedDate:    time.Now(),
	})
	if err != nil {
		log.Printf("relay: question create failed: %v", err)
		observability.IncWSPersistenceError(models.EventSendQuestion)
		r.hub.BroadcastGlobal(models.EventQuestionSent, nil)
		return
	}
	r.hub.BroadcastGlobal(models.EventQuestionSent, created)
}

func (r *Relay) handleUpdateQuestion(ctx context.Context, data json.RawMessage) {
	var update models.QuestionVoteUpdate
	_ = json.Unmarshal(data, &update)

	updated, err := r.questions.UpdateVote(ctx, update.ID, update.Vote)
	if err != nil {
		log.Printf("relay: question update failed for %d: %v", update.ID, err)
		observability.IncWSPersistenceError(models.EventUpdateQuestion)
		r.hub.BroadcastGlobal(models.EventQuestionUpdated, nil)
		return
	}
	r.hub.BroadcastGlobal(models.EventQuestionUpdated, updated)
}

func (r *Relay) handleUpdateHistory(ctx context.Context, data json.RawMessage) {
	var update models.HistoryUpdate
	_ = json.Unmarshal(data, &update)

	if err := r.presentations.UpdateHistory(ctx, update.PresentationID, update.Data); err != nil {
		log.Printf("relay: history update failed for %q: %v", update.PresentationID, err)
		observability.IncWSPersistenceError(models.EventUpdateHistory)
		r.hub.BroadcastGlobal(models.EventHistoryUpdated, nil)
		return
	}
	r.hub.BroadcastGlobal(models.EventHistoryUpdated, data)
}

// handleJoin registers channel membership. No broadcast; the join is
// immediately visible to subsequent broadcasts.
func (r *Relay) handleJoin(client *Client, data json.RawMessage) {
	var roomID string
	_ = json.Unmarshal(data, &roomID)

	r.hub.Join(client, roomID)
	log.Printf("relay: connection %s joined room %s", client.ID(), roomID)
}

// handleSendMessage relays a chat message to the payload's room, once as the
// message itself and once as a notification.
func (r *Relay) handleSendMessage(data json.RawMessage) {
	var msg models.RoomMessage
	_ = json.Unmarshal(data, &msg)

	r.hub.Broadcast(msg.Room, models.EventMessageReceived, data)
	r.hub.Broadcast(msg.Room, models.EventMessageToNotify, data)
}
