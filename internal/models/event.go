package models

import "encoding/json"

// Inbound relay event kinds. The set is closed; the relay dispatches through
// a single switch so a new kind cannot be forgotten silently.
const (
	EventVote                    = "vote"
	EventChangeSlideIndex        = "clientChangeSlideIndex"
	EventStartPresent            = "clientStartPresent"
	EventStopPresent             = "clientStopPresent"
	EventStopPresentUpdateGroup  = "clientStopPresentByUpdateGroup"
	EventSendQuestion            = "clientSendQuestion"
	EventUpdateQuestion          = "clientUpdateQuestion"
	EventUpdateHistory           = "clientUpdateHistory"
	EventJoinPresentation        = "join_presentation"
	EventSendMessage             = "sendMessage"
)

// Outbound relay event kinds.
const (
	EventVoted                    = "voted"
	EventSlideIndexChanged        = "changeSlideIndex"
	EventPresentStarted           = "startPresent"
	EventPresentStopped           = "stopPresent"
	EventPresentStoppedByGroup    = "stopPresentByUpdateGroup"
	EventQuestionSent             = "sendQuestion"
	EventQuestionUpdated          = "updateQuestion"
	EventHistoryUpdated           = "updateHistory"
	EventMessageReceived          = "receiveMessage"
	EventMessageToNotify          = "messageToNotify"
)

// LiveEvent is the wire envelope for relay traffic in both directions.
type LiveEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// QuestionSubmission is the payload of a clientSendQuestion event. Missing
// fields keep their zero value; the relay fills in defaults.
type QuestionSubmission struct {
	UserName       string `json:"userName"`
	PresentationID string `json:"presentationId"`
	Content        string `json:"content"`
}

// QuestionVoteUpdate is the payload of a clientUpdateQuestion event.
type QuestionVoteUpdate struct {
	ID   int `json:"_id"`
	Vote int `json:"vote"`
}

// HistoryUpdate is the payload of a clientUpdateHistory event.
type HistoryUpdate struct {
	PresentationID string          `json:"presentationId"`
	Data           json.RawMessage `json:"data"`
}

// RoomMessage is the payload of a sendMessage event. Only the room field is
// inspected; the rest is relayed verbatim.
type RoomMessage struct {
	Room string `json:"room"`
}
