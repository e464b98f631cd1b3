// Package a2a implements the agent-to-agent peer protocol: typed peer
// messages exchanged over HTTP POST, an endpoint registry of known peers,
// and a dispatcher that routes incoming messages to kind handlers.
package a2a

import (
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// Built-in message kinds. RegisterHandler accepts any kind string, so the
// vocabulary is extensible; these are the kinds the protocol itself speaks.
const (
	KindQuizRequest      = "quiz_request"
	KindQuizResponse     = "quiz_response"
	KindQuestionRequest  = "question_request"
	KindQuestionResponse = "question_response"
	KindPing             = "ping"
	KindPong             = "pong"
	KindStatus           = "status"
	KindError            = "error"
)

// Message is one peer protocol envelope.
type Message struct {
	MessageID  types.ID       `json:"message_id"`
	SenderID   string         `json:"sender_id"`
	ReceiverID string         `json:"receiver_id"`
	Kind       string         `json:"message_type"`
	Payload    map[string]any `json:"payload"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Reply builds a response envelope addressed back to the sender of m.
func (m *Message) Reply(senderID, kind string, payload map[string]any) *Message {
	if payload == nil {
		payload = map[string]any{}
	}
	return &Message{
		MessageID:  types.NewID(),
		SenderID:   senderID,
		ReceiverID: m.SenderID,
		Kind:       kind,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	}
}
