// Package events defines the domain events the inbox emits after a successful write.
package events

import (
	"context"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/common"
)

type Type string

const (
	MessageSent               Type = "message.sent"
	ConversationStatusChanged Type = "conversation.status_changed"
	ConversationAssigned      Type = "conversation.assigned"
)

type Event struct {
	ID                  string    `json:"id"`
	Type                Type      `json:"type"`
	ConversationID      uint64    `json:"conversation_id"`
	MessageID           uint64    `json:"message_id,omitempty"`
	AttendantID         uint64    `json:"attendant_id,omitempty"`
	// PreviousAttendantID is set on reassignment.
	PreviousAttendantID uint64    `json:"previous_attendant_id,omitempty"`
	Status              string    `json:"status,omitempty"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// New stamps an event with a ULID and the current time.
func New(t Type, conversationID uint64) (Event, error) {
	id, err := common.NewULID()
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:             id,
		Type:           t,
		ConversationID: conversationID,
		OccurredAt:     time.Now().UTC(),
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
