package audit

import "time"

// Event is an append-only record of something the operator did through the
// console. Events are never updated or deleted.
type Event struct {
	ID   string    `json:"id" db:"id"`
	Type EventType `json:"type" db:"type"`

	// Target identifiers, depending on the event type.
	CallID     string `json:"callId,omitempty" db:"call_id"`
	CallListID string `json:"callListId,omitempty" db:"call_list_id"`

	// RequestID ties the event to the console request that produced it.
	RequestID string `json:"requestId,omitempty" db:"request_id"`

	Message string `json:"message,omitempty" db:"message"`

	// Metadata is optional JSON.
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type EventType string

const (
	EventQuickCallSubmitted EventType = "quick_call_submitted"
	EventQuickCallHungUp    EventType = "quick_call_hung_up"
	EventCallListCreated    EventType = "call_list_created"
	EventCallListStarted    EventType = "call_list_started"
	EventCallListPaused     EventType = "call_list_paused"
	EventCallListDeleted    EventType = "call_list_deleted"
	EventContactsAdded      EventType = "call_list_contacts_added"
	EventCallDeleted        EventType = "call_deleted"
	EventCallReinitiated    EventType = "call_reinitiated"
)
