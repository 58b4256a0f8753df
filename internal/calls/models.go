package calls

import (
	"time"

	"call-console/internal/contacts"
)

// Call is a single outbound call as owned by the orchestrator.
//
// The console never mutates these records locally; every change goes through the
// orchestrator API and the returned representation replaces the local copy.
type Call struct {
	ID          string `json:"_id"`
	PhoneNumber string `json:"phoneNumber"`
	ClientName  string `json:"clientName"`
	Scenario    string `json:"scenario,omitempty"`

	Status  CallStatus `json:"status,omitempty"`
	Outcome Outcome    `json:"outcome,omitempty"`

	// Duration is the call duration in seconds.
	Duration   float64    `json:"duration,omitempty"`
	StartTime  *time.Time `json:"startTime,omitempty"`
	Transcript string     `json:"transcript,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`

	CallListID string    `json:"callList,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CallStatus is the orchestrator-side lifecycle of a call.
type CallStatus string

const (
	CallStatusPending    CallStatus = "pending"
	CallStatusInProgress CallStatus = "in-progress"
	CallStatusCompleted  CallStatus = "completed"
	CallStatusFailed     CallStatus = "failed"
)

// Outcome is the terminal classification of a completed call.
type Outcome string

const (
	OutcomeSuccessful        Outcome = "successful"
	OutcomeCallbackRequested Outcome = "callback-requested"
	OutcomeDeclined          Outcome = "declined"
	OutcomeNoAnswer          Outcome = "no-answer"
)

// NewCall is the payload used to create a call.
type NewCall struct {
	PhoneNumber string            `json:"phoneNumber"`
	ClientName  string            `json:"clientName"`
	Scenario    string            `json:"scenario"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CallUpdate carries the mutable fields of a call. Nil fields are left untouched.
type CallUpdate struct {
	ClientName *string        `json:"clientName,omitempty"`
	Scenario   *string        `json:"scenario,omitempty"`
	Outcome    *Outcome       `json:"outcome,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ActionResult is the orchestrator acknowledgement for action endpoints
// (initiate, hangup, start, pause).
type ActionResult struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// CallList is a campaign: a batch of contacts paired with a scenario.
type CallList struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Scenario    string         `json:"scenario"`
	Status      CallListStatus `json:"status"`

	TotalContacts     int `json:"totalContacts"`
	ProcessedContacts int `json:"processedContacts"`

	Contacts []contacts.Contact `json:"contacts,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type CallListStatus string

const (
	CallListStatusDraft     CallListStatus = "draft"
	CallListStatusActive    CallListStatus = "active"
	CallListStatusPaused    CallListStatus = "paused"
	CallListStatusCompleted CallListStatus = "completed"
)

// NewCallList is the payload submitted when a draft is turned into a campaign.
type NewCallList struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Scenario    string             `json:"scenario"`
	Contacts    []contacts.Contact `json:"contacts"`
}

// CallListUpdate carries the mutable fields of a call list. Nil fields are left untouched.
type CallListUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Scenario    *string `json:"scenario,omitempty"`
}
