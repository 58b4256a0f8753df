package quickcall

import (
	"errors"
	"time"
)

// Status is the client-observed state of the quick call. It only moves forward
// along idle -> dialing -> ringing -> connected -> ended, except for an explicit
// reset or a failure, which return it to idle.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusDialing   Status = "dialing"
	StatusRinging   Status = "ringing"
	StatusConnected Status = "connected"
	StatusEnded     Status = "ended"
)

const (
	msgInitiating = "Initiating call..."
	msgConnected  = "Call connected"
	msgRinging    = "Call is ringing..."
	msgSucceeded  = "Call completed successfully"
	msgFailed     = "Call failed"
	msgEnded      = "Call ended"
	msgSessionEnd = "Session expired, status updates stopped"
)

var (
	ErrInvalidRequest = errors.New("quickcall: phone number, client name and scenario are required")
	ErrNoActiveCall   = errors.New("quickcall: no active call")
	ErrSuperseded     = errors.New("quickcall: call was replaced by a newer session")
	ErrClosed         = errors.New("quickcall: controller closed")
)

type Request struct {
	PhoneNumber string `json:"phoneNumber"`
	ClientName  string `json:"clientName"`
	Scenario    string `json:"scenario"`
}

type Event struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a copy of the controller state. Events is append-only for the
// lifetime of one submission.
type Session struct {
	CallID  string   `json:"callId,omitempty"`
	Status  Status   `json:"status"`
	Events  []Event  `json:"events"`
	Error   string   `json:"error,omitempty"`
	Request *Request `json:"request,omitempty"`
}

func (s Session) clone() Session {
	out := s
	out.Events = make([]Event, len(s.Events))
	copy(out.Events, s.Events)
	if s.Request != nil {
		r := *s.Request
		out.Request = &r
	}
	return out
}

// Active reports whether hangup can be sent for this session. A dialing session
// is not active yet: its initiate request has not been answered.
func (s Session) Active() bool {
	return s.CallID != "" && (s.Status == StatusConnected || s.Status == StatusRinging)
}
