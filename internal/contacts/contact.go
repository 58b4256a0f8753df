package contacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Contact is one person to call. Once added to a draft it is never edited in place;
// it can only be removed.
type Contact struct {
	PhoneNumber string            `json:"phoneNumber"`
	ClientName  string            `json:"clientName"`
	Metadata    map[string]string `json:"metadata"`
}

// ErrIncompleteContact is returned when phone number or client name is blank.
// Callers adding manual entries treat it as a no-op rather than a failure.
var ErrIncompleteContact = errors.New("contacts: phone number and client name are required")

// MalformedMetadataError reports manual-entry metadata that is not a JSON object.
type MalformedMetadataError struct {
	Err error
}

func (e *MalformedMetadataError) Error() string {
	return fmt.Sprintf("metadata must be a valid JSON object: %v", e.Err)
}

func (e *MalformedMetadataError) Unwrap() error { return e.Err }

// NewManualContact builds a contact from form input. metadataText may be empty;
// otherwise it must be a JSON object whose values become metadata entries.
func NewManualContact(phoneNumber, clientName, metadataText string) (Contact, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	clientName = strings.TrimSpace(clientName)

	if phoneNumber == "" || clientName == "" {
		return Contact{}, ErrIncompleteContact
	}
	metadata, err := ParseMetadata(metadataText)
	if err != nil {
		return Contact{}, err
	}
	return Contact{PhoneNumber: phoneNumber, ClientName: clientName, Metadata: metadata}, nil
}

// ParseMetadata decodes a JSON object into a string map. Non-string values keep
// their JSON text form. Empty input and a JSON null both yield an empty map.
func ParseMetadata(text string) (map[string]string, error) {
	out := map[string]string{}
	if strings.TrimSpace(text) == "" {
		return out, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &MalformedMetadataError{Err: err}
	}
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
			continue
		}
		out[k] = string(v)
	}
	return out, nil
}
