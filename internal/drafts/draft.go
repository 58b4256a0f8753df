package drafts

import (
	"errors"
	"strings"
	"time"

	"call-console/internal/calls"
	"call-console/internal/contacts"
)

var (
	ErrNotFound = errors.New("drafts: draft not found")

	// ErrIncompleteDraft blocks submission until the required fields are filled.
	ErrIncompleteDraft = errors.New("Please fill all required fields and add at least one contact")

	ErrContactIndex = errors.New("drafts: contact index out of range")

	// ErrSubmitInProgress rejects a second submission of a draft that is
	// already being sent.
	ErrSubmitInProgress = errors.New("drafts: draft is already being submitted")
)

// Draft is a call list being assembled. It only exists in console memory until
// it is submitted or discarded.
type Draft struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Scenario    string             `json:"scenario"`
	Contacts    []contacts.Contact `json:"contacts"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// AddContact appends a manually entered contact.
//
// A blank phone number or client name is silently ignored (added=false, nil error),
// the way the entry form's add button behaves. Malformed metadata fails and leaves
// the contact list untouched.
func (d *Draft) AddContact(phoneNumber, clientName, metadataText string) (contacts.Contact, bool, error) {
	c, err := contacts.NewManualContact(phoneNumber, clientName, metadataText)
	if errors.Is(err, contacts.ErrIncompleteContact) {
		return contacts.Contact{}, false, nil
	}
	if err != nil {
		return contacts.Contact{}, false, err
	}
	d.Contacts = append(d.Contacts, c)
	return c, true, nil
}

// ImportCSV parses content and appends the contacts after the existing ones.
// Nothing is appended when parsing fails.
func (d *Draft) ImportCSV(p contacts.Parser, content string) ([]contacts.Contact, error) {
	parsed, err := p.Parse(content)
	if err != nil {
		return nil, err
	}
	d.Contacts = append(d.Contacts, parsed...)
	return parsed, nil
}

func (d *Draft) RemoveContact(index int) error {
	if index < 0 || index >= len(d.Contacts) {
		return ErrContactIndex
	}
	d.Contacts = append(d.Contacts[:index], d.Contacts[index+1:]...)
	return nil
}

// Validate reports whether the draft can be submitted.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Scenario) == "" || len(d.Contacts) == 0 {
		return ErrIncompleteDraft
	}
	return nil
}

// Payload is the whole draft as sent to the orchestrator.
func (d *Draft) Payload() calls.NewCallList {
	out := make([]contacts.Contact, len(d.Contacts))
	copy(out, d.Contacts)
	return calls.NewCallList{
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		Scenario:    d.Scenario,
		Contacts:    out,
	}
}

func (d *Draft) clone() Draft {
	out := *d
	out.Contacts = make([]contacts.Contact, len(d.Contacts))
	copy(out.Contacts, d.Contacts)
	return out
}
