package identity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event types delivered by the identity provider.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event is one user-lifecycle delivery.
type Event struct {
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData carries the provider's user record.
type EventData struct {
	ID             string         `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ImageURL       string         `json:"image_url"`
}

// EmailAddress is one address entry on the provider's user record.
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// ParseEvent decodes a verified webhook payload.
func ParseEvent(payload []byte) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}
	if evt.Type == "" {
		return nil, fmt.Errorf("webhook payload has no event type")
	}
	if evt.Data.ID == "" {
		return nil, fmt.Errorf("webhook payload has no user id")
	}
	return &evt, nil
}

// PrimaryEmail returns the first email address on the record, or "".
func (d *EventData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// FullName joins the name parts, or returns "" when both are empty.
func (d *EventData) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
}
