package events

import "time"

// Change feed event codes. The WebSocket consumer relays these verbatim so
// clients can refresh the affected collection.
const (
	NoteCreated  = "NOTE_CREATED"
	NoteUpdated  = "NOTE_UPDATED"
	NoteTrashed  = "NOTE_TRASHED"
	NoteRestored = "NOTE_RESTORED"
	NotePurged   = "NOTE_PURGED"
	NotePinned   = "NOTE_PINNED"

	LabelCreated = "LABEL_CREATED"
	LabelUpdated = "LABEL_UPDATED"
	LabelDeleted = "LABEL_DELETED"

	PreferencesUpdated = "PREFERENCES_UPDATED"

	VaultEnabled  = "VAULT_ENABLED"
	VaultLocked   = "VAULT_LOCKED"
	VaultDisabled = "VAULT_DISABLED"
)

// WireEvent is the serialized form events travel in on the bus and out
// through the WebSocket feed.
type WireEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Wire converts any Event into its serializable envelope.
func Wire(e Event) WireEvent {
	return WireEvent{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	}
}

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
