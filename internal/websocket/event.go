package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notice is the message sent to clients when data under an event changes.
// It intentionally carries no entity payload: clients respond by re-fetching
// the event's snapshot, never by patching local state.
type Notice struct {
	Type      string    `json:"type"`    // e.g. "entry.changed"
	EventID   uuid.UUID `json:"eventId"` // owning event
	Timestamp time.Time `json:"timestamp"`
}

// NewNotice creates a change notice for a resource under an event
func NewNotice(resource string, eventID uuid.UUID) Notice {
	return Notice{
		Type:      fmt.Sprintf("%s.changed", resource),
		EventID:   eventID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the notice to JSON bytes
func (n Notice) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
