package websocket

import (
	"github.com/google/uuid"

	"github.com/oatside/gala/gala-backend/internal/service"
)

// Ensure Hub implements service.RefreshPublisher
var _ service.RefreshPublisher = (*Hub)(nil)

// PublishRefresh implements service.RefreshPublisher by broadcasting a
// refresh notice to every client watching the event
func (h *Hub) PublishRefresh(eventID uuid.UUID, resource string) {
	h.Broadcast(eventID, NewNotice(resource, eventID))
}
