package service

import "github.com/google/uuid"

// RefreshPublisher tells connected clients that data under an event changed
// and should be re-fetched. Services call it after every successful mutation;
// there is no optimistic patching anywhere, the snapshot is always reloaded.
type RefreshPublisher interface {
	PublishRefresh(eventID uuid.UUID, resource string)
}

// Resources named in refresh notices.
const (
	ResourceEvent    = "event"
	ResourceCategory = "category"
	ResourceEntry    = "entry"
)

// NoOpRefreshPublisher is a publisher that does nothing (for tests or when
// WebSocket is disabled)
type NoOpRefreshPublisher struct{}

// PublishRefresh does nothing
func (NoOpRefreshPublisher) PublishRefresh(eventID uuid.UUID, resource string) {}
