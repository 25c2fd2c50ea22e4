package events

import (
	"context"

	"carrental-backend/internal/domain"
)

// Publisher pushes persisted notifications onto a channel the frontend can
// subscribe to for live updates. Publishing is best-effort; a failed publish
// never rolls back the notification itself.
type Publisher interface {
	Publish(ctx context.Context, note *domain.Notification) error
	Close() error
}

// NopPublisher discards everything. Used when no broker is configured and in
// tests.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, _ *domain.Notification) error { return nil }
func (NopPublisher) Close() error                                            { return nil }
