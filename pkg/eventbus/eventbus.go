// Package eventbus defines the contract services publish domain events through.
package eventbus

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/events"
)

// HandlerFunc processes one event.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus publishes events and dispatches them to registered handlers.
type Bus interface {
	Emit(ctx context.Context, e events.Event) error
	Register(eventType string, handler HandlerFunc)
}
