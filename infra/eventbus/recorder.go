package eventbus

import (
	"context"
	"sync"

	"github.com/amirasaad/backoffice/pkg/domain/events"
	"github.com/amirasaad/backoffice/pkg/eventbus"
)

// Recorder wraps a bus and keeps every emitted event until cleared. It is
// meant for tests; production wiring uses the wrapped bus directly.
type Recorder struct {
	eventbus.Bus
	mu        sync.Mutex
	published []events.Event
}

// NewRecorder returns a Recorder delegating to bus.
func NewRecorder(bus eventbus.Bus) *Recorder {
	return &Recorder{Bus: bus}
}

// Emit records the event and forwards it to the wrapped bus.
func (r *Recorder) Emit(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	r.published = append(r.published, event)
	r.mu.Unlock()
	return r.Bus.Emit(ctx, event)
}

// Published returns a copy of every recorded event.
func (r *Recorder) Published() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.published...)
}

// ClearPublished forgets recorded events.
func (r *Recorder) ClearPublished() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = nil
}

var _ eventbus.Bus = (*Recorder)(nil)
