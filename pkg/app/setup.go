package app

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/events"
)

// setupEventBus registers every handler with the bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	a.UserService.RegisterHandlers(bus)
	a.AccountService.RegisterHandlers(bus)

	logger := a.Deps.Logger.With("handler", "loans")
	bus.Register(events.TypeLoanCovered, func(_ context.Context, e events.Event) error {
		logger.Info("Loan fully repaid", "event", e)
		return nil
	})
}
