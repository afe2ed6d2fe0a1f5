package account

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/events"
	"github.com/amirasaad/backoffice/pkg/eventbus"
)

// RegisterHandlers subscribes the ledger audit log to money movements.
func (s *Service) RegisterHandlers(bus eventbus.Bus) {
	bus.Register(events.TypeDepositMade, s.audit)
	bus.Register(events.TypeWithdrawMade, s.audit)
}

func (s *Service) audit(_ context.Context, e events.Event) error {
	log := s.logger.With("audit", e.Type())
	switch ev := e.(type) {
	case events.DepositMade:
		log.Info("ledger", "accountID", ev.AccountID, "credit", ev.Amount, "balance", ev.Balance)
	case *events.DepositMade:
		log.Info("ledger", "accountID", ev.AccountID, "credit", ev.Amount, "balance", ev.Balance)
	case events.WithdrawMade:
		log.Info("ledger", "accountID", ev.AccountID, "debit", ev.Amount, "balance", ev.Balance)
	case *events.WithdrawMade:
		log.Info("ledger", "accountID", ev.AccountID, "debit", ev.Amount, "balance", ev.Balance)
	}
	return nil
}
