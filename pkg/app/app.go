// Package app wires the services together and subscribes their event
// handlers to the bus.
package app

import (
	"log/slog"

	"github.com/amirasaad/backoffice/pkg/cache"
	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/eventbus"
	"github.com/amirasaad/backoffice/pkg/repository"
	"github.com/amirasaad/backoffice/pkg/service/account"
	"github.com/amirasaad/backoffice/pkg/service/auth"
	"github.com/amirasaad/backoffice/pkg/service/bank"
	"github.com/amirasaad/backoffice/pkg/service/loan"
	"github.com/amirasaad/backoffice/pkg/service/user"
)

// Deps contains the infrastructure the services are built from.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Codes    cache.CodeStore
	Notifier user.Notifier
	Logger   *slog.Logger
}

type App struct {
	Deps           *Deps
	Config         *config.App
	AuthService    *auth.Service
	UserService    *user.Service
	BankService    *bank.Service
	AccountService *account.Service
	LoanService    *loan.Service
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Notifier == nil {
		deps.Notifier = user.NewLogNotifier(deps.Logger)
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.AuthService = auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger)
	app.UserService = user.New(
		deps.Uow,
		deps.EventBus,
		deps.Codes,
		deps.Notifier,
		cfg.Activation,
		deps.Logger,
	)
	app.BankService = bank.New(deps.Uow, deps.Logger)
	app.AccountService = account.New(deps.Uow, deps.EventBus, deps.Logger)
	app.LoanService = loan.New(deps.Uow, deps.EventBus, deps.Logger)
	app.setupEventBus()
	return app
}
