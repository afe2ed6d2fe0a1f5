// Package webapi exposes the back-office over HTTP. It is organized into
// sub-packages per area:
// - auth: login
// - user: registration, activation and user administration
// - bank: banks, members and tellers
// - account: accounts, deposits and withdrawals
// - loan: loan types, loans and compensations
package webapi

import (
	"errors"

	"github.com/amirasaad/backoffice/pkg/app"
	accountweb "github.com/amirasaad/backoffice/webapi/account"
	authweb "github.com/amirasaad/backoffice/webapi/auth"
	bankweb "github.com/amirasaad/backoffice/webapi/bank"
	"github.com/amirasaad/backoffice/webapi/common"
	loanweb "github.com/amirasaad/backoffice/webapi/loan"
	userweb "github.com/amirasaad/backoffice/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/amirasaad/backoffice/docs"
)

// SetupApp builds the fiber application with every route and middleware.
func SetupApp(a *app.App) *fiber.App {
	fiberCfg := fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, nil, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	}
	// c.IP() reads the proxy header only when the peer is a trusted proxy.
	if srv := a.Config.Server; srv != nil && srv.ProxyHeader != "" {
		fiberCfg.ProxyHeader = srv.ProxyHeader
		fiberCfg.EnableTrustedProxyCheck = true
		fiberCfg.TrustedProxies = srv.TrustedProxies
		fiberCfg.EnableIPValidation = true
	}
	fiberApp := fiber.New(fiberCfg)
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
	}))

	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Back-office API is running!")
	})

	authweb.Routes(fiberApp, a.AuthService)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, a.Config)
	bankweb.Routes(fiberApp, a.BankService, a.AuthService, a.Config)
	accountweb.Routes(fiberApp, a.AccountService, a.AuthService, a.Config)
	loanweb.Routes(fiberApp, a.LoanService, a.AuthService, a.Config)
	return fiberApp
}
