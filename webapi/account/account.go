package account

import (
	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/middleware"
	accountsvc "github.com/amirasaad/backoffice/pkg/service/account"
	authsvc "github.com/amirasaad/backoffice/pkg/service/auth"
	"github.com/amirasaad/backoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/bank/:id/accounts", protected, CreateAccount(accountSvc, authSvc))
	app.Get("/bank/:id/accounts", protected, ListBankAccounts(accountSvc, authSvc))
	app.Get("/account/:id", protected, GetAccount(accountSvc, authSvc))
	app.Post("/account/:id/deposits", protected, Deposit(accountSvc, authSvc))
	app.Get("/account/:id/deposits", protected, ListDeposits(accountSvc, authSvc))
	app.Post("/account/:id/withdraws", protected, Withdraw(accountSvc, authSvc))
	app.Get("/account/:id/withdraws", protected, ListWithdraws(accountSvc, authSvc))
	app.Get("/me/accounts", protected, MyAccounts(accountSvc, authSvc))
}

// CreateAccount opens an account in a bank.
// @Summary Create account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Bank ID"
// @Param request body NewAccount true "Owner and opening balance"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /bank/{id}/accounts [post]
// @Security BearerAuth
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		bankID, err := common.ParamUUID(c, "id")
		if bankID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[NewAccount](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Create(c.UserContext(), callerID, bankID, input.UserID, input.Money)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account Created Successfully", a)
	}
}

// ListBankAccounts lists the accounts of a bank.
// @Summary List bank accounts
// @Tags accounts
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /bank/{id}/accounts [get]
// @Security BearerAuth
func ListBankAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		bankID, err := common.ParamUUID(c, "id")
		if bankID == uuid.Nil {
			return err
		}
		accounts, err := accountSvc.ListByBank(c.UserContext(), callerID, bankID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", accounts)
	}
}

// GetAccount returns an account.
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /account/{id} [get]
// @Security BearerAuth
func GetAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamInt64(c, "id")
		if id == 0 {
			return err
		}
		a, err := accountSvc.Get(c.UserContext(), callerID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account", a)
	}
}

// Deposit pays money into an account.
// @Summary Deposit
// @Description Amount must be greater than 100 000
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body AmountInput true "Deposit amount"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /account/{id}/deposits [post]
// @Security BearerAuth
func Deposit(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamInt64(c, "id")
		if id == 0 {
			return err
		}
		input, err := common.BindAndValidate[AmountInput](c)
		if input == nil {
			return err
		}
		a, d, err := accountSvc.Deposit(c.UserContext(), callerID, id, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Deposit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit created successfully", MovementResponse{
			ID:        d.ID,
			AccountID: a.ID,
			Amount:    d.Amount,
			Balance:   a.Money,
		})
	}
}

// Withdraw takes money out of an account.
// @Summary Withdraw
// @Description Amount must be between 100 000 and 3 000 000 and within the balance
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body AmountInput true "Withdrawal amount"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /account/{id}/withdraws [post]
// @Security BearerAuth
func Withdraw(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamInt64(c, "id")
		if id == 0 {
			return err
		}
		input, err := common.BindAndValidate[AmountInput](c)
		if input == nil {
			return err
		}
		a, w, err := accountSvc.Withdraw(c.UserContext(), callerID, id, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Withdraw failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdraw created successfully", MovementResponse{
			ID:        w.ID,
			AccountID: a.ID,
			Amount:    w.Amount,
			Balance:   a.Money,
		})
	}
}

// ListDeposits lists the deposits of an account.
// @Summary List deposits
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} common.Response
// @Router /account/{id}/deposits [get]
// @Security BearerAuth
func ListDeposits(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamInt64(c, "id")
		if id == 0 {
			return err
		}
		ds, err := accountSvc.ListDeposits(c.UserContext(), callerID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list deposits", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposits", ds)
	}
}

// ListWithdraws lists the withdrawals of an account.
// @Summary List withdrawals
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} common.Response
// @Router /account/{id}/withdraws [get]
// @Security BearerAuth
func ListWithdraws(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamInt64(c, "id")
		if id == 0 {
			return err
		}
		ws, err := accountSvc.ListWithdraws(c.UserContext(), callerID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list withdrawals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawals", ws)
	}
}

// MyAccounts lists the caller's own accounts.
// @Summary My accounts
// @Tags me
// @Produce json
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /me/accounts [get]
// @Security BearerAuth
func MyAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		accounts, err := accountSvc.ListMine(c.UserContext(), callerID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "My accounts", accounts)
	}
}
