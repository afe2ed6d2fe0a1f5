package loan

import (
	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/middleware"
	authsvc "github.com/amirasaad/backoffice/pkg/service/auth"
	loansvc "github.com/amirasaad/backoffice/pkg/service/loan"
	"github.com/amirasaad/backoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, loanSvc *loansvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/bank/:id/loan-types", protected, CreateLoanType(loanSvc, authSvc))
	app.Get("/bank/:id/loan-types", ListLoanTypes(loanSvc))
	app.Post("/account/:id/loans", protected, IssueLoan(loanSvc, authSvc))
	app.Post("/loan/:id/compensations", protected, Compensate(loanSvc, authSvc))
	app.Get("/me/loans", protected, MyLoans(loanSvc, authSvc))
	app.Get("/me/accounts/:id/loans", protected, MyAccountLoans(loanSvc, authSvc))
	app.Post("/me/accounts/:id/loans", protected, ApplyLoan(loanSvc, authSvc))
}

// CreateLoanType adds a loan product to a bank.
// @Summary Create loan type
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Bank ID"
// @Param request body NewLoanType true "Loan type"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /bank/{id}/loan-types [post]
// @Security BearerAuth
func CreateLoanType(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		bankID, err := common.ParamUUID(c, "id")
		if bankID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[NewLoanType](c)
		if input == nil {
			return err
		}
		t, err := loanSvc.CreateType(c.UserContext(), callerID, bankID, input.Name, input.Interest, input.Days)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create loan type", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Loan type created", t)
	}
}

// ListLoanTypes lists the loan products of a bank.
// @Summary List loan types
// @Tags loans
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} common.Response
// @Router /bank/{id}/loan-types [get]
func ListLoanTypes(loanSvc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bankID, err := common.ParamUUID(c, "id")
		if bankID == uuid.Nil {
			return err
		}
		ts, err := loanSvc.ListTypes(c.UserContext(), bankID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list loan types", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loan types", ts)
	}
}

// IssueLoan disburses a loan into an account.
// @Summary Issue loan
// @Description amount_out must be between 100 000 and 5 000 000
// @Tags loans
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body NewLoan true "Loan request"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /account/{id}/loans [post]
// @Security BearerAuth
func IssueLoan(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		accountID, err := common.ParamInt64(c, "id")
		if accountID == 0 {
			return err
		}
		input, err := common.BindAndValidate[NewLoan](c)
		if input == nil {
			return err
		}
		l, err := loanSvc.Issue(c.UserContext(), callerID, loansvc.IssueInput{
			AccountID:  accountID,
			LoanTypeID: input.LoanTypeID,
			AmountOut:  input.AmountOut,
			ExpiresAt:  input.expiry(),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't issue loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Loan issued", l)
	}
}

// ApplyLoan lets a user take a loan on their own account.
// @Summary Apply for a loan
// @Tags me
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body NewLoan true "Loan request"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /me/accounts/{id}/loans [post]
// @Security BearerAuth
func ApplyLoan(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		accountID, err := common.ParamInt64(c, "id")
		if accountID == 0 {
			return err
		}
		input, err := common.BindAndValidate[NewLoan](c)
		if input == nil {
			return err
		}
		l, err := loanSvc.Apply(c.UserContext(), callerID, loansvc.IssueInput{
			AccountID:  accountID,
			LoanTypeID: input.LoanTypeID,
			AmountOut:  input.AmountOut,
			ExpiresAt:  input.expiry(),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't apply for loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Loan issued", l)
	}
}

// Compensate books a repayment against a loan.
// @Summary Compensate loan
// @Tags loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Param request body CompensationInput true "Repayment"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /loan/{id}/compensations [post]
// @Security BearerAuth
func Compensate(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		loanID, err := common.ParamInt64(c, "id")
		if loanID == 0 {
			return err
		}
		input, err := common.BindAndValidate[CompensationInput](c)
		if input == nil {
			return err
		}
		l, comp, err := loanSvc.Compensate(c.UserContext(), callerID, loanID, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Compensation failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Compensation booked", CompensationResponse{
			ID:             comp.ID,
			LoanID:         l.ID,
			Amount:         comp.Amount,
			AmountExpected: l.AmountExpected,
			AmountIn:       l.AmountIn,
			IsCovered:      l.IsCovered,
			State:          string(l.State()),
		})
	}
}

// MyLoans lists the loans on the caller's accounts.
// @Summary My loans
// @Tags me
// @Produce json
// @Success 200 {object} common.Response
// @Router /me/loans [get]
// @Security BearerAuth
func MyLoans(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		ls, err := loanSvc.ListMine(c.UserContext(), callerID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list loans", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "My loans", ls)
	}
}

// MyAccountLoans lists the loans on one of the caller's accounts.
// @Summary My account loans
// @Tags me
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /me/accounts/{id}/loans [get]
// @Security BearerAuth
func MyAccountLoans(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		accountID, err := common.ParamInt64(c, "id")
		if accountID == 0 {
			return err
		}
		ls, err := loanSvc.ListForAccount(c.UserContext(), callerID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list loans", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account loans", ls)
	}
}
