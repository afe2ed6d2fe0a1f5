package bank

import (
	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/middleware"
	authsvc "github.com/amirasaad/backoffice/pkg/service/auth"
	banksvc "github.com/amirasaad/backoffice/pkg/service/bank"
	"github.com/amirasaad/backoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, bankSvc *banksvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/bank", protected, CreateBank(bankSvc, authSvc))
	app.Get("/bank", ListBanks(bankSvc))
	app.Get("/bank/:id", GetBank(bankSvc))
	app.Patch("/bank/:id", protected, UpdateBank(bankSvc, authSvc))
	app.Get("/bank/:id/users", protected, ListUsers(bankSvc, authSvc))
	app.Post("/bank/:id/users/:user_id", protected, AddUser(bankSvc, authSvc))
	app.Delete("/bank/:id/users/:user_id", protected, RemoveUser(bankSvc, authSvc))
	app.Get("/bank/:id/tellers", protected, ListTellers(bankSvc, authSvc))
	app.Post("/bank/:id/tellers/:user_id", protected, AddTeller(bankSvc, authSvc))
}

// CreateBank creates a bank.
// @Summary Create bank
// @Tags banks
// @Accept json
// @Produce json
// @Param request body NewBank true "Bank data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /bank [post]
// @Security BearerAuth
func CreateBank(bankSvc *banksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		input, err := common.BindAndValidate[NewBank](c)
		if input == nil {
			return err
		}
		b, err := bankSvc.Create(c.UserContext(), callerID, input.Name, input.Location)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Bank created", b)
	}
}

// ListBanks lists banks with their loan types.
// @Summary List banks
// @Tags banks
// @Produce json
// @Param name query string false "Name contains"
// @Success 200 {object} common.Response
// @Router /bank [get]
func ListBanks(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		banks, err := bankSvc.List(c.UserContext(), c.Query("name"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list banks", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Banks", banks)
	}
}

// GetBank returns a bank with its loan types.
// @Summary Get bank
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /bank/{id} [get]
func GetBank(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamUUID(c, "id")
		if id == uuid.Nil {
			return err
		}
		b, err := bankSvc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank found", b)
	}
}

// UpdateBank renames or relocates a bank.
// @Summary Update bank
// @Tags banks
// @Accept json
// @Produce json
// @Param id path string true "Bank ID"
// @Param request body UpdateBankInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /bank/{id} [patch]
// @Security BearerAuth
func UpdateBank(bankSvc *banksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamUUID(c, "id")
		if id == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[UpdateBankInput](c)
		if input == nil {
			return err
		}
		b, err := bankSvc.Update(c.UserContext(), callerID, id, banksvc.UpdateInput{
			Name:     input.Name,
			Location: input.Location,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank updated", b)
	}
}

// ListUsers lists the customers of a bank.
// @Summary List bank users
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /bank/{id}/users [get]
// @Security BearerAuth
func ListUsers(bankSvc *banksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamUUID(c, "id")
		if id == uuid.Nil {
			return err
		}
		users, err := bankSvc.ListUsers(c.UserContext(), callerID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list bank users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank users", users)
	}
}

// AddUser registers a user as a customer of a bank.
// @Summary Add user to bank
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Param user_id path int true "User ID"
// @Success 201 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /bank/{id}/users/{user_id} [post]
// @Security BearerAuth
func AddUser(bankSvc *banksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamUUID(c, "id")
		if id == uuid.Nil {
			return err
		}
		userID, err := common.ParamInt64(c, "user_id")
		if userID == 0 {
			return err
		}
		u, err := bankSvc.AddUser(c.UserContext(), callerID, id, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't add user to bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User added to bank", u)
	}
}

// RemoveUser drops a customer from a bank.
// @Summary Remove user from bank
// @Tags banks
// @Param id path string true "Bank ID"
// @Param user_id path int true "User ID"
// @Success 204
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /bank/{id}/users/{user_id} [delete]
// @Security BearerAuth
func RemoveUser(bankSvc *banksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamUUID(c, "id")
		if id == uuid.Nil {
			return err
		}
		userID, err := common.ParamInt64(c, "user_id")
		if userID == 0 {
			return err
		}
		if err := bankSvc.RemoveUser(c.UserContext(), callerID, id, userID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't remove user from bank", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListTellers lists the tellers of a bank.
// @Summary List tellers
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /bank/{id}/tellers [get]
// @Security BearerAuth
func ListTellers(bankSvc *banksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamUUID(c, "id")
		if id == uuid.Nil {
			return err
		}
		tellers, err := bankSvc.ListTellers(c.UserContext(), callerID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list tellers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Tellers", tellers)
	}
}

// AddTeller makes a user a teller of a bank.
// @Summary Add teller
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Param user_id path int true "User ID"
// @Success 201 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /bank/{id}/tellers/{user_id} [post]
// @Security BearerAuth
func AddTeller(bankSvc *banksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamUUID(c, "id")
		if id == uuid.Nil {
			return err
		}
		userID, err := common.ParamInt64(c, "user_id")
		if userID == 0 {
			return err
		}
		u, err := bankSvc.AddTeller(c.UserContext(), callerID, id, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't add teller", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Teller added successfully", u)
	}
}
