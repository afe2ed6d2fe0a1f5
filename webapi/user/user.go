package user

import (
	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/middleware"
	authsvc "github.com/amirasaad/backoffice/pkg/service/auth"
	usersvc "github.com/amirasaad/backoffice/pkg/service/user"
	"github.com/amirasaad/backoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/user", Register(userSvc))
	app.Post("/user/activate", Activate(userSvc))
	app.Get("/user", protected, ListUsers(userSvc, authSvc))
	app.Get("/user/:id", protected, GetUser(userSvc, authSvc))
	app.Patch("/user/:id", protected, UpdateUser(userSvc, authSvc))
	app.Delete("/user/:id", protected, DeleteUser(userSvc, authSvc))
	app.Get("/me", protected, Me(userSvc, authSvc))
}

// Register creates an inactive user and sends an activation code.
// @Summary Register a new user
// @Description Create an inactive user; an activation code is sent to the email
// @Tags users
// @Accept json
// @Produce json
// @Param request body NewUser true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /user [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewUser](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Register(c.UserContext(), usersvc.RegisterInput{
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
			Password: input.Password,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered, check your email for the activation code", u)
	}
}

// Activate activates a user with the emailed code.
// @Summary Activate user
// @Tags users
// @Accept json
// @Produce json
// @Param request body ActivateInput true "Activation code"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /user/activate [post]
func Activate(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ActivateInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Activate(c.UserContext(), input.Email, input.Code)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Activation failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User activated", u)
	}
}

// ListUsers returns a page of users.
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page, from 1"
// @Param size query int false "Page size"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /user [get]
// @Security BearerAuth
func ListUsers(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		var q ListQuery
		if err := c.QueryParser(&q); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", nil, err.Error(), fiber.StatusBadRequest)
		}
		users, err := userSvc.List(c.UserContext(), callerID, q.Page, q.Size)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users", users)
	}
}

// GetUser returns a user by id.
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id} [get]
// @Security BearerAuth
func GetUser(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamInt64(c, "id")
		if id == 0 {
			return err
		}
		u, err := userSvc.Get(c.UserContext(), callerID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// UpdateUser applies a partial update.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /user/{id} [patch]
// @Security BearerAuth
func UpdateUser(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamInt64(c, "id")
		if id == 0 {
			return err
		}
		input, err := common.BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Update(c.UserContext(), callerID, id, usersvc.UpdateInput{
			Name:  input.Name,
			Email: input.Email,
			Phone: input.Phone,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", u)
	}
}

// DeleteUser removes a user without accounts.
// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /user/{id} [delete]
// @Security BearerAuth
func DeleteUser(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		id, err := common.ParamInt64(c, "id")
		if id == 0 {
			return err
		}
		if err := userSvc.Delete(c.UserContext(), callerID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete user", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me returns the authenticated user.
// @Summary Current user
// @Tags me
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /me [get]
// @Security BearerAuth
func Me(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := common.CallerID(c, authSvc)
		if callerID == 0 {
			return err
		}
		u, err := userSvc.Me(c.UserContext(), callerID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Current user", u)
	}
}
