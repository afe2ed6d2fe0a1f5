// Package common holds the response envelope, problem details and request
// helpers shared by every route group.
package common

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const problemJSON = "application/problem+json"

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SuccessResponseJSON writes the success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ProblemDetailsJSON writes an RFC 9457 problem. Extra args may carry a
// string detail and an int status; without a status it is derived from err.
// Details of unexpected errors are never exposed.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := 0
	detail := ""
	var extra any
	for _, a := range args {
		switch v := a.(type) {
		case int:
			status = v
		case string:
			detail = v
		default:
			extra = v
		}
	}
	if status == 0 {
		if err == nil {
			status = fiber.StatusBadRequest
		} else {
			status = ErrorToStatusCode(err)
		}
	}
	if detail == "" && err != nil && status != fiber.StatusInternalServerError {
		detail = err.Error()
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
		Errors:   extra,
	}
	return c.Status(status).JSON(pd, problemJSON)
}

// ErrorToStatusCode maps domain error kinds to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrOverCompensation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
			}
			return nil, ProblemDetailsJSON(c, "Validation failed", nil, fields, fiber.StatusBadRequest)
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", nil, err.Error(), fiber.StatusBadRequest)
	}
	return &input, nil
}

// CallerResolver turns a verified token into the caller's user id.
type CallerResolver interface {
	GetCurrentUserID(token *jwt.Token) (int64, error)
}

// CallerID returns the authenticated user's id. On failure it writes a 401
// and returns 0 with the write error, like BindAndValidate.
func CallerID(c *fiber.Ctx, auth CallerResolver) (int64, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return 0, ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
	}
	id, err := auth.GetCurrentUserID(token)
	if err != nil {
		return 0, ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
	}
	return id, nil
}

// ParamInt64 reads a positive integer path parameter. On failure it writes a
// 400 and returns 0.
func ParamInt64(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		detail := fmt.Sprintf("%s must be a positive integer", name)
		return 0, ProblemDetailsJSON(c, "Invalid path parameter", nil, detail, fiber.StatusBadRequest)
	}
	return id, nil
}

// ParamUUID reads a non-nil UUID path parameter. On failure it writes a 400
// and returns uuid.Nil.
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil || id == uuid.Nil {
		detail := fmt.Sprintf("%s must be a valid UUID", name)
		return uuid.Nil, ProblemDetailsJSON(c, "Invalid path parameter", nil, detail, fiber.StatusBadRequest)
	}
	return id, nil
}
