package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{account.ErrInvalidDepositAmount, fiber.StatusBadRequest},
		{loan.ErrLoanAlreadyCovered, fiber.StatusBadRequest},
		{account.ErrAccountNotFound, fiber.StatusNotFound},
		{account.ErrDuplicateAccount, fiber.StatusConflict},
		{account.ErrInsufficientFunds, fiber.StatusUnprocessableEntity},
		{loan.ErrOverCompensation, fiber.StatusUnprocessableEntity},
		{user.ErrUserInactive, fiber.StatusForbidden},
		{user.ErrUserUnauthorized, fiber.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorToStatusCode(tc.err))
		})
	}
}

func TestProblemDetailsJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/known", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Withdraw failed", account.ErrInsufficientFunds)
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Oops", errors.New("dial tcp: secret host"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/known", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, "Withdraw failed", pd.Title)
	assert.Equal(t, "/known", pd.Instance)
	assert.Contains(t, pd.Detail, "exceeds")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	pd = ProblemDetails{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Empty(t, pd.Detail)
}

type amountInput struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		in, err := BindAndValidate[amountInput](c)
		if in == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", in)
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"amount":5}`, fiber.StatusOK},
		{"rule fails", `{"amount":-1}`, fiber.StatusBadRequest},
		{"bad json", `{"amount":`, fiber.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

type fixedResolver struct {
	id  int64
	err error
}

func (r fixedResolver) GetCurrentUserID(*jwt.Token) (int64, error) { return r.id, r.err }

func TestCallerIDAndParams(t *testing.T) {
	app := fiber.New()
	app.Get("/:id/:bank", func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{})
		caller, err := CallerID(c, fixedResolver{id: 9})
		if caller == 0 {
			return err
		}
		id, err := ParamInt64(c, "id")
		if id == 0 {
			return err
		}
		bankID, err := ParamUUID(c, "bank")
		if bankID == uuid.Nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/anon", func(c *fiber.Ctx) error {
		caller, err := CallerID(c, fixedResolver{id: 9})
		if caller == 0 {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	cases := map[string]int{
		"/5/8f14e45f-ceea-467f-a0e6-3bdb6b4b1c2d": fiber.StatusNoContent,
		"/x/8f14e45f-ceea-467f-a0e6-3bdb6b4b1c2d": fiber.StatusBadRequest,
		"/5/not-a-uuid": fiber.StatusBadRequest,
		"/anon":         fiber.StatusUnauthorized,
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
