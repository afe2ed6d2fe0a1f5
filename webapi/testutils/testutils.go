// Package testutils provides an end-to-end suite that runs the HTTP API
// against a real Postgres started with Testcontainers.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/amirasaad/backoffice/infra"
	infra_cache "github.com/amirasaad/backoffice/infra/cache"
	infra_eventbus "github.com/amirasaad/backoffice/infra/eventbus"
	"github.com/amirasaad/backoffice/infra/migrations"
	infra_repository "github.com/amirasaad/backoffice/infra/repository"
	"github.com/amirasaad/backoffice/pkg/app"
	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	usersvc "github.com/amirasaad/backoffice/pkg/service/user"
	"github.com/amirasaad/backoffice/webapi"
	"github.com/amirasaad/backoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const TestPassword = "password123"

// CodeCatcher records activation codes instead of delivering them.
type CodeCatcher struct {
	mu    sync.Mutex
	codes map[string]string
}

func (c *CodeCatcher) SendActivationCode(_ context.Context, email, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.codes == nil {
		c.codes = map[string]string{}
	}
	c.codes[email] = code
	return nil
}

// Code returns the last code sent to email.
func (c *CodeCatcher) Code(email string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[email]
}

// E2ETestSuite provides a test suite with a real Postgres database using Testcontainers
type E2ETestSuite struct {
	suite.Suite
	pgContainer *tcpostgres.PostgresContainer
	db          *gorm.DB
	App         *app.App
	fiber       *fiber.App
	Codes       *CodeCatcher
	cfg         *config.App
}

func testConfig(dsn string) *config.App {
	return &config.App{
		Env:    "test",
		Server: &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:    &config.Log{Format: "text"},
		DB:     &config.DB{Url: dsn},
		Auth: &config.Auth{Jwt: &config.Jwt{
			Secret: "e2e-secret",
			Expiry: time.Hour,
		}},
		Redis:      &config.Redis{KeyPrefix: "backoffice-test"},
		RateLimit:  &config.RateLimit{MaxRequests: 10_000, Window: time.Minute},
		Activation: &config.Activation{CodeLength: 6, CodeTTL: 10 * time.Minute},
		EventBus:   &config.EventBus{Driver: "memory"},
	}
}

// startPostgresContainer starts a Postgres container using Testcontainers
func (s *E2ETestSuite) startPostgresContainer(ctx context.Context) (*tcpostgres.PostgresContainer, error) {
	return tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
}

// SetupSuite initializes the test suite with a real Postgres database
func (s *E2ETestSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := s.startPostgresContainer(ctx)
	if err != nil {
		s.T().Skipf("postgres container unavailable: %v", err)
	}
	s.pgContainer = pg

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.cfg = testConfig(dsn)

	s.db, err = infra.NewDBConnection(s.cfg.DB, s.cfg.Env)
	s.Require().NoError(err)
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(migrations.Up(sqlDB))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Codes = &CodeCatcher{}
	s.App = app.New(&app.Deps{
		Uow:      infra_repository.NewUoW(s.db),
		EventBus: infra_eventbus.NewWithMemory(logger),
		Codes:    infra_cache.NewMemoryCodeStore(ctx),
		Notifier: s.Codes,
		Logger:   logger,
	}, s.cfg)
	s.fiber = webapi.SetupApp(s.App)
	log.SetOutput(io.Discard)
}

// TearDownSuite cleans up the test suite resources
func (s *E2ETestSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope and unmarshals its data into out.
func (s *E2ETestSuite) Decode(resp *http.Response, out any) {
	defer resp.Body.Close() //nolint: errcheck
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	if out != nil {
		s.Require().NoError(json.Unmarshal(envelope.Data, out))
	}
}

// LoginUser logs in through the API and returns the bearer token.
func (s *E2ETestSuite) LoginUser(identity string) string {
	body := fmt.Sprintf(`{"identity":%q,"password":%q}`, identity, TestPassword)
	resp := s.MakeRequest(http.MethodPost, "/auth/login", body, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var token struct {
		Token string `json:"token"`
	}
	s.Decode(resp, &token)
	s.Require().NotEmpty(token.Token)
	return token.Token
}

func randomIdentity() (string, string) {
	id := uuid.New()
	email := fmt.Sprintf("user_%s@example.com", id.String()[:8])
	phone := fmt.Sprintf("+99890%07d", id.ID()%10_000_000)
	return email, phone
}

// CreateTestUser registers a user through POST /user. Activate it with
// ActivateUser before calling active-only endpoints.
func (s *E2ETestSuite) CreateTestUser() *user.User {
	email, phone := randomIdentity()
	body := fmt.Sprintf(
		`{"name":"Test User","email":%q,"phone_number":%q,"password":%q}`,
		email, phone, TestPassword,
	)
	resp := s.MakeRequest(http.MethodPost, "/user", body, "")
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var u user.User
	s.Decode(resp, &u)
	return &u
}

// ActivateUser completes activation with the code the app sent.
func (s *E2ETestSuite) ActivateUser(u *user.User) {
	code := s.Codes.Code(u.Email)
	s.Require().NotEmpty(code, "no activation code sent to %s", u.Email)
	body := fmt.Sprintf(`{"email":%q,"code":%q}`, u.Email, code)
	resp := s.MakeRequest(http.MethodPost, "/user/activate", body, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close() //nolint: errcheck
	u.IsActive = true
}

// CreateSuperuser inserts a superuser directly and returns it with a token.
func (s *E2ETestSuite) CreateSuperuser() (*user.User, string) {
	email, phone := randomIdentity()
	u, err := s.App.UserService.CreateSuperuser(context.Background(), usersvc.RegisterInput{
		Name:     "Admin",
		Email:    email,
		Phone:    phone,
		Password: TestPassword,
	})
	s.Require().NoError(err)
	return u, s.LoginUser(email)
}

// CreateBank creates a uniquely named bank as the given superuser.
func (s *E2ETestSuite) CreateBank(adminToken string) uuid.UUID {
	body := fmt.Sprintf(`{"name":"Bank %s","location":"Tashkent"}`, uuid.NewString()[:8])
	resp := s.MakeRequest(http.MethodPost, "/bank", body, adminToken)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var b struct {
		ID uuid.UUID `json:"id"`
	}
	s.Decode(resp, &b)
	return b.ID
}

// Expect sends a request and asserts the response status.
func (s *E2ETestSuite) Expect(wantStatus int, method, path, body, token string, out any) {
	resp := s.MakeRequest(method, path, body, token)
	if resp.StatusCode != wantStatus {
		defer resp.Body.Close() //nolint: errcheck
		raw, _ := io.ReadAll(resp.Body)
		s.Require().Failf("unexpected status", "%s %s: want %d, got %d: %s",
			method, path, wantStatus, resp.StatusCode, raw)
	}
	if out == nil {
		resp.Body.Close() //nolint: errcheck
		return
	}
	s.Decode(resp, out)
}
