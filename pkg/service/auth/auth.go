// Package auth authenticates users and issues the JWTs the web layer checks.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/amirasaad/backoffice/pkg/repository"
	"github.com/amirasaad/backoffice/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userContextKey contextKey = "user"

// bcrypt hash of a throwaway password, compared against when the identity is
// unknown so both paths cost the same.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

type Strategy interface {
	Login(ctx context.Context, identity, password string) (*user.User, error)
	GetCurrentUserID(ctx context.Context) (int64, error)
	GenerateToken(ctx context.Context, u *user.User) (string, error)
}

type Service struct {
	uow      repository.UnitOfWork
	strategy Strategy
	logger   *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	strategy Strategy,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, strategy: strategy, logger: logger}
}

func NewWithJWT(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return New(uow, NewJWTStrategy(uow, cfg, logger), logger)
}

// GetCurrentUserID extracts the caller id from a verified token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (int64, error) {
	return s.strategy.GetCurrentUserID(
		context.WithValue(context.Background(), userContextKey, token),
	)
}

// Login checks the credentials. identity is an email or a phone number.
func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (u *user.User, err error) {
	log := s.logger.With("context", "Login")
	log.Debug("Login called", "identity", identity)
	u, err = s.strategy.Login(ctx, identity, password)
	if err != nil {
		log.Warn("Login failed", "identity", identity, "error", err)
		return nil, err
	}
	log.Info("Login successful", "userID", u.ID)
	return u, nil
}

func (s *Service) GenerateToken(ctx context.Context, u *user.User) (string, error) {
	token, err := s.strategy.GenerateToken(ctx, u)
	if err != nil {
		s.logger.Error("GenerateToken failed", "userID", u.ID, "error", err)
		return "", err
	}
	return token, nil
}

// JWTStrategy signs HS256 tokens carrying a user_id claim.
type JWTStrategy struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

func NewJWTStrategy(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *JWTStrategy {
	return &JWTStrategy{uow: uow, cfg: cfg, logger: logger}
}

func (s *JWTStrategy) GenerateToken(_ context.Context, u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"exp":     time.Now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *JWTStrategy) Login(
	ctx context.Context,
	identity, password string,
) (u *user.User, err error) {
	if email := user.NormalizeEmail(identity); utils.IsEmail(email) {
		identity = email
	} else if phone, perr := user.NormalizePhone(identity); perr == nil {
		identity = phone
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByIdentity(ctx, identity)
		if errors.Is(err, domain.ErrNotFound) {
			_ = utils.CheckPasswordHash(password, dummyHash)
			return user.ErrUserUnauthorized
		}
		if err != nil {
			return err
		}
		if !u.CheckPassword(password) {
			return user.ErrUserUnauthorized
		}
		return nil
	})
	if err != nil {
		u = nil
	}
	return
}

func (s *JWTStrategy) GetCurrentUserID(ctx context.Context) (int64, error) {
	token, ok := ctx.Value(userContextKey).(*jwt.Token)
	if !ok || token == nil {
		return 0, user.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, user.ErrUserUnauthorized
	}
	switch raw := claims["user_id"].(type) {
	case float64:
		if raw <= 0 {
			return 0, user.ErrUserUnauthorized
		}
		return int64(raw), nil
	case string:
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return 0, user.ErrUserUnauthorized
		}
		return id, nil
	default:
		s.logger.Warn("Token carries no usable user_id claim")
		return 0, user.ErrUserUnauthorized
	}
}
