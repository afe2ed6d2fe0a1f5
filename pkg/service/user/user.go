// Package user provides registration, activation and administration of users.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/backoffice/pkg/cache"
	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/domain/events"
	"github.com/amirasaad/backoffice/pkg/domain/role"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/amirasaad/backoffice/pkg/eventbus"
	"github.com/amirasaad/backoffice/pkg/repository"
	"github.com/amirasaad/backoffice/pkg/service/authz"
	"github.com/amirasaad/backoffice/pkg/utils"
	"github.com/google/uuid"
)

// DefaultPageSize is used when List is called without a page size.
const DefaultPageSize = 50

// Service provides business logic for user operations.
type Service struct {
	uow      repository.UnitOfWork
	bus      eventbus.Bus
	codes    cache.CodeStore
	notifier Notifier
	cfg      *config.Activation
	logger   *slog.Logger
}

// New creates a new Service.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	codes cache.CodeStore,
	notifier Notifier,
	cfg *config.Activation,
	logger *slog.Logger,
) *Service {
	if cfg == nil {
		cfg = &config.Activation{CodeLength: 6, CodeTTL: 10 * time.Minute}
	}
	return &Service{
		uow:      uow,
		bus:      bus,
		codes:    codes,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name  *string
	Email *string
	Phone *string
}

// Register creates an inactive user and announces it so an activation code
// gets sent.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	log := s.logger.With("context", "Register", "email", in.Email)
	u, err := user.New(in.Name, in.Email, in.Phone, in.Password)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("User registered", "userID", u.ID)
	s.emit(ctx, events.UserRegistered{
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		OccurredAt: time.Now().UTC(),
	})
	return u, nil
}

// IssueActivationCode stores a fresh code for email, replacing any earlier one.
func (s *Service) IssueActivationCode(ctx context.Context, email string) (string, error) {
	code, err := utils.RandomCode(s.cfg.CodeLength)
	if err != nil {
		return "", fmt.Errorf("generate activation code: %w", err)
	}
	if err := s.codes.Set(ctx, activationKey(email), code, s.cfg.CodeTTL); err != nil {
		return "", fmt.Errorf("store activation code: %w", err)
	}
	return code, nil
}

// Activate checks code against the one issued for email and activates the
// user. The code is single use.
func (s *Service) Activate(ctx context.Context, email, code string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	log := s.logger.With("context", "Activate", "email", email)
	stored, err := s.codes.Get(ctx, activationKey(email))
	if err != nil {
		return nil, fmt.Errorf("read activation code: %w", err)
	}
	if stored == "" || !strings.EqualFold(stored, strings.TrimSpace(code)) {
		log.Warn("Activation code rejected")
		return nil, user.ErrInvalidCode
	}
	var u *user.User
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		u.Activate()
		return repo.Update(ctx, u)
	})
	if err != nil {
		log.Error("Activate failed", "error", err)
		return nil, err
	}
	if err := s.codes.Delete(ctx, activationKey(email)); err != nil {
		log.Warn("Failed to drop used activation code", "error", err)
	}
	log.Info("User activated", "userID", u.ID)
	return u, nil
}

// RegisterHandlers subscribes the activation flow to the bus.
func (s *Service) RegisterHandlers(bus eventbus.Bus) {
	bus.Register(events.TypeUserRegistered, s.handleUserRegistered)
}

func (s *Service) handleUserRegistered(ctx context.Context, e events.Event) error {
	var email string
	switch ev := e.(type) {
	case events.UserRegistered:
		email = ev.Email
	case *events.UserRegistered:
		email = ev.Email
	default:
		return fmt.Errorf("unexpected event %T", e)
	}
	code, err := s.IssueActivationCode(ctx, email)
	if err != nil {
		return err
	}
	return s.notifier.SendActivationCode(ctx, email, code)
}

// Me returns the caller.
func (s *Service) Me(ctx context.Context, callerID int64) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, callerID)
		if errors.Is(err, domain.ErrNotFound) {
			return user.ErrUserUnauthorized
		}
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// List returns one page of users; page starts at 1.
func (s *Service) List(ctx context.Context, callerID int64, page, size int) (us []*user.User, err error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, uuid.Nil, role.Superuser); err != nil {
			return err
		}
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		us, err = repo.List(ctx, (page-1)*size, size)
		return err
	})
	return
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, callerID, userID int64) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, uuid.Nil, role.Superuser); err != nil {
			return err
		}
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// Update applies a partial update to a user.
func (s *Service) Update(ctx context.Context, callerID, userID int64, in UpdateInput) (u *user.User, err error) {
	log := s.logger.With("context", "Update", "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, uuid.Nil, role.Superuser); err != nil {
			return err
		}
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		if err := applyUpdate(u, in); err != nil {
			return err
		}
		return repo.Update(ctx, u)
	})
	if err != nil {
		log.Error("Update failed", "error", err)
		return nil, err
	}
	log.Info("User updated")
	return u, nil
}

func applyUpdate(u *user.User, in UpdateInput) error {
	if in.Name != nil {
		if err := user.ValidateName(*in.Name); err != nil {
			return err
		}
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := user.NormalizeEmail(*in.Email)
		if err := user.ValidateEmail(email); err != nil {
			return err
		}
		u.Email = email
	}
	if in.Phone != nil {
		phone, err := user.NormalizePhone(*in.Phone)
		if err != nil {
			return err
		}
		u.Phone = phone
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a user that owns no accounts.
func (s *Service) Delete(ctx context.Context, callerID, userID int64) error {
	log := s.logger.With("context", "Delete", "userID", userID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, uuid.Nil, role.Superuser); err != nil {
			return err
		}
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, userID)
	})
	if err != nil {
		log.Error("Delete failed", "error", err)
		return err
	}
	log.Info("User deleted")
	return nil
}

// CreateSuperuser creates an active superuser. It is meant for the admin CLI
// and performs no role check.
func (s *Service) CreateSuperuser(ctx context.Context, in RegisterInput) (*user.User, error) {
	u, err := user.New(in.Name, in.Email, in.Phone, in.Password)
	if err != nil {
		return nil, err
	}
	u.IsActive = true
	u.IsSuperuser = true
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Superuser created", "userID", u.ID, "email", u.Email)
	return u, nil
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("Failed to emit event", "type", e.Type(), "error", err)
	}
}

func activationKey(email string) string {
	return "activation:" + user.NormalizeEmail(email)
}
