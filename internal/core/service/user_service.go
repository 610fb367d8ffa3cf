package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestioncoop/admin-usuarios/internal/api/metrics"
	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
)

// UserService implements the role-gated user CRUD operations.
type UserService struct {
	repo   ports.UserRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, logger: logger}
}

func (s *UserService) List(ctx context.Context, actor ports.Actor) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if input.Usuario == "" || input.Clave == "" || !input.Rol.Valid() {
		return nil, domain.ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Clave), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Nombre:    input.Nombre,
		Apellido:  input.Apellido,
		Usuario:   input.Usuario,
		Clave:     string(hash),
		DNI:       input.DNI,
		Fecha:     time.Now().UTC(),
		Estado:    input.Estado,
		Rol:       input.Rol,
		Domicilio: input.Domicilio,
		Activo:    input.Activo,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEntry{Actor: actor.Usuario, Action: domain.AuditUserCreated, Target: created.ID, Detail: created.Usuario})
	metrics.UserMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("actor", actor.Usuario).Str("usuario", created.Usuario).Int64("id", created.ID).Msg("user created")

	return created, nil
}

func (s *UserService) Update(ctx context.Context, actor ports.Actor, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, domain.ErrForbidden
	}

	upd := applyPolicy(actor.Rol, input)

	// An admin may set a new secret in the same call; a blank or
	// whitespace-only value leaves the stored digest untouched.
	if input.NewPassword != nil && fieldAllowed(actor.Rol, "clave") {
		if pw := strings.TrimSpace(*input.NewPassword); pw != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			digest := string(hash)
			upd.Clave = &digest
		}
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEntry{Actor: actor.Usuario, Action: domain.AuditUserUpdated, Target: id})
	metrics.UserMutationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("actor", actor.Usuario).Int64("id", id).Msg("user updated")

	return updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor ports.Actor, id int64, currentPassword, newPassword string) error {
	if !actor.IsAdmin() && actor.ID != id {
		return domain.ErrForbidden
	}

	stored, err := s.repo.FindClaveByID(ctx, id)
	if err != nil {
		return err
	}

	// Admins can force-set any secret; everyone else proves knowledge of
	// the current one first.
	if !actor.IsAdmin() {
		if bcrypt.CompareHashAndPassword([]byte(stored), []byte(currentPassword)) != nil {
			return domain.ErrPasswordMismatch
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateClave(ctx, id, string(hash)); err != nil {
		return err
	}

	s.record(domain.AuditEntry{Actor: actor.Usuario, Action: domain.AuditPasswordChanged, Target: id})
	metrics.UserMutationsTotal.WithLabelValues("change_password").Inc()
	s.logger.Info().Str("actor", actor.Usuario).Int64("id", id).Msg("password changed")

	return nil
}

func (s *UserService) record(entry domain.AuditEntry) {
	if s.audit != nil {
		s.audit.Record(entry)
	}
}
