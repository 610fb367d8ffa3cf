package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestioncoop/admin-usuarios/internal/api/metrics"
	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
	"github.com/gestioncoop/admin-usuarios/internal/token"
)

// AuthService implements login and profile lookup.
type AuthService struct {
	repo     ports.UserRepository
	issuer   *token.Issuer
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer, throttle ports.LoginThrottle, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, throttle: throttle, audit: audit, logger: logger}
}

// Login verifies credentials and issues a token. Unknown usuario, inactive
// row and wrong clave are indistinguishable to the caller: all three return
// domain.ErrInvalidCredentials so the endpoint never confirms whether a
// usuario exists.
func (s *AuthService) Login(ctx context.Context, usuario, clave string) (string, *domain.User, error) {
	if usuario == "" || clave == "" {
		return "", nil, domain.ErrMissingCredentials
	}

	if locked, err := s.tooManyFailures(ctx, usuario); err == nil && locked {
		metrics.LoginsTotal.WithLabelValues("locked").Inc()
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindActiveByUsuario(ctx, usuario)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, usuario)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Clave), []byte(clave)) != nil {
		s.recordFailure(ctx, usuario)
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, usuario); err != nil {
			s.logger.Warn().Err(err).Str("usuario", usuario).Msg("reset login counter failed")
		}
	}
	if s.audit != nil {
		s.audit.Record(domain.AuditEntry{Actor: user.Usuario, Action: domain.AuditLogin, Target: user.ID})
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("usuario", user.Usuario).Int64("id", user.ID).Msg("login")

	return signed, user, nil
}

// Profile loads the row behind the actor's token claims.
func (s *AuthService) Profile(ctx context.Context, actor ports.Actor) (*domain.User, error) {
	return s.repo.FindByID(ctx, actor.ID)
}

// tooManyFailures consults the throttle and fails open: a broken counter
// backend must never lock every usuario out.
func (s *AuthService) tooManyFailures(ctx context.Context, usuario string) (bool, error) {
	if s.throttle == nil {
		return false, nil
	}
	locked, err := s.throttle.TooManyFailures(ctx, usuario)
	if err != nil {
		s.logger.Warn().Err(err).Str("usuario", usuario).Msg("login throttle unavailable")
		return false, err
	}
	return locked, nil
}

func (s *AuthService) recordFailure(ctx context.Context, usuario string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, usuario); err != nil {
		s.logger.Warn().Err(err).Str("usuario", usuario).Msg("record login failure failed")
	}
}
