package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/events"
	"github.com/spec-kit/task-service/internal/repository"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates login, refresh and logout flows.
type AuthService struct {
	users       repository.UserRepository
	revocations repository.RevocationStore
	issuer      *auth.TokenIssuer
	passwords   *auth.PasswordVerifier
	tokens      *auth.TokenValidator
	clock       auth.Clock
	events      events.Dispatcher
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations repository.RevocationStore
	Issuer      *auth.TokenIssuer
	Passwords   *auth.PasswordVerifier
	Validator   *auth.TokenValidator
	Clock       auth.Clock
	Events      events.Dispatcher
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	clock := deps.Clock
	if clock == nil {
		clock = auth.SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	passwords := deps.Passwords
	if passwords == nil {
		passwords, _ = auth.NewPasswordVerifier(bcrypt.MinCost)
	}
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.Revocations,
		issuer:      deps.Issuer,
		passwords:   passwords,
		tokens:      deps.Validator,
		clock:       clock,
		events:      deps.Events,
		logger:      logger,
	}
}

// Login authenticates a user and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = s.passwords.Verify("", password)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuer.IssuePair(user.Identity())
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	s.publish(ctx, events.Event{
		Type:    events.EventUserLoggedIn,
		UserID:  user.ID,
		Email:   user.Email,
		Payload: events.LoggedInPayload{AccessExpiresAt: pair.AccessExpiresAt, RefreshExpiresAt: pair.RefreshExpiresAt},
	})
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token.
// The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokens.ParseRefreshClaims(refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}

	if err := s.ensureNotRevoked(ctx, claims); err != nil {
		return "", time.Time{}, err
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("refresh for unknown subject", zap.String("jti", claims.ID))
			return "", time.Time{}, auth.ErrUnknownToken
		}
		return "", time.Time{}, fmt.Errorf("load user: %w", err)
	}

	access, expiresAt, err := s.issuer.IssueAccess(user.Identity())
	if err != nil {
		return "", time.Time{}, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventAccessRefreshed,
		UserID:  user.ID,
		Email:   user.Email,
		TokenID: claims.ID,
		Payload: events.RefreshedPayload{AccessExpiresAt: expiresAt},
	})
	return access, expiresAt, nil
}

// Logout revokes the refresh token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ParseRefreshClaims(refreshToken)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Time.Sub(s.clock.Now())
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	s.logger.Info("refresh token revoked", zap.String("jti", claims.ID))
	s.publish(ctx, events.Event{
		Type:    events.EventSessionRevoked,
		Email:   claims.Subject,
		TokenID: claims.ID,
		Payload: events.RevokedPayload{Until: claims.ExpiresAt.Time},
	})
	return nil
}

func (s *AuthService) ensureNotRevoked(ctx context.Context, claims *auth.RefreshClaims) error {
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		s.logger.Warn("revoked refresh token presented", zap.String("jti", claims.ID))
		s.publish(ctx, events.Event{Type: events.EventRevokedReplay, Email: claims.Subject, TokenID: claims.ID})
		return auth.ErrUnknownToken
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	event.OccurredAt = s.clock.Now()
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publish session event", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
