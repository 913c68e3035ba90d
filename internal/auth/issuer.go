package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/task-service/internal/domain"
)

// ErrNilIdentity is returned when a token is requested for no caller.
var ErrNilIdentity = errors.New("identity is required")

// TokenIssuer signs access and refresh tokens.
type TokenIssuer struct {
	keys  *KeySet
	clock Clock
	ids   IDGenerator
}

// NewTokenIssuer builds an issuer over a loaded key set.
func NewTokenIssuer(keys *KeySet, clock Clock, ids IDGenerator) *TokenIssuer {
	if clock == nil {
		clock = SystemClock{}
	}
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &TokenIssuer{keys: keys, clock: clock, ids: ids}
}

// IssueAccessToken signs a 10 minute access token for identity.
// Issued-at is truncated to whole seconds, the resolution of the encoded claim.
func (i *TokenIssuer) IssueAccessToken(identity *domain.Identity, now time.Time, ids IDGenerator) (string, error) {
	if err := checkIdentity(identity); err != nil {
		return "", err
	}
	now = now.Truncate(time.Second)

	claims := &AccessClaims{
		Type:             KeyClassAccess,
		Login:            identity.Email,
		FullName:         identity.FullName,
		Role:             identity.Role,
		UserID:           identity.ID,
		RegisteredClaims: registeredClaims(KeyClassAccess, identity.Email, i.idSource(ids).NewID(), now),
	}
	return sign(claims, i.keys.Access)
}

// IssueRefreshToken signs a 24 hour refresh token for identity.
func (i *TokenIssuer) IssueRefreshToken(identity *domain.Identity, now time.Time, ids IDGenerator) (string, error) {
	if err := checkIdentity(identity); err != nil {
		return "", err
	}
	now = now.Truncate(time.Second)

	claims := &RefreshClaims{
		Type:             KeyClassRefresh,
		Role:             identity.Role,
		RegisteredClaims: registeredClaims(KeyClassRefresh, identity.Email, i.idSource(ids).NewID(), now),
	}
	return sign(claims, i.keys.Refresh)
}

// IssueAccess signs an access token using the issuer's own clock and id source.
func (i *TokenIssuer) IssueAccess(identity *domain.Identity) (string, time.Time, error) {
	now := i.clock.Now().Truncate(time.Second)
	token, err := i.IssueAccessToken(identity, now, i.ids)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, now.Add(AccessTokenLifetime), nil
}

// IssuePair signs an access and a refresh token sharing the same issue time.
func (i *TokenIssuer) IssuePair(identity *domain.Identity) (*domain.TokenPair, error) {
	now := i.clock.Now().Truncate(time.Second)

	access, err := i.IssueAccessToken(identity, now, i.ids)
	if err != nil {
		return nil, err
	}
	refresh, err := i.IssueRefreshToken(identity, now, i.ids)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  now.Add(AccessTokenLifetime),
		RefreshToken:     refresh,
		RefreshExpiresAt: now.Add(RefreshTokenLifetime),
	}, nil
}

func (i *TokenIssuer) idSource(ids IDGenerator) IDGenerator {
	if ids == nil {
		return i.ids
	}
	return ids
}

func checkIdentity(identity *domain.Identity) error {
	if identity == nil || identity.Email == "" {
		return ErrNilIdentity
	}
	return nil
}

func sign(claims jwt.Claims, key SecretKey) (string, error) {
	token := jwt.NewWithClaims(key.SigningMethod(), claims)
	signed, err := token.SignedString(key.b)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
