package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/task-service/internal/domain"
)

// Issuer is the fixed "iss" claim of every token this service signs.
const Issuer = "task-manager-api"

// KeyClass identifies a secret, its lifetime and its audience tag.
type KeyClass string

const (
	KeyClassAccess  KeyClass = "access"
	KeyClassRefresh KeyClass = "refresh"
)

const (
	AccessTokenLifetime  = 10 * time.Minute
	RefreshTokenLifetime = 24 * time.Hour
)

// Lifetime returns how long tokens of the class stay valid.
func (k KeyClass) Lifetime() time.Duration {
	switch k {
	case KeyClassAccess:
		return AccessTokenLifetime
	case KeyClassRefresh:
		return RefreshTokenLifetime
	default:
		return 0
	}
}

func (k KeyClass) String() string {
	return string(k)
}

var (
	errTypeMismatch  = errors.New("token type does not match key class")
	errMissingClaims = errors.New("token is missing required claims")
)

// Claims is the common view of a parsed token.
type Claims interface {
	jwt.Claims
	Class() KeyClass
	TokenID() string
}

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	Type     KeyClass    `json:"type"`
	Login    string      `json:"login"`
	FullName string      `json:"fullName"`
	Role     domain.Role `json:"role"`
	UserID   string      `json:"userId"`
	jwt.RegisteredClaims
}

func (c *AccessClaims) Class() KeyClass { return KeyClassAccess }

func (c *AccessClaims) TokenID() string { return c.ID }

// Validate is invoked by the jwt validator after the registered claims pass.
func (c *AccessClaims) Validate() error {
	if c.Type != KeyClassAccess {
		return errTypeMismatch
	}
	if c.Subject == "" || c.ID == "" || c.Login == "" || c.Role == "" {
		return errMissingClaims
	}
	return nil
}

// RefreshClaims is the payload of a refresh token.
type RefreshClaims struct {
	Type KeyClass    `json:"type"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *RefreshClaims) Class() KeyClass { return KeyClassRefresh }

func (c *RefreshClaims) TokenID() string { return c.ID }

func (c *RefreshClaims) Validate() error {
	if c.Type != KeyClassRefresh {
		return errTypeMismatch
	}
	if c.Subject == "" || c.ID == "" {
		return errMissingClaims
	}
	return nil
}

func registeredClaims(class KeyClass, subject, id string, issuedAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(class.Lifetime())),
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{string(class)},
	}
}
