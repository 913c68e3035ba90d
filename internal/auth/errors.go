package auth

import (
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/task-service/pkg/util/errorutil"
)

// ErrorKind classifies why a token was rejected.
type ErrorKind string

const (
	KindExpired      ErrorKind = "TOKEN_EXPIRED"
	KindMalformed    ErrorKind = "TOKEN_MALFORMED"
	KindUnsupported  ErrorKind = "TOKEN_UNSUPPORTED"
	KindBadSignature ErrorKind = "TOKEN_BAD_SIGNATURE"
	KindUnknown      ErrorKind = "TOKEN_INVALID"
)

var kindMessages = map[ErrorKind]string{
	KindExpired:      "token expired",
	KindMalformed:    "malformed token",
	KindUnsupported:  "unsupported token",
	KindBadSignature: "invalid token signature",
	KindUnknown:      "invalid token",
}

// TokenError is the only error type verification returns to callers.
// It deliberately does not wrap the underlying library error.
type TokenError struct {
	Kind    ErrorKind
	Message string
}

func newTokenError(kind ErrorKind) *TokenError {
	return &TokenError{Kind: kind, Message: kindMessages[kind]}
}

func (e *TokenError) Error() string {
	return e.Message
}

// Is matches any TokenError of the same kind.
func (e *TokenError) Is(target error) bool {
	other, ok := target.(*TokenError)
	return ok && other.Kind == e.Kind
}

// DomainError renders the token error for the HTTP boundary.
func (e *TokenError) DomainError() error {
	return apperrors.NewUnauthorizedCode(string(e.Kind), e.Message)
}

var (
	ErrExpiredToken      = newTokenError(KindExpired)
	ErrMalformedToken    = newTokenError(KindMalformed)
	ErrUnsupportedFormat = newTokenError(KindUnsupported)
	ErrBadSignature      = newTokenError(KindBadSignature)
	ErrUnknownToken      = newTokenError(KindUnknown)
)

// errUnsupportedAlgorithm is returned from the key lookup for non-HMAC tokens.
var errUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

// ErrorTranslator maps verification failures onto the five token error kinds.
type ErrorTranslator struct {
	logger *zap.Logger
}

// NewErrorTranslator builds a translator logging to logger.
func NewErrorTranslator(logger *zap.Logger) *ErrorTranslator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorTranslator{logger: logger}
}

// Translate logs the cause and returns the caller-facing error.
func (t *ErrorTranslator) Translate(class KeyClass, err error) *TokenError {
	if err == nil {
		return nil
	}
	var tokenErr *TokenError
	if errors.As(err, &tokenErr) {
		return tokenErr
	}

	kind := Classify(err)
	t.logger.Warn("token verification failed",
		zap.String("key_class", class.String()),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	return newTokenError(kind)
}

// Classify picks the error kind for a jwt verification error.
func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return KindExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return KindMalformed
	case errors.Is(err, errUnsupportedAlgorithm), errors.Is(err, jwt.ErrTokenUnverifiable):
		return KindUnsupported
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return KindBadSignature
	default:
		return KindUnknown
	}
}
