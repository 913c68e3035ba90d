package auth

import (
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenValidator verifies tokens against the key of their declared class.
// Parsers are built once; the validator is safe for concurrent use.
type TokenValidator struct {
	keys          *KeySet
	accessParser  *jwt.Parser
	refreshParser *jwt.Parser
	translator    *ErrorTranslator
}

// NewTokenValidator prepares one parser per key class.
func NewTokenValidator(keys *KeySet, clock Clock, translator *ErrorTranslator) *TokenValidator {
	if clock == nil {
		clock = SystemClock{}
	}
	if translator == nil {
		translator = NewErrorTranslator(nil)
	}
	return &TokenValidator{
		keys:          keys,
		accessParser:  newParser(KeyClassAccess, clock),
		refreshParser: newParser(KeyClassRefresh, clock),
		translator:    translator,
	}
}

func newParser(class KeyClass, clock Clock) *jwt.Parser {
	return jwt.NewParser(
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(string(class)),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(clock.Now),
	)
}

// Validate returns nil when token is a valid token of class.
func (v *TokenValidator) Validate(token string, class KeyClass) error {
	_, err := v.ParseClaims(token, class)
	return err
}

// ParseClaims verifies token and returns its claims as the class's typed struct.
func (v *TokenValidator) ParseClaims(token string, class KeyClass) (Claims, error) {
	var (
		claims Claims
		err    error
	)
	switch class {
	case KeyClassAccess:
		claims, err = v.ParseAccessClaims(token)
	case KeyClassRefresh:
		claims, err = v.ParseRefreshClaims(token)
	default:
		err = v.translator.Translate(class, fmt.Errorf("unknown key class %q", class))
	}
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseAccessClaims verifies an access token.
func (v *TokenValidator) ParseAccessClaims(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := v.parse(v.accessParser, KeyClassAccess, token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefreshClaims verifies a refresh token.
func (v *TokenValidator) ParseRefreshClaims(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := v.parse(v.refreshParser, KeyClassRefresh, token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (v *TokenValidator) parse(parser *jwt.Parser, class KeyClass, token string, claims jwt.Claims) error {
	key, _ := v.keys.For(class)

	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		method, ok := t.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("%w: %s", errUnsupportedAlgorithm, t.Method.Alg())
		}
		if !key.accepts(method) {
			return nil, fmt.Errorf("%w: %s needs a longer %s key", errUnsupportedAlgorithm, method.Alg(), class)
		}
		return key.b, nil
	})
	if err != nil {
		return v.translator.Translate(class, err)
	}
	if !parsed.Valid {
		return v.translator.Translate(class, fmt.Errorf("token rejected"))
	}
	return nil
}
