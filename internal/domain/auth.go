package domain

import "time"

// Identity describes the caller a token is issued for.
type Identity struct {
	ID       string
	Email    string
	FullName string
	Role     Role
}

// TokenPair is returned by the login flow.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}
