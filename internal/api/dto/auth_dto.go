package dto

import "time"

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token for refresh and logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenPairResponse is returned by login.
type TokenPairResponse struct {
	Access  AuthResponse `json:"access"`
	Refresh AuthResponse `json:"refresh"`
}

// PrincipalResponse describes the authenticated caller.
type PrincipalResponse struct {
	Email    string `json:"email"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
