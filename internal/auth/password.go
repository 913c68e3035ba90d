package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with configured cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// PasswordVerifier checks login passwords. Lookups for unknown accounts still
// pay for one bcrypt comparison so both failure paths take the same time.
type PasswordVerifier struct {
	dummy string
}

// NewPasswordVerifier prepares the placeholder hash at the configured cost.
func NewPasswordVerifier(cost int) (*PasswordVerifier, error) {
	dummy, err := HashPassword("placeholder-password", cost)
	if err != nil {
		return nil, err
	}
	return &PasswordVerifier{dummy: dummy}, nil
}

// Verify compares plain against hashed. An empty hash always fails.
func (v *PasswordVerifier) Verify(hashed, plain string) error {
	if hashed == "" {
		_ = ComparePassword(v.dummy, plain)
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return ComparePassword(hashed, plain)
}
