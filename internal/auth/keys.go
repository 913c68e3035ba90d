package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/task-service/internal/config"
)

// MinKeyBytes is the smallest accepted secret size (256 bits).
const MinKeyBytes = 32

// ConfigurationError reports a key resource that is missing or unreadable.
type ConfigurationError struct {
	Label  string
	Path   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s key %s at path %q: %v", e.Label, e.Reason, e.Path, e.Err)
	}
	return fmt.Sprintf("%s key %s at path %q", e.Label, e.Reason, e.Path)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// WeakKeyError reports decoded key material shorter than MinKeyBytes.
type WeakKeyError struct {
	Label  string
	Length int
}

func (e *WeakKeyError) Error() string {
	return fmt.Sprintf("%s secret key must be at least %d bits (%d bytes), got %d bytes",
		e.Label, MinKeyBytes*8, MinKeyBytes, e.Length)
}

// ResourceLoader reads raw bytes from a named resource.
type ResourceLoader interface {
	ReadResource(path string) ([]byte, error)
}

// FileResourceLoader reads resources from the local filesystem.
type FileResourceLoader struct{}

// ReadResource returns the full contents of the file at path.
func (FileResourceLoader) ReadResource(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// SecretKey holds HMAC key material. Its bytes never leave the package.
type SecretKey struct {
	b []byte
}

// Len returns the key size in bytes.
func (k SecretKey) Len() int {
	return len(k.b)
}

// SigningMethod picks the strongest HMAC algorithm the key length allows.
func (k SecretKey) SigningMethod() *jwt.SigningMethodHMAC {
	switch {
	case len(k.b) >= 64:
		return jwt.SigningMethodHS512
	case len(k.b) >= 48:
		return jwt.SigningMethodHS384
	default:
		return jwt.SigningMethodHS256
	}
}

// accepts reports whether tokens signed with method may be verified by k.
func (k SecretKey) accepts(method *jwt.SigningMethodHMAC) bool {
	return len(k.b) >= method.Hash.Size()
}

func (k SecretKey) String() string {
	return "SecretKey(redacted)"
}

func (k SecretKey) GoString() string {
	return k.String()
}

func (k SecretKey) MarshalText() ([]byte, error) {
	return nil, errors.New("secret key is not serializable")
}

// KeySet is the process-wide pair of secrets. It is built once and never mutated.
type KeySet struct {
	Access  SecretKey
	Refresh SecretKey
}

// For returns the secret of the given class.
func (ks *KeySet) For(class KeyClass) (SecretKey, bool) {
	switch class {
	case KeyClassAccess:
		return ks.Access, true
	case KeyClassRefresh:
		return ks.Refresh, true
	default:
		return SecretKey{}, false
	}
}

// LoadKey reads, trims and base64-decodes the key stored at path.
func LoadKey(loader ResourceLoader, path, label string) (SecretKey, error) {
	if strings.TrimSpace(path) == "" {
		return SecretKey{}, &ConfigurationError{Label: label, Path: path, Reason: "path not configured"}
	}

	raw, err := loader.ReadResource(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SecretKey{}, &ConfigurationError{Label: label, Path: path, Reason: "file not found"}
		}
		return SecretKey{}, &ConfigurationError{Label: label, Path: path, Reason: "file unreadable", Err: err}
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		// The decoder error quotes an offset only, never the input.
		return SecretKey{}, &ConfigurationError{Label: label, Path: path, Reason: "is not valid base64", Err: err}
	}

	if len(decoded) < MinKeyBytes {
		return SecretKey{}, &WeakKeyError{Label: label, Length: len(decoded)}
	}

	return SecretKey{b: decoded}, nil
}

// LoadKeySet loads both secrets named by the auth configuration.
func LoadKeySet(loader ResourceLoader, cfg config.AuthConfig) (*KeySet, error) {
	access, err := LoadKey(loader, cfg.AccessKeyPath, "Access")
	if err != nil {
		return nil, err
	}
	refresh, err := LoadKey(loader, cfg.RefreshKeyPath, "Refresh")
	if err != nil {
		return nil, err
	}
	return &KeySet{Access: access, Refresh: refresh}, nil
}
