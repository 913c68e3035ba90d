package auth

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io/fs"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spec-kit/task-service/internal/domain"
)

var testNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

type mapLoader map[string][]byte

func (m mapLoader) ReadResource(path string) ([]byte, error) {
	b, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return b, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Set(t time.Time) { c.now = t }

type seqIDs struct {
	n atomic.Int64
}

func (s *seqIDs) NewID() string {
	return fmt.Sprintf("jti-%d", s.n.Add(1))
}

func fixedID(id string) IDGenerator {
	return IDGeneratorFunc(func() string { return id })
}

func encodedKey(b byte, size int) []byte {
	return []byte(base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{b}, size)))
}

func testKeys(t *testing.T) *KeySet {
	t.Helper()
	return &KeySet{
		Access:  SecretKey{b: bytes.Repeat([]byte{0xA1}, 32)},
		Refresh: SecretKey{b: bytes.Repeat([]byte{0xB2}, 32)},
	}
}

func testIdentity() *domain.Identity {
	return &domain.Identity{
		ID:       "42",
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Role:     domain.RoleUser,
	}
}

type fixture struct {
	keys      *KeySet
	clock     *fakeClock
	issuer    *TokenIssuer
	validator *TokenValidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	keys := testKeys(t)
	clock := &fakeClock{now: testNow}
	return &fixture{
		keys:      keys,
		clock:     clock,
		issuer:    NewTokenIssuer(keys, clock, &seqIDs{}),
		validator: NewTokenValidator(keys, clock, nil),
	}
}
