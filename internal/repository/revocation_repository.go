package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRevokedKeyPrefix namespaces revoked token ids in Redis.
const DefaultRevokedKeyPrefix = "auth:revoked:"

// RevocationStore remembers refresh token ids that were logged out.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type revocationStore struct {
	client redis.Cmdable
	prefix string
}

// NewRevocationStore returns a Redis-backed implementation. An empty prefix
// selects DefaultRevokedKeyPrefix.
func NewRevocationStore(client redis.Cmdable, prefix string) RevocationStore {
	if prefix == "" {
		prefix = DefaultRevokedKeyPrefix
	}
	return &revocationStore{client: client, prefix: prefix}
}

// Revoke marks tokenID as revoked for ttl. Non-positive ttl is a no-op,
// the token has already expired.
func (s *revocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id required")
	}
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.prefix+tokenID, 1, ttl).Err()
}

func (s *revocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
