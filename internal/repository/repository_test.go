package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-service/internal/domain"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("scan arity mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *domain.Role:
			*p = domain.Role(r.values[i].(string))
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *bool:
			*p = r.values[i].(bool)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeQuerier struct {
	row       fakeRow
	lastSQL   string
	lastArgs  []any
	callCount int
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.callCount++
	q.lastSQL = sql
	q.lastArgs = args
	return q.row
}

func TestUserRepository_GetByEmail(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	q := &fakeQuerier{row: fakeRow{values: []any{
		"42", "Jane Doe", "jane@example.com", "$2a$hash", "ADMIN", created, created,
	}}}
	repo := NewUserRepository(q)

	user, err := repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "Jane Doe", user.FullName)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Contains(t, q.lastSQL, "WHERE email=$1")
	assert.Equal(t, []any{"jane@example.com"}, q.lastArgs)

	identity := user.Identity()
	assert.Equal(t, &domain.Identity{ID: "42", Email: "jane@example.com", FullName: "Jane Doe", Role: domain.RoleAdmin}, identity)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestTaskRepository_ExistsByIDAndExecutorEmail(t *testing.T) {
	taskID := uuid.MustParse("7f1c5a4e-2c3b-4d5e-8f90-1a2b3c4d5e6f")

	q := &fakeQuerier{row: fakeRow{values: []any{true}}}
	exists, err := NewTaskRepository(q).ExistsByIDAndExecutorEmail(context.Background(), taskID, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []any{taskID, "jane@example.com"}, q.lastArgs)

	q = &fakeQuerier{row: fakeRow{err: errors.New("conn reset")}}
	_, err = NewTaskRepository(q).ExistsByIDAndExecutorEmail(context.Background(), taskID, "jane@example.com")
	assert.EqualError(t, err, "conn reset")
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRevocationStore(t *testing.T) {
	mr, client := newRedis(t)
	store := NewRevocationStore(client, "")
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, time.Hour, mr.TTL("auth:revoked:jti-1"))

	mr.FastForward(time.Hour + time.Second)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_ExpiredOrEmpty(t *testing.T) {
	mr, client := newRedis(t)
	store := NewRevocationStore(client, "")
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-old", -time.Minute))
	assert.False(t, mr.Exists("auth:revoked:jti-old"))

	assert.Error(t, store.Revoke(ctx, "", time.Minute))
}

func TestRevocationStore_CustomPrefix(t *testing.T) {
	mr, client := newRedis(t)
	store := NewRevocationStore(client, "tm:revoked:")

	require.NoError(t, store.Revoke(context.Background(), "jti-2", time.Minute))
	assert.True(t, mr.Exists("tm:revoked:jti-2"))
	assert.False(t, mr.Exists(DefaultRevokedKeyPrefix+"jti-2"))
}

func TestRevocationStore_RedisDown(t *testing.T) {
	mr, client := newRedis(t)
	store := NewRevocationStore(client, "")
	mr.Close()

	_, err := store.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}
