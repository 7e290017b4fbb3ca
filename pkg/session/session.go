package session

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKey = "session:"
	stateKey   = "oauth_state:"
)

var ErrSessionNotFound = errors.New("session not found")

// Store 基于 Redis 的会话存储，cookie 中只保存随机 sid
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Create(ctx context.Context, uid int64) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey+sid, strconv.FormatInt(uid, 10), s.ttl).Err(); err != nil {
		return "", errors.Wrap(err, "create session failed")
	}
	return sid, nil
}

func (s *Store) Get(ctx context.Context, sid string) (int64, error) {
	v, err := s.client.Get(ctx, sessionKey+sid).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, errors.Wrap(err, "get session failed")
	}
	uid, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "bad session value %q", v)
	}
	return uid, nil
}

func (s *Store) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionKey+sid).Err()
}

// SaveState 保存 OAuth state，防止 CSRF
func (s *Store) SaveState(ctx context.Context, state string, ttl time.Duration) error {
	return s.client.Set(ctx, stateKey+state, "1", ttl).Err()
}

// ConsumeState state 只能使用一次
func (s *Store) ConsumeState(ctx context.Context, state string) (bool, error) {
	_, err := s.client.GetDel(ctx, stateKey+state).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
