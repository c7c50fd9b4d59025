package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
)

var ErrTokenNotFound = errors.New("session token not found")

const (
	fieldRoomID   = "room_id"
	fieldPlayerID = "player_id"
)

// TokenStore - persists the one resumable session of a client.
type TokenStore interface {
	Save(ctx context.Context, token entity.SessionToken) error
	Load(ctx context.Context) (entity.SessionToken, error)
	Clear(ctx context.Context) error
}

// MemoryTokenStore - lives as long as the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token *entity.SessionToken
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (that *MemoryTokenStore) Save(_ context.Context, token entity.SessionToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.token = &token

	return nil
}

func (that *MemoryTokenStore) Load(_ context.Context) (entity.SessionToken, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.token == nil {
		return entity.SessionToken{}, ErrTokenNotFound
	}

	return *that.token, nil
}

func (that *MemoryTokenStore) Clear(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.token = nil

	return nil
}

// RedisTokenStore - one hash per client id holding room_id and player_id.
type RedisTokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisTokenStore - ttl <= 0 keeps the token until cleared.
func NewRedisTokenStore(client *redis.Client, clientID string, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
		key:    "session:" + clientID,
		ttl:    ttl,
	}
}

func (that *RedisTokenStore) Save(ctx context.Context, token entity.SessionToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	pipe := that.client.TxPipeline()
	pipe.Del(ctx, that.key)
	pipe.HSet(ctx, that.key, fieldRoomID, token.RoomID, fieldPlayerID, token.PlayerID)

	if that.ttl > 0 {
		pipe.Expire(ctx, that.key, that.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}

	return nil
}

func (that *RedisTokenStore) Load(ctx context.Context) (entity.SessionToken, error) {
	fields, err := that.client.HGetAll(ctx, that.key).Result()
	if err != nil {
		return entity.SessionToken{}, fmt.Errorf("failed to load session token: %w", err)
	}

	if len(fields) == 0 {
		return entity.SessionToken{}, ErrTokenNotFound
	}

	token := entity.SessionToken{
		RoomID:   fields[fieldRoomID],
		PlayerID: fields[fieldPlayerID],
	}

	// half a token is no token
	if err = token.Validate(); err != nil {
		return entity.SessionToken{}, fmt.Errorf("%w: %w", ErrTokenNotFound, err)
	}

	return token, nil
}

func (that *RedisTokenStore) Clear(ctx context.Context) error {
	if err := that.client.Del(ctx, that.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}

	return nil
}
