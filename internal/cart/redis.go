package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps each session's cart as a JSON blob under a session key.
// Entries carry a TTL with jitter so a fleet of sessions does not expire at
// the same instant.
type RedisStorage struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisStorage(client *redis.Client, sessionTTL time.Duration) *RedisStorage {
	return &RedisStorage{
		client:  client,
		baseTTL: sessionTTL,
	}
}

func (r *RedisStorage) LoadItems(ctx context.Context, sessionID string) ([]Item, error) {
	data, err := r.client.Get(ctx, itemsKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart items failed: %w", err)
	}
	return items, nil
}

func (r *RedisStorage) SaveItems(ctx context.Context, sessionID string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart items failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, itemsKey(sessionID), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) ClearItems(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, itemsKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// UserEmail reads the session's stored email. The value is written by the
// sign-in flow as a JSON string, so it is unmarshalled rather than used raw.
func (r *RedisStorage) UserEmail(ctx context.Context, sessionID string) (string, error) {
	data, err := r.client.Get(ctx, emailKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	var email string
	if err := json.Unmarshal(data, &email); err != nil {
		return "", fmt.Errorf("unmarshal user email failed: %w", err)
	}
	return email, nil
}

func itemsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:cartItems", sessionID)
}

func emailKey(sessionID string) string {
	return fmt.Sprintf("session:%s:userEmail", sessionID)
}
