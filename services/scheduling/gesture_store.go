package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicore/models"

	"github.com/go-redis/redis/v8"
)

// GestureStore holds transient gesture sessions. Absence of a session is the
// idle state; entries expire on their own so abandoned gestures never leak.
type GestureStore interface {
	Save(ctx context.Context, session *models.GestureSession, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.GestureSession, error)
	Delete(ctx context.Context, id string) error
}

const gestureKeyPrefix = "gesture:"

type redisGestureStore struct {
	client *redis.Client
}

// NewRedisGestureStore builds a GestureStore over the given Redis client.
func NewRedisGestureStore(client *redis.Client) GestureStore {
	return &redisGestureStore{client: client}
}

func (s *redisGestureStore) Save(ctx context.Context, session *models.GestureSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal gesture session: %w", err)
	}
	if err := s.client.Set(ctx, gestureKeyPrefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache gesture session: %w", err)
	}
	return nil
}

func (s *redisGestureStore) Get(ctx context.Context, id string) (*models.GestureSession, error) {
	data, err := s.client.Get(ctx, gestureKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGestureNotFound
		}
		return nil, fmt.Errorf("fetch gesture session: %w", err)
	}
	var session models.GestureSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("parse gesture session: %w", err)
	}
	return &session, nil
}

func (s *redisGestureStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, gestureKeyPrefix+id).Err()
}
