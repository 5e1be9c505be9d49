package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iudanet/notaryroom/pkg/api"
)

// RedisStore implements presence tracking using Redis.
// Каждый участник хранится отдельным ключом с TTL: умершее соединение
// перестает делать heartbeat и запись истекает сама.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed presence store
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "presence:",
	}
}

// key generates the Redis key for a participant in a room
func (s *RedisStore) key(roomID, submitterID string) string {
	return s.prefix + roomID + ":" + submitterID
}

// pattern matches all participants of a room
func (s *RedisStore) pattern(roomID string) string {
	return s.prefix + roomID + ":*"
}

// Join registers a participant in the room and starts the TTL
func (s *RedisStore) Join(ctx context.Context, roomID string, participant api.Participant) error {
	data, err := json.Marshal(participant)
	if err != nil {
		return fmt.Errorf("marshal participant: %w", err)
	}

	if err := s.client.Set(ctx, s.key(roomID, participant.SubmitterID), data, entryTTL).Err(); err != nil {
		return fmt.Errorf("save presence: %w", err)
	}
	return nil
}

// Heartbeat extends the participant's presence TTL
func (s *RedisStore) Heartbeat(ctx context.Context, roomID, submitterID string) error {
	ok, err := s.client.Expire(ctx, s.key(roomID, submitterID), entryTTL).Result()
	if err != nil {
		return fmt.Errorf("extend presence ttl: %w", err)
	}
	if !ok {
		return fmt.Errorf("presence entry expired for %s", submitterID)
	}
	return nil
}

// Leave removes the participant from the room
func (s *RedisStore) Leave(ctx context.Context, roomID, submitterID string) error {
	if err := s.client.Del(ctx, s.key(roomID, submitterID)).Err(); err != nil {
		return fmt.Errorf("remove presence: %w", err)
	}
	return nil
}

// List returns participants currently present in the room
func (s *RedisStore) List(ctx context.Context, roomID string) ([]api.Participant, error) {
	var participants []api.Participant

	iter := s.client.Scan(ctx, 0, s.pattern(roomID), 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, redis.Nil) {
			// Запись истекла между SCAN и GET
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get presence entry: %w", err)
		}

		var participant api.Participant
		if err := json.Unmarshal([]byte(data), &participant); err != nil {
			return nil, fmt.Errorf("unmarshal participant: %w", err)
		}
		participants = append(participants, participant)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan presence keys: %w", err)
	}

	return participants, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
