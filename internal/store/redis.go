// Package store persists alarm records in Redis. The scheduling engine
// only depends on the CRUD surface; storage technology stays behind it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmhodges/clock"
	"github.com/redis/go-redis/v9"

	"github.com/chimelabs/chime/internal/alarm"
)

// ErrNotFound is returned when no alarm exists for the given id.
var ErrNotFound = errors.New("alarm not found")

// RedisStore keeps alarm records as JSON values with an id index set.
type RedisStore struct {
	client    *redis.Client
	clk       clock.Clock
	keyPrefix string
	// Pre-computed index key (avoid repeated concatenation)
	indexKey string
}

// NewRedisStore creates a new Redis store and tests the connection. The
// clock stamps record timestamps on insert and update.
func NewRedisStore(redisURL string, clk clock.Clock) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Connected to Redis at %s", redisURL)

	prefix := "chime:"
	return &RedisStore{
		client:    client,
		clk:       clk,
		keyPrefix: prefix,
		indexKey:  prefix + "alarms",
	}, nil
}

func (s *RedisStore) alarmKey(id string) string {
	var b strings.Builder
	b.Grow(len(s.keyPrefix) + 6 + len(id)) // "alarm:" = 6 chars
	b.WriteString(s.keyPrefix)
	b.WriteString("alarm:")
	b.WriteString(id)
	return b.String()
}

// Insert persists a new alarm. The record's ID is assigned here on first
// persistence and is stable thereafter. The base time is truncated to
// seconds before storage.
func (s *RedisStore) Insert(ctx context.Context, a *alarm.Alarm) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.At = a.At.Truncate(time.Second)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.clk.Now()
		a.UpdatedAt = a.CreatedAt
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal alarm: %w", err)
	}

	// Pipeline keeps record and index in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.alarmKey(a.ID), data, 0)
	pipe.SAdd(ctx, s.indexKey, a.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert alarm: %w", err)
	}

	log.Printf("Inserted alarm %s (%s)", a.ID, a.Repeat)
	return nil
}

// Update overwrites an existing alarm record.
func (s *RedisStore) Update(ctx context.Context, a *alarm.Alarm) error {
	if a.ID == "" {
		return fmt.Errorf("cannot update alarm without id")
	}

	known, err := s.client.SIsMember(ctx, s.indexKey, a.ID).Result()
	if err != nil {
		return fmt.Errorf("failed to check alarm index: %w", err)
	}
	if !known {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}

	a.At = a.At.Truncate(time.Second)
	a.Touch(s.clk.Now())

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal alarm: %w", err)
	}

	if err := s.client.Set(ctx, s.alarmKey(a.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update alarm: %w", err)
	}

	return nil
}

// Delete removes an alarm record and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.alarmKey(id))
	pipe.SRem(ctx, s.indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}

	log.Printf("Deleted alarm %s", id)
	return nil
}

// Get retrieves a single alarm by id.
func (s *RedisStore) Get(ctx context.Context, id string) (*alarm.Alarm, error) {
	data, err := s.client.Get(ctx, s.alarmKey(id)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alarm: %w", err)
	}

	var a alarm.Alarm
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alarm: %w", err)
	}

	return &a, nil
}

// All returns every persisted alarm. The index is read once and the
// records fetched in a single MGET, so the result is a consistent
// snapshot for a refresh pass.
func (s *RedisStore) All(ctx context.Context) ([]*alarm.Alarm, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list alarm ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.alarmKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alarms: %w", err)
	}

	alarms := make([]*alarm.Alarm, 0, len(values))
	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			// Index entry without a record: a delete raced the snapshot
			log.Printf("Warning: alarm %s indexed but record missing, skipped", ids[i])
			continue
		}

		var a alarm.Alarm
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal alarm %s: %w", ids[i], err)
		}
		alarms = append(alarms, &a)
	}

	return alarms, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}
	return nil
}
