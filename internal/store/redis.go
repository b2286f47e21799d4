package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"bingo-hall/internal/room"
)

const recentRoundsKey = "rounds:recent"

// RedisArchive keeps a capped history of finished rounds, per room and
// across all rooms.
type RedisArchive struct {
	client    *redis.Client
	maxRounds int64
}

func NewRedisArchive(ctx context.Context, redisURL string, maxRounds int) (*RedisArchive, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisArchiveFromClient(ctx, redis.NewClient(opts), maxRounds)
}

func NewRedisArchiveFromClient(ctx context.Context, client *redis.Client, maxRounds int) (*RedisArchive, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	if maxRounds <= 0 {
		maxRounds = 50
	}
	return &RedisArchive{client: client, maxRounds: int64(maxRounds)}, nil
}

func (s *RedisArchive) Close() error {
	return s.client.Close()
}

func (s *RedisArchive) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// roomRoundsKey returns the key for a room's round list.
func roomRoundsKey(roomID string) string {
	return fmt.Sprintf("room:%s:rounds", roomID)
}

// RecordRound pushes the result onto the room's list and the global list,
// trimming both to the configured length.
func (s *RedisArchive) RecordRound(ctx context.Context, result room.RoundResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, key := range []string{roomRoundsKey(result.RoomID), recentRoundsKey} {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, s.maxRounds-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record round: %w", err)
	}
	return nil
}

// RecentRounds returns up to limit rounds, newest first. An empty roomID
// reads the global list.
func (s *RedisArchive) RecentRounds(ctx context.Context, roomID string, limit int) ([]room.RoundResult, error) {
	if limit <= 0 || int64(limit) > s.maxRounds {
		limit = int(s.maxRounds)
	}
	key := recentRoundsKey
	if roomID != "" {
		key = roomRoundsKey(roomID)
	}

	items, err := s.client.LRange(ctx, key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read rounds: %w", err)
	}

	out := make([]room.RoundResult, 0, len(items))
	for _, item := range items {
		var r room.RoundResult
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}
