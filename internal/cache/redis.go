package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eklerchik/internal/genai"

	"github.com/redis/go-redis/v9"
)

const (
	chatKeyPrefix = "chat:"
	chatTTL       = 24 * time.Hour
)

var _ genai.HistoryStore = (*RedisClient)(nil)

type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisClient(redisURL string) (*RedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		ctx:    ctx,
	}, nil
}

// NewFromClient wraps an existing connection.
func NewFromClient(client *redis.Client) *RedisClient {
	return &RedisClient{client: client, ctx: context.Background()}
}

// Client exposes the connection for repositories that cache through it.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Load returns the stored turns of a chat session, nil when none.
func (r *RedisClient) Load(ctx context.Context, sessionID string) ([]genai.Content, error) {
	data, err := r.client.Get(ctx, chatKeyPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat history from Redis: %w", err)
	}

	var history []genai.Content
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat history: %w", err)
	}
	return history, nil
}

// Save stores the session turns; an idle session expires after a day.
func (r *RedisClient) Save(ctx context.Context, sessionID string, history []genai.Content) error {
	jsonData, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal chat history: %w", err)
	}
	if err := r.client.Set(ctx, chatKeyPrefix+sessionID, jsonData, chatTTL).Err(); err != nil {
		return fmt.Errorf("failed to store chat history in Redis: %w", err)
	}
	return nil
}

func (r *RedisClient) Reset(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, chatKeyPrefix+sessionID).Err()
}

// Get Redis status
func (r *RedisClient) GetStatus() (map[string]interface{}, error) {
	if _, err := r.client.Ping(r.ctx).Result(); err != nil {
		return nil, err
	}

	stats := r.client.PoolStats()

	return map[string]interface{}{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
	}, nil
}
