package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"incidentapi/internal/config"
)

// redisClient is the subset of *redis.Client the publisher needs.
type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes events as JSON messages on a Redis pub/sub channel.
type RedisPublisher struct {
	client  redisClient
	channel string
	log     *zap.Logger
	metrics *Metrics
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRedisPublisher creates a publisher on channel. metrics may be nil.
func NewRedisPublisher(client redisClient, channel string, log *zap.Logger, metrics *Metrics) *RedisPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisPublisher{client: client, channel: channel, log: log, metrics: metrics}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		p.metrics.observe(e.EventType, "error")
		return fmt.Errorf("marshal event: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		p.metrics.observe(e.EventType, "error")
		return fmt.Errorf("publish %s: %w", e.EventType, err)
	}

	p.metrics.observe(e.EventType, "success")
	p.log.Debug("event published",
		zap.String("event_type", string(e.EventType)),
		zap.String("report_id", e.AdditionalInformation.ID),
		zap.Int64("receivers", receivers),
	)
	return nil
}
