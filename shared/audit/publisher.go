// Package audit publishes CRUD audit events to a Redis stream.
// Publishing is best-effort: services log and continue when the stream is
// unreachable, and a no-op publisher is used when Redis is not configured.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wanyos2005/carserve-backend/shared/config"
)

// DefaultStream is the Redis stream audit events are appended to
const DefaultStream = "carserve:audit"

// Event describes one CRUD operation performed by a service
type Event struct {
	Service    string `json:"service"`
	Action     string `json:"action"` // CREATE, UPDATE, DELETE
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	ActorID    string `json:"actorId,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// Publisher appends audit events to a stream
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewNoopPublisher returns a publisher that drops every event. Used when
// audit publishing is disabled and in tests.
func NewNoopPublisher() Publisher {
	return &noopPublisher{}
}

// NewPublisherFromEnv returns a Redis-backed publisher when REDIS_ADDR is
// set, otherwise a no-op publisher
func NewPublisherFromEnv(service string) Publisher {
	addr := config.GetEnvOrDefault("REDIS_ADDR", "")
	if addr == "" {
		slog.Info("Audit publishing disabled (REDIS_ADDR not set)", "service", service)
		return &noopPublisher{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       config.GetEnvIntOrDefault("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, audit publishing disabled", "addr", addr, "error", err)
		return &noopPublisher{}
	}

	slog.Info("Audit publishing enabled", "service", service, "addr", addr, "stream", DefaultStream)
	return &redisPublisher{client: client, stream: DefaultStream}
}

// redisPublisher appends events to a Redis stream with XADD
type redisPublisher struct {
	client *redis.Client
	stream string
}

func (p *redisPublisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	values := map[string]interface{}{
		"service":    event.Service,
		"action":     event.Action,
		"entityType": event.EntityType,
		"entityId":   event.EntityID,
		"timestamp":  event.Timestamp,
	}
	if event.ActorID != "" {
		values["actorId"] = event.ActorID
	}

	// '*' lets Redis assign a timestamp-based message id
	err := p.client.XAdd(ctx, &redis.XAddArgs{Stream: p.stream, Values: values}).Err()
	if err != nil {
		return fmt.Errorf("failed to XADD to stream %s: %w", p.stream, err)
	}
	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}

// noopPublisher implements Publisher but does nothing
type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (noopPublisher) Close() error                                   { return nil }

// Record publishes an event and logs (rather than returns) failures, so
// audit problems never surface to API callers
func Record(ctx context.Context, p Publisher, event Event) {
	if err := p.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish audit event",
			"service", event.Service,
			"action", event.Action,
			"entityType", event.EntityType,
			"error", err)
	}
}
