package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingPublisher struct{}

func (failingPublisher) Publish(ctx context.Context, event Event) error {
	return errors.New("stream unreachable")
}
func (failingPublisher) Close() error { return nil }

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()
	assert.NoError(t, p.Publish(context.Background(), Event{Service: "booking-service", Action: "CREATE"}))
	assert.NoError(t, p.Close())
}

func TestNewPublisherFromEnvWithoutRedis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	p := NewPublisherFromEnv("booking-service")
	assert.NoError(t, p.Publish(context.Background(), Event{Action: "DELETE"}))
	assert.NoError(t, p.Close())
}

func TestRecordSwallowsPublishErrors(t *testing.T) {
	// Must not panic or propagate the failure
	Record(context.Background(), failingPublisher{}, Event{
		Service:    "booking-service",
		Action:     "UPDATE",
		EntityType: "booking",
		EntityID:   "abc",
	})
}
