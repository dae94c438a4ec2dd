package events

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the Redis stream events are appended to when no
// stream name is configured.
const DefaultStream = "fundgate:events:v1"

// RedisSink appends events to a Redis stream via XADD so external
// consumers can tail the mutation log.
type RedisSink struct {
	client *redis.Client
	stream string
}

// NewRedisSink builds a sink writing to the named stream. An empty
// stream name selects DefaultStream.
func NewRedisSink(client *redis.Client, stream string) *RedisSink {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisSink{client: client, stream: stream}
}

// Append writes the event as a stream entry.
func (s *RedisSink) Append(ctx context.Context, event Event) error {
	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":          event.ID,
			"kind":        event.Kind,
			"account":     event.Account.String(),
			"amount":      strconv.FormatInt(event.Amount, 10),
			"added":       strconv.FormatBool(event.Added),
			"occurred_at": event.OccurredAt.Format(time.RFC3339Nano),
		},
	}).Err()
}
