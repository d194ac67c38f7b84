// Package quality publishes career data-quality anomalies to a Redis stream
// so they can be monitored outside the request path.
package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/atrbyg24/nba-dashboard/internal/career"
)

// StreamName is the stream every anomaly event is appended to.
const StreamName = "quality.season_anomalies"

// Event is the JSON payload stored under the "data" field.
type Event struct {
	ID        string             `json:"id"`
	PlayerID  int                `json:"player_id"`
	Kind      career.AnomalyKind `json:"kind"`
	Season    string             `json:"season"`
	Detail    string             `json:"detail"`
	Timestamp time.Time          `json:"ts"`
}

// Publisher appends anomaly events to StreamName. A nil *Publisher is valid
// and publishes nothing.
type Publisher struct {
	client *redis.Client
	now    func() time.Time
}

// NewPublisher connects to redisURL. An empty URL returns a nil publisher.
func NewPublisher(redisURL string) (*Publisher, error) {
	if redisURL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Publisher{client: client, now: time.Now}, nil
}

// Close closes the Redis connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.client.Close()
}

// Publish appends one event per anomaly. It stops at the first failure.
func (p *Publisher) Publish(ctx context.Context, playerID int, anomalies []career.Anomaly) error {
	if p == nil || len(anomalies) == 0 {
		return nil
	}
	for _, a := range anomalies {
		ev := newEvent(playerID, a, p.now())
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal anomaly event: %w", err)
		}

		err = p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: StreamName,
			Values: map[string]interface{}{
				"data":      string(data),
				"player_id": playerID,
				"kind":      string(a.Kind),
				"timestamp": ev.Timestamp.Unix(),
			},
		}).Err()
		if err != nil {
			return fmt.Errorf("publish anomaly %s: %w", ev.ID, err)
		}
	}
	return nil
}

func newEvent(playerID int, a career.Anomaly, ts time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		Kind:      a.Kind,
		Season:    a.Season,
		Detail:    a.Detail,
		Timestamp: ts.UTC(),
	}
}
