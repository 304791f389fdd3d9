package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher periodically writes metrics snapshots to a Redis key so that
// dashboards and operators can watch a limiter from outside the process.
// It is an observability sink only: admission state never leaves the
// process and Redis being down never affects Acquire.
type Publisher struct {
	client   *redis.Client
	metrics  *Metrics
	key      string
	ttl      time.Duration
	interval time.Duration
}

// PublisherConfig configures a Publisher.
type PublisherConfig struct {
	Addr     string        // Redis address (e.g., "localhost:6379")
	Password string        // Redis password (empty for no auth)
	DB       int           // Redis database number
	Key      string        // Key to publish under (default: "gatelimit:metrics")
	TTL      time.Duration // TTL for the published snapshot (default: 1 hour)
	Interval time.Duration // How often to publish (default: 10 seconds)
}

// NewPublisher creates a Redis-backed snapshot publisher for m.
func NewPublisher(m *Metrics, config PublisherConfig) *Publisher {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	key := config.Key
	if key == "" {
		key = "gatelimit:metrics"
	}
	ttl := config.TTL
	if ttl == 0 {
		ttl = 1 * time.Hour
	}
	interval := config.Interval
	if interval == 0 {
		interval = 10 * time.Second
	}

	return &Publisher{
		client:   client,
		metrics:  m,
		key:      key,
		ttl:      ttl,
		interval: interval,
	}
}

// Ping verifies connectivity to Redis.
func (p *Publisher) Ping() error {
	return p.client.Ping(context.Background()).Err()
}

// Publish writes one snapshot to Redis immediately.
func (p *Publisher) Publish(ctx context.Context) error {
	data, err := json.Marshal(p.metrics.GetSnapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return p.client.Set(ctx, p.key, data, p.ttl).Err()
}

// Start begins publishing snapshots in the background at the configured
// interval. Call the returned function to stop publishing and close the
// Redis connection. Publish errors are dropped: a missing sink must not
// disturb the limiter.
func (p *Publisher) Start() func() {
	ticker := time.NewTicker(p.interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				p.Publish(context.Background())
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
		p.client.Close()
	}
}
