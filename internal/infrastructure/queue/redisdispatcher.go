// Package queue provides a Redis list backed event dispatcher. Queued events
// survive process restarts.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"repairdesk/internal/domain/shared/events"
	"repairdesk/internal/shared/goroutine"
	"repairdesk/internal/shared/logger"
)

const (
	popTimeout     = time.Second
	publishTimeout = 3 * time.Second
)

// Decoder rebuilds a typed event from its stored form.
type Decoder func(eventType string, data []byte) (events.DomainEvent, error)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RedisEventDispatcher pushes events onto a Redis list with LPUSH and serves
// them to subscribed handlers from BRPOP workers.
type RedisEventDispatcher struct {
	client   redis.Cmdable
	key      string
	maxLen   int64
	workers  int
	decode   Decoder
	logger   logger.Interface
	handlers map[string][]events.EventHandler

	mu      sync.RWMutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

var _ events.EventDispatcher = (*RedisEventDispatcher)(nil)

func NewRedisEventDispatcher(client redis.Cmdable, key string, maxLen, workers int, decode Decoder, log logger.Interface) *RedisEventDispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &RedisEventDispatcher{
		client:   client,
		key:      key,
		maxLen:   int64(maxLen),
		workers:  workers,
		decode:   decode,
		logger:   log,
		handlers: make(map[string][]events.EventHandler),
	}
}

// Publish appends event to the list. A list already holding maxLen items
// rejects the event with events.ErrQueueFull.
func (d *RedisEventDispatcher) Publish(event events.DomainEvent) error {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()
	if !running {
		return events.ErrDispatcherNotRunning
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	data, err := json.Marshal(envelope{Type: event.GetEventType(), Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if d.maxLen > 0 {
		n, err := d.client.LLen(ctx, d.key).Result()
		if err != nil {
			return fmt.Errorf("failed to read queue length: %w", err)
		}
		if n >= d.maxLen {
			return events.ErrQueueFull
		}
	}

	if err := d.client.LPush(ctx, d.key, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue event: %w", err)
	}
	return nil
}

func (d *RedisEventDispatcher) Subscribe(eventType string, handler events.EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

func (d *RedisEventDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("event dispatcher is already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.running = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.consume(ctx)
	}

	d.logger.Infow("redis event dispatcher started", "key", d.key, "workers", d.workers)
	return nil
}

// Stop waits for in-flight events. Events still queued stay in Redis for the
// next start.
func (d *RedisEventDispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	d.cancel()
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Infow("redis event dispatcher stopped", "key", d.key)
	return nil
}

func (d *RedisEventDispatcher) consume(ctx context.Context) {
	defer d.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		result, err := d.client.BRPop(ctx, popTimeout, d.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			d.logger.Warnw("failed to pop event", "key", d.key, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(popTimeout):
			}
			continue
		}

		// result is [key, value]
		if len(result) == 2 {
			d.handle([]byte(result[1]))
		}
	}
}

func (d *RedisEventDispatcher) handle(data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		d.logger.Errorw("discarding malformed queued event", "error", err)
		return
	}

	event, err := d.decode(env.Type, env.Payload)
	if err != nil {
		d.logger.Errorw("discarding undecodable queued event", "event_type", env.Type, "error", err)
		return
	}

	d.mu.RLock()
	handlers := append([]events.EventHandler(nil), d.handlers[env.Type]...)
	d.mu.RUnlock()

	for _, h := range handlers {
		d.runHandler(h, event)
	}
}

func (d *RedisEventDispatcher) runHandler(h events.EventHandler, event events.DomainEvent) {
	defer goroutine.Recover(d.logger, "redis-event-handler")

	if !h.CanHandle(event.GetEventType()) {
		return
	}
	if err := h.Handle(context.Background(), event); err != nil {
		d.logger.Errorw("event handler failed",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
	}
}
