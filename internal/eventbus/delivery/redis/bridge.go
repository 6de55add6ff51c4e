package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"social-realtime/internal/eventbus"
	pkgRedis "social-realtime/pkg/redis"
)

const externalOrigin = "external"

func (b *bridge) Start(ctx context.Context) error {
	msgs, cancel, err := b.redis.Subscribe(ctx, b.channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	b.mu.Lock()
	b.cancelSub = cancel
	b.cancelTap = b.bus.SubscribeAll(b.forward)
	b.mu.Unlock()

	b.wg.Add(1)
	go b.listen(ctx, msgs)

	b.logger.Infof(ctx, "Redis event bridge started on %s", b.channel)
	return nil
}

// forward publishes locally raised events to Redis.
func (b *bridge) forward(ctx context.Context, ev eventbus.Event) {
	if ev.Origin != "" {
		return
	}
	ev.Origin = b.origin
	raw, err := json.Marshal(ev)
	if err != nil {
		b.logger.Errorf(ctx, "encode event %s: %v", ev.Name, err)
		return
	}
	if err := b.redis.Publish(ctx, b.channel, raw); err != nil {
		b.logger.Warnf(ctx, "mirror event %s to redis failed: %v", ev.Name, err)
	}
}

func (b *bridge) listen(ctx context.Context, msgs <-chan pkgRedis.Message) {
	defer b.wg.Done()

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				next, resubscribed := b.resubscribe(ctx)
				if !resubscribed {
					return
				}
				msgs = next
				continue
			}
			b.handleMessage(ctx, msg)
		case <-b.quit:
			return
		}
	}
}

func (b *bridge) resubscribe(ctx context.Context) (<-chan pkgRedis.Message, bool) {
	for attempt := 1; attempt <= b.maxRetries; attempt++ {
		b.logger.Warnf(ctx, "redis event channel closed, resubscribing (attempt %d/%d)", attempt, b.maxRetries)
		select {
		case <-time.After(b.retryDelay):
		case <-b.quit:
			return nil, false
		}

		msgs, cancel, err := b.redis.Subscribe(ctx, b.channel)
		if err != nil {
			b.logger.Errorf(ctx, "resubscribe %s: %v", b.channel, err)
			continue
		}
		b.mu.Lock()
		b.cancelSub = cancel
		b.mu.Unlock()
		return msgs, true
	}
	b.logger.Errorf(ctx, "giving up on redis event channel %s after %d attempts", b.channel, b.maxRetries)
	return nil, false
}

func (b *bridge) handleMessage(ctx context.Context, msg pkgRedis.Message) {
	var ev eventbus.Event
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		b.logger.Warnf(ctx, "invalid event on %s: %v", msg.Channel, err)
		return
	}
	if ev.Name == "" || ev.Origin == b.origin {
		return
	}
	if ev.Origin == "" {
		ev.Origin = externalOrigin
	}
	b.bus.Emit(ctx, ev)
}

func (b *bridge) Shutdown(ctx context.Context) error {
	close(b.quit)

	b.mu.Lock()
	cancelTap, cancelSub := b.cancelTap, b.cancelSub
	b.mu.Unlock()

	if cancelTap != nil {
		cancelTap()
	}
	if cancelSub != nil {
		if err := cancelSub(); err != nil {
			b.logger.Errorf(ctx, "failed to close pubsub: %v", err)
		}
	}
	b.wg.Wait()
	b.logger.Infof(ctx, "Redis event bridge stopped")
	return nil
}
