package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"
)

// Subscribe registers handler for topic under id. A duplicate id returns
// the existing live handle (nil while pending) with ErrAlreadyRegistered.
// While not connected the request is kept pending and (nil, nil) is returned.
func (m *Manager) Subscribe(topic string, handler Handler, id string) (Subscription, error) {
	if strings.TrimSpace(topic) == "" || strings.TrimSpace(id) == "" || handler == nil {
		return nil, ErrInvalidSubscription
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.registry.get(id); ok {
		m.logger.Warnf(m.ctx, "subscription %q already registered on %s", id, e.topic)
		return e.live, ErrAlreadyRegistered
	}

	e := m.registry.newEntry(id, topic, handler)
	if m.state != StateConnected || m.flushing || !m.client.Ready() {
		m.registry.addPending(e)
		m.logger.Debugf(m.ctx, "subscription %q to %s pending", id, topic)
		if m.state == StateConnected && !m.flushing {
			m.scheduleFlushLocked()
		}
		return nil, nil
	}

	m.registry.inflight(e)
	client, gen, conns, ctx := m.client, m.generation, m.conns, m.ctx
	m.mu.Unlock()
	sub, err := client.Subscribe(topic, m.deliverer(ctx, e))
	m.mu.Lock()

	switch {
	case err != nil:
		m.logger.Warnf(m.ctx, "subscribe %q to %s failed, queued for retry: %v", id, topic, err)
	case m.currentLocked(gen, conns) && m.registry.tracked(e):
		m.registry.addLive(e, sub)
		m.logger.Debugf(m.ctx, "subscribed %q to %s", id, topic)
		return sub, nil
	default:
		// connection replaced or id unsubscribed while registering
		m.releaseLocked(sub)
	}

	m.registry.requeue(e)
	if m.state == StateConnected {
		m.scheduleFlushLocked()
	}
	return nil, nil
}

// Unsubscribe drops the subscription registered under id. Unknown ids are
// logged and ignored.
func (m *Manager) Unsubscribe(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.registry.remove(id)
	if !ok {
		m.logger.Warnf(m.ctx, "unsubscribe: unknown subscription %q", id)
		return
	}
	if e.live == nil {
		m.logger.Debugf(m.ctx, "pending subscription %q removed", id)
		return
	}
	if err := e.live.Unsubscribe(); err != nil {
		m.logger.Warnf(m.ctx, "unsubscribe %q from %s: %v", id, e.topic, err)
	}
	e.live = nil
}

// Publish serializes payload as JSON and sends it to destination, or queues
// it until the session is connected. Queued messages always go out before
// newer ones. Failures are logged, never returned.
func (m *Manager) Publish(destination string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		m.dropped.Add(1)
		m.logger.Errorf(m.ctx, "publish to %s: encode payload: %v", destination, err)
		return
	}

	m.mu.Lock()
	if m.state != StateConnected || m.flushing || m.outbox.len() > 0 || !m.client.Ready() {
		m.outbox.enqueue(destination, body)
		m.logger.Debugf(m.ctx, "publish to %s queued (%d waiting)", destination, m.outbox.len())
		if m.state == StateConnected && !m.flushing {
			m.scheduleFlushLocked()
		}
		m.mu.Unlock()
		return
	}
	client, epoch, ctx := m.client, m.epoch, m.ctx
	m.mu.Unlock()

	err = client.Publish(destination, body)
	switch {
	case err == nil:
		m.published.Add(1)
	case errors.Is(err, ErrNotConnected):
		m.mu.Lock()
		defer m.mu.Unlock()
		if epoch != m.epoch {
			m.dropped.Add(1)
			m.logger.Debugf(ctx, "publish to %s dropped: session torn down", destination)
			return
		}
		m.outbox.enqueue(destination, body)
		m.logger.Debugf(ctx, "transport went away, publish to %s queued", destination)
		if m.state == StateConnected && !m.flushing {
			m.scheduleFlushLocked()
		}
	default:
		m.dropped.Add(1)
		m.logger.Warnf(ctx, "publish to %s dropped: %v", destination, err)
	}
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Stats returns a snapshot of the session counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	live, pending := m.registry.counts()
	st := Stats{
		State:                m.state,
		UserID:               m.creds.UserID,
		ReconnectAttempts:    m.attempts,
		ReconnectHalted:      m.client == nil && m.attempts >= m.opts.MaxReconnectAttempts,
		LiveSubscriptions:    live,
		PendingSubscriptions: pending,
		QueuedMessages:       m.outbox.len(),
	}
	m.mu.Unlock()

	st.MessagesPublished = m.published.Load()
	st.MessagesDelivered = m.delivered.Load()
	st.MessagesDropped = m.dropped.Load()
	st.DecodeFailures = m.decodeFailures.Load()
	return st
}

// deliverer returns the frame callback handed to the transport for e. It
// never takes the session lock, so a transport blocked on a full write queue
// keeps draining inbound frames.
func (m *Manager) deliverer(ctx context.Context, e *entry) func(Frame) {
	return func(f Frame) {
		if !e.active.Load() {
			m.logger.Debugf(ctx, "frame for inactive subscription %q discarded", e.id)
			return
		}
		if !utf8.Valid(f.Body) || !json.Valid(f.Body) {
			m.decodeFailures.Add(1)
			m.logger.Warnf(ctx, "malformed payload on %s for %q skipped", f.Destination, e.id)
			return
		}

		topic := f.Destination
		if topic == "" {
			topic = e.topic
		}
		m.invoke(ctx, e, Message{
			SubscriptionID: e.id,
			Topic:          topic,
			Headers:        f.Headers,
			Body:           json.RawMessage(f.Body),
		})
	}
}

func (m *Manager) invoke(ctx context.Context, e *entry, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf(ctx, "handler for %q panicked: %v", e.id, r)
		}
	}()
	m.delivered.Add(1)
	e.handler(ctx, msg)
}
