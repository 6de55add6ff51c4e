package session

import (
	"context"
	"errors"

	"github.com/benbjohnson/clock"
)

// SetCredentials is the lifecycle trigger of the session. Complete
// credentials (re)start it; incomplete ones tear it down. The first login
// and a token refresh for the same user keep every subscription and queued
// message; a different user starts from an empty registry.
func (m *Manager) SetCredentials(ctx context.Context, creds Credentials) error {
	m.mu.Lock()

	switch {
	case !creds.Complete():
		m.teardownLocked()
		m.creds = creds
		m.mu.Unlock()
		m.logger.Info(ctx, "credentials cleared, session torn down")
		return nil

	case creds == m.creds && m.client != nil:
		m.mu.Unlock()
		return nil

	case m.creds.UserID != "" && creds.UserID != m.creds.UserID:
		m.teardownLocked()

	default:
		m.restartLocked()
	}

	m.creds = creds
	m.attempts = 0
	m.ctx = m.logger.With(context.Background(), "user_id", creds.UserID)
	m.mu.Unlock()

	return m.Connect(ctx)
}

// Connect activates a transport client for the current credentials. It is a
// no-op while a client exists or once the reconnect ceiling has been hit.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	if !m.creds.Complete() {
		m.mu.Unlock()
		return ErrMissingCredentials
	}
	if m.client != nil {
		m.mu.Unlock()
		m.logger.Debug(ctx, "connect skipped: session already active")
		return nil
	}
	if m.attempts >= m.opts.MaxReconnectAttempts {
		attempts := m.attempts
		m.mu.Unlock()
		m.logger.Warnf(ctx, "connect skipped: reconnect ceiling reached (%d attempts)", attempts)
		return nil
	}

	m.generation++
	client := m.factory.NewClient(m.creds, listener{m: m, gen: m.generation})
	m.client = client
	m.state = StateConnecting
	m.mu.Unlock()

	m.logger.Info(ctx, "activating realtime transport")
	client.Activate()
	return nil
}

// Disconnect releases every subscription, drops queued messages and
// deactivates the transport.
func (m *Manager) Disconnect(ctx context.Context) {
	m.mu.Lock()
	m.teardownLocked()
	m.mu.Unlock()
	m.logger.Info(ctx, "realtime session disconnected")
}

// ResetReconnect clears the reconnect counter so Connect may run again.
func (m *Manager) ResetReconnect() {
	m.mu.Lock()
	m.attempts = 0
	m.mu.Unlock()
}

// dispatch is the single entry point for transport events.
func (m *Manager) dispatch(gen uint64, ev Event) {
	m.mu.Lock()

	if gen != m.generation || m.client == nil {
		m.logger.Debugf(m.ctx, "ignoring %s event from stale transport", ev.Kind)
		m.mu.Unlock()
		return
	}

	switch ev.Kind {
	case EventConnected:
		m.attempts = 0
		m.conns++
		m.state = StateConnected
		m.logger.Info(m.ctx, "realtime session connected")
		m.mu.Unlock()
		m.flush()
		return

	case EventProtocolError:
		m.logger.Errorf(m.ctx, "realtime protocol error: %v", ev.Err)
		m.failLocked(ev)

	default:
		if ev.Err != nil {
			m.logger.Warnf(m.ctx, "realtime transport %s: %v", ev.Kind, ev.Err)
		} else {
			m.logger.Infof(m.ctx, "realtime transport %s", ev.Kind)
		}
		m.failLocked(ev)
	}
	m.mu.Unlock()
}

func (m *Manager) failLocked(ev Event) {
	m.stopFlushTimerLocked()
	if m.state == StateConnected {
		released := m.registry.demote()
		m.logger.Infof(m.ctx, "connection lost, %d subscriptions moved back to pending", len(released))
	}
	m.state = StateDisconnected
	m.attempts++

	if m.attempts < m.opts.MaxReconnectAttempts {
		return
	}

	m.logger.Errorf(m.ctx, "giving up after %d reconnect attempts (last: %s)", m.attempts, ev.Kind)
	client := m.client
	m.client = nil
	m.generation++
	if err := client.Deactivate(); err != nil {
		m.logger.Warnf(m.ctx, "deactivate transport: %v", err)
	}
}

// flush registers pending subscriptions, then replays queued messages.
// Only one flush runs at a time; a request made meanwhile makes the running
// one go round again.
func (m *Manager) flush() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.flushing {
		m.flushAgain = true
		return
	}
	m.flushing = true
	for {
		m.flushAgain = false
		more := m.flushRoundLocked()
		if !more && !m.flushAgain {
			break
		}
	}
	m.flushing = false
}

// flushRoundLocked hands one batch of pending work to the transport with mu
// released, then files the results. It reports whether more work arrived
// for the same connection while the batch was out.
func (m *Manager) flushRoundLocked() bool {
	if m.state != StateConnected {
		return false
	}
	m.stopFlushTimerLocked()
	if !m.client.Ready() {
		m.logger.Debug(m.ctx, "transport not ready, flush deferred")
		m.scheduleFlushLocked()
		return false
	}

	survivors, dropped := m.registry.takePending()
	for _, e := range dropped {
		m.logger.Warnf(m.ctx, "dropping duplicate pending subscription %q", e.id)
	}
	msgs := m.outbox.drain()
	if len(survivors) == 0 && len(msgs) == 0 {
		return false
	}
	for _, e := range survivors {
		m.registry.inflight(e)
	}

	client, gen, conns, epoch, ctx := m.client, m.generation, m.conns, m.epoch, m.ctx
	m.mu.Unlock()

	subs := make([]Subscription, len(survivors))
	errs := make([]error, len(survivors))
	for i, e := range survivors {
		subs[i], errs[i] = client.Subscribe(e.topic, m.deliverer(ctx, e))
	}

	var unsent []outboundMessage
	for i, msg := range msgs {
		err := client.Publish(msg.destination, msg.body)
		if errors.Is(err, ErrNotConnected) {
			m.logger.Debugf(ctx, "transport went away, %d queued messages kept", len(msgs)-i)
			unsent = msgs[i:]
			break
		}
		if err != nil {
			m.dropped.Add(1)
			m.logger.Warnf(ctx, "queued publish to %s dropped: %v", msg.destination, err)
			continue
		}
		m.published.Add(1)
	}

	m.mu.Lock()
	current := m.currentLocked(gen, conns)
	failed := 0
	for i, e := range survivors {
		switch {
		case errs[i] != nil:
			m.logger.Warnf(m.ctx, "subscribe %q to %s failed, will retry: %v", e.id, e.topic, errs[i])
			m.registry.requeue(e)
			failed++
		case current && m.registry.tracked(e):
			m.registry.addLive(e, subs[i])
			m.logger.Debugf(m.ctx, "subscribed %q to %s", e.id, e.topic)
		default:
			m.releaseLocked(subs[i])
			m.registry.requeue(e)
		}
	}

	if len(unsent) > 0 {
		if epoch == m.epoch {
			m.outbox.putBack(unsent)
		} else {
			m.dropped.Add(int64(len(unsent)))
		}
	}

	if !current {
		return false
	}
	if failed > 0 || len(unsent) > 0 {
		m.scheduleFlushLocked()
		return false
	}
	return len(m.registry.pending) > 0 || m.outbox.len() > 0
}

// currentLocked reports whether the connection captured as (gen, conns) is
// still the one in use.
func (m *Manager) currentLocked(gen, conns uint64) bool {
	return gen == m.generation && conns == m.conns && m.state == StateConnected
}

// releaseLocked drops a transport registration that lost its owner.
func (m *Manager) releaseLocked(sub Subscription) {
	if err := sub.Unsubscribe(); err != nil {
		m.logger.Debugf(m.ctx, "release %s: %v", sub.Topic(), err)
	}
}

func (m *Manager) scheduleFlushLocked() {
	if m.flushTimer != nil {
		return
	}
	gen := m.generation
	var t *clock.Timer
	t = m.clock.AfterFunc(m.opts.FlushRetryDelay, func() {
		m.mu.Lock()
		if m.flushTimer != t {
			m.mu.Unlock()
			return
		}
		m.flushTimer = nil
		live := gen == m.generation && m.state == StateConnected
		m.mu.Unlock()
		if live {
			m.flush()
		}
	})
	m.flushTimer = t
}

func (m *Manager) stopFlushTimerLocked() {
	if m.flushTimer != nil {
		m.flushTimer.Stop()
		m.flushTimer = nil
	}
}

// restartLocked drops the transport but keeps subscriptions and queued
// messages for the next connection.
func (m *Manager) restartLocked() {
	m.stopFlushTimerLocked()
	if m.state == StateConnected {
		for _, sub := range m.registry.demote() {
			if err := sub.Unsubscribe(); err != nil {
				m.logger.Debugf(m.ctx, "unsubscribe %s during restart: %v", sub.Topic(), err)
			}
		}
	}
	m.deactivateLocked()
}

func (m *Manager) teardownLocked() {
	m.stopFlushTimerLocked()
	m.epoch++
	if m.state == StateConnected {
		for _, e := range m.registry.liveEntries() {
			if err := e.live.Unsubscribe(); err != nil {
				m.logger.Warnf(m.ctx, "unsubscribe %q during teardown: %v", e.id, err)
			}
		}
	}
	m.registry.reset()
	if n := m.outbox.len(); n > 0 {
		m.dropped.Add(int64(n))
		m.logger.Infof(m.ctx, "dropping %d queued messages on teardown", n)
	}
	m.outbox.drain()
	m.deactivateLocked()
	m.attempts = 0
}

func (m *Manager) deactivateLocked() {
	if m.client != nil {
		if err := m.client.Deactivate(); err != nil {
			m.logger.Warnf(m.ctx, "deactivate transport: %v", err)
		}
		m.client = nil
	}
	m.generation++
	m.state = StateDisconnected
}
