package session

import (
	"errors"
	"fmt"
	"sync"
)

type fakeSub struct {
	id     string
	topic  string
	client *fakeClient
}

func (s *fakeSub) ID() string    { return s.id }
func (s *fakeSub) Topic() string { return s.topic }

func (s *fakeSub) Unsubscribe() error {
	s.client.mu.Lock()
	defer s.client.mu.Unlock()
	s.client.unsubscribed = append(s.client.unsubscribed, s.topic)
	delete(s.client.subs, s.id)
	return nil
}

type published struct {
	destination string
	body        string
}

// fakeClient records transport calls. Tests drive lifecycle events through
// its listener from the test goroutine.
type fakeClient struct {
	mu           sync.Mutex
	creds        Credentials
	listener     Listener
	activated    int
	deactivated  int
	ready        bool
	failSubs     map[string]int
	publishErr   error
	onPublish    func(destination string)
	seq          int
	subscribed   []string
	unsubscribed []string
	subs         map[string]func(Frame)
	subTopics    map[string]string
	sent         []published
}

func newFakeClient(creds Credentials, l Listener) *fakeClient {
	return &fakeClient{
		creds:     creds,
		listener:  l,
		ready:     true,
		failSubs:  make(map[string]int),
		subs:      make(map[string]func(Frame)),
		subTopics: make(map[string]string),
	}
}

func (c *fakeClient) Activate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activated++
}

func (c *fakeClient) Deactivate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deactivated++
	c.ready = false
	return nil
}

func (c *fakeClient) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

func (c *fakeClient) setReady(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = v
}

func (c *fakeClient) setPublishErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publishErr = err
}

func (c *fakeClient) setOnPublish(fn func(destination string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPublish = fn
}

// failSubscribe makes the next n registrations on topic fail.
func (c *fakeClient) failSubscribe(topic string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failSubs[topic] = n
}

func (c *fakeClient) Subscribe(topic string, deliver func(Frame)) (Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := c.failSubs[topic]; n > 0 {
		c.failSubs[topic] = n - 1
		return nil, fmt.Errorf("subscribe %s: %w", topic, ErrNotConnected)
	}
	c.seq++
	id := fmt.Sprintf("sub-%d", c.seq)
	c.subscribed = append(c.subscribed, topic)
	c.subs[id] = deliver
	c.subTopics[id] = topic
	return &fakeSub{id: id, topic: topic, client: c}, nil
}

// Publish runs onPublish first, outside the client lock, the way a real
// transport keeps reading frames while a send waits for the write queue.
func (c *fakeClient) Publish(destination string, body []byte) error {
	c.mu.Lock()
	hook := c.onPublish
	c.mu.Unlock()
	if hook != nil {
		hook(destination)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.publishErr != nil {
		return c.publishErr
	}
	c.sent = append(c.sent, published{destination: destination, body: string(body)})
	return nil
}

// push delivers body to every live transport subscription on topic.
func (c *fakeClient) push(topic string, body string) {
	c.mu.Lock()
	var targets []func(Frame)
	for id, fn := range c.subs {
		if c.subTopics[id] == topic {
			targets = append(targets, fn)
		}
	}
	c.mu.Unlock()
	for _, fn := range targets {
		fn(Frame{Destination: topic, Body: []byte(body)})
	}
}

func (c *fakeClient) subscribedTopics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.subscribed...)
}

func (c *fakeClient) unsubscribedTopics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.unsubscribed...)
}

func (c *fakeClient) sentMessages() []published {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]published(nil), c.sent...)
}

func (c *fakeClient) deactivations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deactivated
}

type fakeFactory struct {
	mu      sync.Mutex
	clients []*fakeClient
}

func (f *fakeFactory) NewClient(creds Credentials, l Listener) Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := newFakeClient(creds, l)
	f.clients = append(f.clients, c)
	return c
}

func (f *fakeFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *fakeFactory) last() *fakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.clients) == 0 {
		return nil
	}
	return f.clients[len(f.clients)-1]
}

var errBoom = errors.New("boom")
