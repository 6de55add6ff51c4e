package session

import "slices"

// outboundMessage is a serialized publish request awaiting a connection.
type outboundMessage struct {
	destination string
	body        []byte
}

// outbox is the FIFO of publishes issued while disconnected.
type outbox struct {
	items []outboundMessage
}

func (o *outbox) enqueue(destination string, body []byte) {
	o.items = append(o.items, outboundMessage{destination: destination, body: body})
}

// drain returns every queued message in submission order and empties the queue.
func (o *outbox) drain() []outboundMessage {
	items := o.items
	o.items = nil
	return items
}

func (o *outbox) len() int {
	return len(o.items)
}

// putBack returns unsent messages to the head of the queue, ahead of
// anything queued since they were drained.
func (o *outbox) putBack(items []outboundMessage) {
	if len(items) == 0 {
		return
	}
	o.items = append(slices.Clip(items), o.items...)
}
