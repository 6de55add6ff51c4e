package eventbus

import "context"

// Bus fans events out to subscribers inside the process.
type Bus interface {
	// Publish encodes payload as JSON and dispatches it to the subscribers of name.
	Publish(ctx context.Context, name Name, payload any) error
	// Emit dispatches an already encoded event.
	Emit(ctx context.Context, ev Event)
	// Subscribe registers h for name. The returned func cancels it.
	Subscribe(name Name, h Handler) (cancel func())
	// SubscribeAll registers h for every event.
	SubscribeAll(h Handler) (cancel func())
}
