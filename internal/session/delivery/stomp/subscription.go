package stomp

import (
	gostomp "github.com/go-stomp/stomp/v3"

	"social-realtime/internal/session"
)

type subscription struct {
	sub    *gostomp.Subscription
	topic  string
	client *client
}

func (s *subscription) ID() string    { return s.sub.Id() }
func (s *subscription) Topic() string { return s.topic }

// Unsubscribe sends UNSUBSCRIBE without waiting for the broker.
func (s *subscription) Unsubscribe() error {
	go func() {
		if err := s.sub.Unsubscribe(); err != nil {
			s.client.logger.Debugf(s.client.ctx, "unsubscribe %s: %v", s.topic, err)
		}
	}()
	return nil
}

// pump hands every MESSAGE frame of the subscription to deliver, in order.
func (s *subscription) pump(ws *wsConn, deliver func(session.Frame)) {
	for msg := range s.sub.C {
		if msg.Err != nil {
			if !ws.closed() {
				s.client.logger.Warnf(s.client.ctx, "stomp error on %s: %v", s.topic, msg.Err)
				s.client.noteProtocolError(ws, msg.Err)
			}
			return
		}
		deliver(toFrame(msg, s.topic))
	}
}

func toFrame(msg *gostomp.Message, topic string) session.Frame {
	f := session.Frame{
		Destination: msg.Destination,
		Body:        msg.Body,
	}
	if f.Destination == "" {
		f.Destination = topic
	}
	if msg.Header != nil && msg.Header.Len() > 0 {
		f.Headers = make(map[string]string, msg.Header.Len())
		for i := 0; i < msg.Header.Len(); i++ {
			k, v := msg.Header.GetAt(i)
			if _, ok := f.Headers[k]; !ok {
				f.Headers[k] = v
			}
		}
	}
	return f
}
