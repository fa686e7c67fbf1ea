package reply

import (
	"context"
	"sync"

	"github.com/pellucid-io/scopes/types"
)

// Sink is the consumer side of a reply channel. Implementations forward
// events to a transport, persist them, or stub for testing.
//
// Send is called synchronously from the pushing goroutine, one event at a
// time, in sequence order; an event has been handed to the consumer when
// Send returns nil. Implementations must not call back into the channel.
type Sink interface {
	// Send delivers one reply event.
	// Must respect context cancellation and deadlines.
	Send(ctx context.Context, ev *types.ReplyEvent) error

	// Close releases sink resources. Called once, after the channel's
	// last holder releases it.
	Close() error
}

// StubSink is a test sink that records events without delivering them.
type StubSink struct {
	mu sync.Mutex

	// ErrorOnSend, if non-nil, is returned by Send.
	ErrorOnSend error

	events []*types.ReplyEvent
	closed bool
}

// NewStubSink creates a new stub sink for testing.
func NewStubSink() *StubSink {
	return &StubSink{}
}

// Send records the event.
func (s *StubSink) Send(_ context.Context, ev *types.ReplyEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ErrorOnSend != nil {
		return s.ErrorOnSend
	}
	s.events = append(s.events, ev)
	return nil
}

// Close marks the sink as closed.
func (s *StubSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Events returns a snapshot of all recorded events in arrival order.
func (s *StubSink) Events() []*types.ReplyEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.ReplyEvent, len(s.events))
	copy(out, s.events)
	return out
}

// EventsOfType returns recorded events of one type, in arrival order.
func (s *StubSink) EventsOfType(t types.EventType) []*types.ReplyEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*types.ReplyEvent
	for _, ev := range s.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Closed reports whether Close was called.
func (s *StubSink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

var _ Sink = (*StubSink)(nil)
