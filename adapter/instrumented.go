package adapter

import (
	"context"

	"github.com/pellucid-io/scopes/metrics"
	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
)

// InstrumentedSink wraps a reply.Sink and records delivery metrics.
// Each Send increments the collector's sent or failure counters, tagged
// with the event type.
type InstrumentedSink struct {
	inner     reply.Sink
	collector *metrics.Collector
}

// NewInstrumentedSink wraps a sink with metrics instrumentation.
// A nil collector is allowed; instrumentation becomes a no-op.
func NewInstrumentedSink(inner reply.Sink, collector *metrics.Collector) *InstrumentedSink {
	return &InstrumentedSink{inner: inner, collector: collector}
}

// Send delegates to the inner sink and records the outcome.
func (s *InstrumentedSink) Send(ctx context.Context, ev *types.ReplyEvent) error {
	err := s.inner.Send(ctx, ev)
	s.collector.RecordSend(string(ev.Type), err)
	return err
}

// Close delegates to the inner sink.
func (s *InstrumentedSink) Close() error {
	return s.inner.Close()
}

var _ reply.Sink = (*InstrumentedSink)(nil)
