package wire

import (
	"context"
	"io"
	"sync"

	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
)

// FrameSink is a reply sink that writes each event as one msgpack frame
// to an underlying stream, typically a pipe or socket to the consumer
// process. Writes happen on the producer goroutine; a slow stream slows
// the producer, which is the intended backpressure.
type FrameSink struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

var _ reply.Sink = (*FrameSink)(nil)

// NewFrameSink creates a frame sink over w.
func NewFrameSink(w io.Writer) *FrameSink {
	return &FrameSink{w: w}
}

// Send encodes and writes one event frame.
func (s *FrameSink) Send(ctx context.Context, ev *types.ReplyEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	frame, err := EncodeEvent(ev)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return io.ErrClosedPipe
	}
	if _, err := s.w.Write(frame); err != nil {
		return &FrameError{
			Kind: FrameErrorPartial,
			Msg:  "failed to write frame",
			Err:  err,
		}
	}
	return nil
}

// Close closes the sink and the underlying stream if it is closable.
// Close is idempotent.
func (s *FrameSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
