package wire

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
)

// JSONLSink writes each event as one JSON line. The format is meant for
// archival and offline inspection, not for the live consumer path: lines
// are human-greppable and every archived stream replays with ReadJSONL.
type JSONLSink struct {
	mu     sync.Mutex
	w      *bufio.Writer
	under  io.Writer
	closed bool
}

var _ reply.Sink = (*JSONLSink)(nil)

// NewJSONLSink creates a JSONL sink over w.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{w: bufio.NewWriter(w), under: w}
}

// Send appends one event line.
func (s *JSONLSink) Send(ctx context.Context, ev *types.ReplyEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return io.ErrClosedPipe
	}
	if _, err := s.w.Write(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Close flushes buffered lines and closes the underlying writer if it is
// closable. Close is idempotent.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.w.Flush(); err != nil {
		return err
	}
	if c, ok := s.under.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ReadJSONL decodes an archived event stream, one JSON event per line.
// Blank lines are skipped.
func ReadJSONL(r io.Reader) ([]*types.ReplyEvent, error) {
	var events []*types.ReplyEvent
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxPayloadSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev types.ReplyEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
