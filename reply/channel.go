package reply

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pellucid-io/scopes/log"
	"github.com/pellucid-io/scopes/types"
)

// State is the lifecycle state of a reply channel.
type State string

// Channel states. Finished and errored are absorbing: every mutating call on
// a terminated channel fails with ErrClosedChannel.
const (
	StateOpen     State = "open"
	StateFinished State = "finished"
	StateErrored  State = "errored"
)

// Config holds optional channel construction parameters.
type Config struct {
	// ChannelID identifies the channel on the wire. Empty generates one.
	ChannelID string
	// Logger receives channel lifecycle logs. Nil disables logging.
	Logger *log.Logger
	// Context is used for sink sends. Nil means context.Background().
	Context context.Context
}

// channel carries the state shared by both reply variants.
//
// Thread safety: mu guards state, seq and stats, and is held across the
// sink send so events leave in sequence order. The protocol assumes a
// single producing goroutine per channel; the lock makes a violation of
// that assumption fail loudly (ordered, checked) instead of racing.
type channel struct {
	id     string
	kind   types.ChannelKind
	sink   Sink
	logger *log.Logger
	ctx    context.Context

	mu    sync.Mutex
	state State
	seq   int64
	stats stats
}

func newChannel(kind types.ChannelKind, sink Sink, cfg Config) *channel {
	id := cfg.ChannelID
	if id == "" {
		id = uuid.NewString()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Nop()
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &channel{
		id:     id,
		kind:   kind,
		sink:   sink,
		logger: logger,
		ctx:    ctx,
		state:  StateOpen,
	}
}

// ID returns the channel's wire identifier.
func (c *channel) ID() string { return c.id }

// State returns the channel's current lifecycle state.
func (c *channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stats returns a consistent snapshot of the channel's push counters.
func (c *channel) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.snapshot(c.state)
}

// send transmits one event. Caller must hold mu and have verified the state.
func (c *channel) send(op string, ev *types.ReplyEvent) error {
	c.seq++
	ev.ProtocolVersion = types.ProtocolVersion
	ev.ChannelID = c.id
	ev.Kind = c.kind
	ev.Seq = c.seq
	ev.Ts = time.Now().UTC().Format(time.RFC3339Nano)

	if err := c.sink.Send(c.ctx, ev); err != nil {
		c.stats.errors++
		c.logger.Error("sink rejected event", map[string]any{
			"op":    op,
			"seq":   ev.Seq,
			"type":  string(ev.Type),
			"error": err.Error(),
		})
		return sinkErr(c.id, op, err)
	}
	return nil
}

// Finished transitions the channel to its finished state and signals the
// consumer that no further events follow.
//
// Finished is not idempotent: a second terminal call is a caller error and
// fails with ErrClosedChannel.
func (c *channel) Finished() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen {
		return closedErr(c.id, "finished")
	}
	// The state transition is taken even if the sink rejects the event:
	// termination is exactly-once from the producer's point of view.
	c.state = StateFinished
	err := c.send("finished", &types.ReplyEvent{Type: types.EventTypeFinished})
	c.logger.Info("channel finished", map[string]any{"events": c.seq})
	return err
}

// Error transitions the channel to its errored state, carrying a diagnostic
// to the consumer. Mutually exclusive with Finished.
func (c *channel) Error(cause error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen {
		return closedErr(c.id, "error")
	}
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	c.state = StateErrored
	err := c.send("error", &types.ReplyEvent{
		Type:    types.EventTypeError,
		Message: message,
	})
	c.logger.Info("channel errored", map[string]any{"message": message})
	return err
}
