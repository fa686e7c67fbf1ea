package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/pellucid-io/scopes/log"
	"github.com/pellucid-io/scopes/metrics"
	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
)

// Runner dispatches queries to a Scope. Each query gets a fresh reply
// channel over the supplied sink and runs in its own goroutine; the
// runner guarantees the channel terminates exactly once no matter how
// the body exits: normal return, error return, panic, or cancellation.
type Runner struct {
	scope     Scope
	logger    *log.Logger
	collector *metrics.Collector
}

// NewRunner creates a runner for the given scope. A nil logger disables
// logging; a nil collector disables metrics.
func NewRunner(scope Scope, logger *log.Logger, collector *metrics.Collector) *Runner {
	if logger == nil {
		logger = log.Nop()
	}
	return &Runner{scope: scope, logger: logger, collector: collector}
}

// Invocation tracks one in-flight query.
type Invocation struct {
	channelID string
	done      chan struct{}
	err       error
}

// ChannelID returns the reply channel id serving this invocation.
func (inv *Invocation) ChannelID() string { return inv.channelID }

// Done is closed when the body has returned and the channel has
// terminated.
func (inv *Invocation) Done() <-chan struct{} { return inv.done }

// Wait blocks until the invocation completes or ctx is canceled, and
// returns the error the channel was terminated with, if any.
func (inv *Invocation) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-inv.done:
		return inv.err
	}
}

// Search runs one search query against the scope.
func (r *Runner) Search(ctx context.Context, query *CannedQuery, metadata *SearchMetadata, sink reply.Sink) *Invocation {
	rep := reply.NewSearchReply(sink, reply.Config{Logger: r.logger, Context: ctx})
	inv := &Invocation{channelID: rep.ID(), done: make(chan struct{})}

	go func() {
		defer close(inv.done)
		inv.err = r.dispatch(ctx, rep, "search", func() error {
			return r.scope.Search(ctx, query, metadata, rep)
		})
	}()
	return inv
}

// Preview runs one preview request against the scope.
func (r *Runner) Preview(ctx context.Context, result *types.CategorisedResult, metadata *ActionMetadata, sink reply.Sink) *Invocation {
	rep := reply.NewPreviewReply(sink, reply.Config{Logger: r.logger, Context: ctx})
	inv := &Invocation{channelID: rep.ID(), done: make(chan struct{})}

	go func() {
		defer close(inv.done)
		inv.err = r.dispatch(ctx, rep, "preview", func() error {
			return r.scope.Preview(ctx, result, metadata, rep)
		})
	}()
	return inv
}

// terminator is the terminal slice of a reply channel.
type terminator interface {
	ID() string
	State() reply.State
	Finished() error
	Error(err error) error
}

// dispatch runs the body and converts its exit into the channel's
// terminal event. A body that already terminated the channel itself wins;
// the runner's own terminal call then fails with ErrClosedChannel and is
// ignored.
func (r *Runner) dispatch(ctx context.Context, rep terminator, op string, body func() error) (err error) {
	r.collector.IncQueryStarted()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s panicked: %v", op, rec)
			r.terminate(rep, op, err)
		}
		if err != nil {
			r.collector.IncQueryFailed()
		} else {
			r.collector.IncQueryCompleted()
		}
	}()

	err = body()
	if err == nil && ctx.Err() != nil {
		// Cancellation counts even when the body swallowed it.
		err = ctx.Err()
	}
	r.terminate(rep, op, err)
	return err
}

func (r *Runner) terminate(rep terminator, op string, bodyErr error) {
	var termErr error
	if bodyErr != nil {
		termErr = rep.Error(bodyErr)
	} else {
		termErr = rep.Finished()
	}
	if termErr == nil || errors.Is(termErr, reply.ErrClosedChannel) {
		return
	}
	r.logger.Warn("terminal event not delivered", map[string]any{
		"op":      op,
		"channel": rep.ID(),
		"error":   termErr.Error(),
	})
}
