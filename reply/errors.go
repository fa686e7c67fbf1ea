// Package reply implements the result-delivery channels a search or preview
// producer pushes into.
//
// This file defines the channel error taxonomy. All sentinel errors support
// errors.Is for typed assertions; ChannelError wraps them with the failing
// operation and channel id.
package reply

import (
	"errors"
	"fmt"
)

// Sentinel errors for channel failure classification.
var (
	// ErrClosedChannel indicates an operation after finished() or error().
	ErrClosedChannel = errors.New("channel closed")

	// ErrDuplicateCategory indicates a category id collision during
	// registration.
	ErrDuplicateCategory = errors.New("duplicate category id")

	// ErrEncoding indicates producer-supplied data that cannot be
	// represented on the wire.
	ErrEncoding = errors.New("encoding failure")

	// ErrDepartmentsRegistered indicates a second department tree
	// registration on the same channel.
	ErrDepartmentsRegistered = errors.New("departments already registered")

	// ErrSink indicates the underlying transport rejected an event.
	ErrSink = errors.New("sink failure")
)

// ChannelError wraps an underlying error with channel classification.
// It preserves the original error in the chain for inspection via errors.As.
type ChannelError struct {
	// Kind is the sentinel error for classification.
	Kind error
	// Op is the operation that failed (e.g. "push", "register_category").
	Op string
	// Channel is the id of the channel involved.
	Channel string
	// Err is the underlying error, if any.
	Err error
}

func (e *ChannelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s on channel %s: %v: %v", e.Op, e.Channel, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s on channel %s: %v", e.Op, e.Channel, e.Kind)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *ChannelError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *ChannelError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func closedErr(channel, op string) error {
	return &ChannelError{Kind: ErrClosedChannel, Op: op, Channel: channel}
}

func encodingErr(channel, op string, err error) error {
	return &ChannelError{Kind: ErrEncoding, Op: op, Channel: channel, Err: err}
}

func duplicateCategoryErr(channel, id string) error {
	return &ChannelError{
		Kind:    ErrDuplicateCategory,
		Op:      "register_category",
		Channel: channel,
		Err:     fmt.Errorf("category %q already registered", id),
	}
}

func sinkErr(channel, op string, err error) error {
	return &ChannelError{Kind: ErrSink, Op: op, Channel: channel, Err: err}
}
