package reader

import "github.com/pellucid-io/scopes/types"

// StreamSummary condenses a capture for rendering.
type StreamSummary struct {
	ChannelID    string `json:"channel_id" yaml:"channel_id"`
	Kind         string `json:"kind" yaml:"kind"`
	State        string `json:"state" yaml:"state"`
	EventCount   int    `json:"event_count" yaml:"event_count"`
	Results      int    `json:"results" yaml:"results"`
	Categories   int    `json:"categories" yaml:"categories"`
	Departments  int    `json:"departments" yaml:"departments"`
	FilterPushes int    `json:"filter_pushes" yaml:"filter_pushes"`
	Widgets      int    `json:"widgets" yaml:"widgets"`
	Attributes   int    `json:"attributes" yaml:"attributes"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	DecodeError  string `json:"decode_error,omitempty" yaml:"decode_error,omitempty"`
	FirstTs      string `json:"first_ts,omitempty" yaml:"first_ts,omitempty"`
	LastTs       string `json:"last_ts,omitempty" yaml:"last_ts,omitempty"`
}

// Stream states as reported by Summary. A capture that ends without a
// terminal event is "truncated": the producer stopped without finishing
// the channel (or the capture was cut off).
const (
	StateTruncated     = "truncated"
	StateFinished = "finished"
	StateErrored  = "errored"
)

// Summary walks the capture and condenses it.
func (c *Capture) Summary() StreamSummary {
	s := StreamSummary{State: StateTruncated, DecodeError: c.DecodeError}
	for _, ev := range c.Events {
		if s.ChannelID == "" {
			s.ChannelID = ev.ChannelID
			s.Kind = string(ev.Kind)
			s.FirstTs = ev.Ts
		}
		s.LastTs = ev.Ts
		s.EventCount++

		switch ev.Type {
		case types.EventTypeResult:
			s.Results++
		case types.EventTypeCategory:
			s.Categories++
		case types.EventTypeDepartments:
			s.Departments++
		case types.EventTypeFilters:
			s.FilterPushes++
		case types.EventTypeWidgets:
			s.Widgets += len(ev.Widgets)
		case types.EventTypeAttribute:
			s.Attributes++
		case types.EventTypeFinished:
			s.State = StateFinished
		case types.EventTypeError:
			s.State = StateErrored
			s.ErrorMessage = ev.Message
		}
	}
	return s
}
