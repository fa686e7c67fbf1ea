// Package types defines the reply wire model shared by producers, sinks and
// consumers.
//
// Every push on a reply channel becomes one ReplyEvent. Events carry msgpack
// tags for the frame transport and JSON tags for pub/sub, webhook and
// archive delivery; both encodings describe the same shape.
package types

// ProtocolVersion is the semantic version of the reply wire contract.
const ProtocolVersion = "1.0.0"

// EventType discriminates reply events.
type EventType string

// Reply event types.
const (
	EventTypeResult      EventType = "result"
	EventTypeCategory    EventType = "category"
	EventTypeDepartments EventType = "departments"
	EventTypeFilters     EventType = "filters"
	EventTypeWidgets     EventType = "widgets"
	EventTypeAttribute   EventType = "attribute"
	EventTypeFinished    EventType = "finished"
	EventTypeError       EventType = "error"
)

// IsTerminal returns true if this event type terminates the channel.
func (e EventType) IsTerminal() bool {
	return e == EventTypeFinished || e == EventTypeError
}

// ChannelKind identifies the reply channel variant an event belongs to.
type ChannelKind string

// Channel kinds.
const (
	ChannelKindSearch  ChannelKind = "search"
	ChannelKindPreview ChannelKind = "preview"
)

// ReplyEvent is the envelope for everything a channel transmits.
// Exactly one payload field is set, selected by Type.
type ReplyEvent struct {
	// ProtocolVersion is the wire contract version.
	ProtocolVersion string `msgpack:"protocol_version" json:"protocol_version"`
	// ChannelID identifies the originating reply channel.
	ChannelID string `msgpack:"channel_id" json:"channel_id"`
	// Kind is the channel variant (search or preview).
	Kind ChannelKind `msgpack:"kind" json:"kind"`
	// Seq is the monotonic per-channel sequence number, starts at 1.
	Seq int64 `msgpack:"seq" json:"seq"`
	// Type is the event type discriminator.
	Type EventType `msgpack:"type" json:"type"`
	// Ts is the event timestamp in ISO 8601 UTC format.
	Ts string `msgpack:"ts" json:"ts"`

	// Result is set for result events.
	Result *CategorisedResult `msgpack:"result,omitempty" json:"result,omitempty"`
	// Category is set for category events.
	Category *Category `msgpack:"category,omitempty" json:"category,omitempty"`
	// Departments is the department tree root, set for departments events.
	Departments *Department `msgpack:"departments,omitempty" json:"departments,omitempty"`
	// Filters is set for filters events.
	Filters *FilterPush `msgpack:"filters,omitempty" json:"filters,omitempty"`
	// Widgets is set for widgets events; order is rendering order.
	Widgets []PreviewWidget `msgpack:"widgets,omitempty" json:"widgets,omitempty"`
	// Attribute is set for attribute events.
	Attribute *Attribute `msgpack:"attribute,omitempty" json:"attribute,omitempty"`
	// Message is the diagnostic carried by error events.
	Message string `msgpack:"message,omitempty" json:"message,omitempty"`
}
