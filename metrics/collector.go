// Package metrics provides delivery metrics collection for reply streams.
//
// The Collector accumulates counters while queries run and events flow to
// a sink. It is a leaf package with no internal dependencies; event types
// cross as plain strings to keep it that way.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all collected metrics.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Query lifecycle
	QueriesStarted   int64
	QueriesCompleted int64
	QueriesFailed    int64

	// Delivery
	EventsSent   int64
	SendFailures int64
	SentByType   map[string]int64

	// Stream terminals observed at the sink
	StreamsFinished int64
	StreamsErrored  int64

	// Dimensions (informational, set at construction)
	ScopeID string
	Sink    string
}

// Collector accumulates delivery metrics.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	queriesStarted   int64
	queriesCompleted int64
	queriesFailed    int64

	eventsSent   int64
	sendFailures int64
	sentByType   map[string]int64

	streamsFinished int64
	streamsErrored  int64

	scopeID string
	sink    string
}

// NewCollector creates a Collector with dimension labels. Both dimensions
// are optional.
func NewCollector(scopeID, sink string) *Collector {
	return &Collector{
		sentByType: make(map[string]int64),
		scopeID:    scopeID,
		sink:       sink,
	}
}

// IncQueryStarted records a query dispatch.
func (c *Collector) IncQueryStarted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.queriesStarted++
	c.mu.Unlock()
}

// IncQueryCompleted records a query whose body returned without error.
func (c *Collector) IncQueryCompleted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.queriesCompleted++
	c.mu.Unlock()
}

// IncQueryFailed records a query terminated with an error event.
func (c *Collector) IncQueryFailed() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.queriesFailed++
	c.mu.Unlock()
}

// RecordSend records one sink send of the given event type.
// A non-nil err counts as a failure; successes are also tallied per type.
func (c *Collector) RecordSend(eventType string, err error) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.sendFailures++
		return
	}
	c.eventsSent++
	c.sentByType[eventType]++
	switch eventType {
	case "finished":
		c.streamsFinished++
	case "error":
		c.streamsErrored++
	}
}

// Snapshot returns an immutable point-in-time view of all metrics.
// The returned Snapshot is safe to read concurrently; the Collector can
// continue to be mutated independently.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	byType := make(map[string]int64, len(c.sentByType))
	for k, v := range c.sentByType {
		byType[k] = v
	}

	return Snapshot{
		QueriesStarted:   c.queriesStarted,
		QueriesCompleted: c.queriesCompleted,
		QueriesFailed:    c.queriesFailed,

		EventsSent:   c.eventsSent,
		SendFailures: c.sendFailures,
		SentByType:   byType,

		StreamsFinished: c.streamsFinished,
		StreamsErrored:  c.streamsErrored,

		ScopeID: c.scopeID,
		Sink:    c.sink,
	}
}
