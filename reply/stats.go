package reply

// Stats is a point-in-time snapshot of a channel's push counters. Returned
// by Stats(); all counters are consistent with each other and with State.
type Stats struct {
	// State is the channel state at snapshot time.
	State State
	// Results is the number of results transmitted.
	Results int64
	// Categories is the number of categories registered.
	Categories int64
	// FilterPushes is the number of filters+state pushes.
	FilterPushes int64
	// Widgets is the number of preview widgets transmitted.
	Widgets int64
	// Attributes is the number of preview attributes transmitted.
	Attributes int64
	// Errors is the number of sink rejections.
	Errors int64
}

// stats holds the live counters. Guarded by channel.mu.
type stats struct {
	results      int64
	categories   int64
	filterPushes int64
	widgets      int64
	attributes   int64
	errors       int64
}

func (s *stats) snapshot(state State) Stats {
	return Stats{
		State:        state,
		Results:      s.results,
		Categories:   s.categories,
		FilterPushes: s.filterPushes,
		Widgets:      s.widgets,
		Attributes:   s.attributes,
		Errors:       s.errors,
	}
}
