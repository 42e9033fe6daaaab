package port

// ScrollTriggerPort delivers page-advance events from the viewport sentinel
// as a cancellable subscription. Each event means "the sentinel became
// visible"; whether a fetch actually happens is decided by the pagination
// state machine, not the trigger.
type ScrollTriggerPort interface {
	// Events is closed when the subscription ends.
	Events() <-chan struct{}

	// Close cancels the subscription and releases the channel.
	Close()
}
