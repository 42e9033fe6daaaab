// Package sentinel carries viewport-sentinel intersection events to the
// pagination driver as a channel-backed subscription.
package sentinel

import "sync"

// Trigger implements port.ScrollTriggerPort. Fire is called whenever the
// sentinel element becomes visible; the driver on the other end decides
// whether the event results in a fetch. Events fired while the driver is
// busy are dropped rather than queued, mirroring how repeated intersections
// of an already-loading sentinel are meaningless.
type Trigger struct {
	events    chan struct{}
	closeOnce sync.Once
}

func NewTrigger() *Trigger {
	return &Trigger{
		// Buffer of one: an event arriving between driver iterations is kept,
		// further ones coalesce into it.
		events: make(chan struct{}, 1),
	}
}

// Fire signals one sentinel intersection. Non-blocking.
func (t *Trigger) Fire() {
	select {
	case t.events <- struct{}{}:
	default:
	}
}

func (t *Trigger) Events() <-chan struct{} {
	return t.events
}

// Close ends the subscription; the driver loop drains and exits.
func (t *Trigger) Close() {
	t.closeOnce.Do(func() {
		close(t.events)
	})
}
