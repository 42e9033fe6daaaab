package usecase

import (
	"context"

	"listing-console-service/internal/core/port"
)

// RunScrollDriver consumes sentinel-intersection events until the context is
// done or the trigger closes. Every event is a load-more attempt; whether a
// fetch happens is decided by the pagination state machine (an event while
// loading or exhausted is dropped).
func (s *ListingSession) RunScrollDriver(ctx context.Context, trigger port.ScrollTriggerPort) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-trigger.Events():
			if !ok {
				return
			}
			s.LoadMore(ctx)
		}
	}
}
