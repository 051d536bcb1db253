// internal/session/runner.go
package session

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits one Cycle per interval on out.
// Each tick runs in its own goroutine so a slow cycle is detected
// (and the overlapping tick dropped) instead of queued. No retries.
func (s *Session) Run(ctx context.Context, out chan<- Cycle) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case at := <-ticker.C:
			go func(at time.Time) {
				c, ok := s.Tick(at)
				if !ok {
					return
				}
				select {
				case out <- c:
				case <-ctx.Done():
				}
			}(at)
		}
	}
}
