package status

import "time"

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
}

func (o RenderOptions) stale(capturedAt time.Time) bool {
	if o.Now.IsZero() || o.StaleAfter <= 0 || capturedAt.IsZero() {
		return false
	}
	return o.Now.Sub(capturedAt) > o.StaleAfter
}
