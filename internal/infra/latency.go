package infra

import (
	"context"
	"time"
)

// SimulateLatency держит вызов d или до отмены ctx. d <= 0 — без задержки.
func SimulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
