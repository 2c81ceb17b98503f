package web

import (
	"context"
	"log"
	"time"
)

const defaultSweepInterval = time.Hour

type purger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// startStorageSweeper deletes visitor values idle for longer than retention,
// once immediately and then every interval, until stop is called.
func startStorageSweeper(p purger, retention time.Duration, interval time.Duration, now func() time.Time) (stop context.CancelFunc, done <-chan struct{}) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			sweepOnce(ctx, p, now().Add(-retention))
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return cancel, finished
}

func sweepOnce(ctx context.Context, p purger, cutoff time.Time) {
	removed, err := p.PurgeBefore(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("visitor storage sweep failed err=%v", err)
		}
		return
	}
	if removed > 0 {
		log.Printf("visitor storage sweep removed=%d cutoff=%s", removed, cutoff.Format(time.RFC3339))
	}
}
