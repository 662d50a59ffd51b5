package collection

import (
	"context"
	"sync"
	"time"
)

// Loader reloads a collection.
type Loader interface {
	Load(ctx context.Context) error
}

// Refresher reloads a collection on a fixed interval until stopped.
type Refresher struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartRefresher calls l.Load every interval. Load errors are already
// recorded in the Store by the Reconciler and do not stop the loop. The loop
// ends when ctx is cancelled or Stop is called.
func StartRefresher(ctx context.Context, l Loader, interval time.Duration) *Refresher {
	ctx, cancel := context.WithCancel(ctx)
	r := &Refresher{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = l.Load(ctx)
			}
		}
	}()
	return r
}

// Stop cancels the loop, including an in-flight Load, and waits for it to
// exit. Safe to call multiple times.
func (r *Refresher) Stop() {
	r.once.Do(r.cancel)
	<-r.done
}
