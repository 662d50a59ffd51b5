package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Reconciler applies user-initiated operations to a Store only after the
// Remote has confirmed them. A failed request leaves the Store contents as
// they were and records the error message.
type Reconciler[K comparable, T any] struct {
	store  *Store[K, T]
	remote Remote[K, T]
	cfg    reconcilerConfig

	inflight singleflight.Group
	mu       sync.Mutex
	flights  map[string]*flight
}

// flight is the context shared by every caller waiting on one deduplicated
// request. It is cancelled once the last waiter has left.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

type reconcilerConfig struct {
	name  string
	dedup bool
	log   zerolog.Logger
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*reconcilerConfig)

// WithName labels log lines and metrics with the collection name.
func WithName(name string) ReconcilerOption {
	return func(c *reconcilerConfig) { c.name = name }
}

// WithDedup controls the in-flight guard. When enabled (the default), an
// operation identical to one still pending joins it instead of dispatching a
// second request. Identity is (operation, id) for updates and deletes plus the
// encoded payload for creates and updates.
func WithDedup(enabled bool) ReconcilerOption {
	return func(c *reconcilerConfig) { c.dedup = enabled }
}

// WithLogger sets the logger used for failed operations.
func WithLogger(log zerolog.Logger) ReconcilerOption {
	return func(c *reconcilerConfig) { c.log = log }
}

// NewReconciler binds store to remote.
func NewReconciler[K comparable, T any](store *Store[K, T], remote Remote[K, T], opts ...ReconcilerOption) *Reconciler[K, T] {
	cfg := reconcilerConfig{name: "default", dedup: true, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Reconciler[K, T]{store: store, remote: remote, cfg: cfg, flights: map[string]*flight{}}
}

// Store returns the bound store.
func (r *Reconciler[K, T]) Store() *Store[K, T] { return r.store }

// Load replaces the collection with the server's copy. On failure the
// previous data stays visible and the error is recorded.
func (r *Reconciler[K, T]) Load(ctx context.Context) error {
	_, err := r.guard(ctx, opLoad, "", func(ctx context.Context) (any, error) {
		r.store.beginFetch()
		items, err := r.remote.FetchAll(ctx)
		if err != nil {
			r.store.failFetch(err.Error())
			return nil, r.fail(opLoad, err)
		}
		r.store.completeFetch(items)
		observe(r.cfg.name, opLoad, nil)
		return nil, nil
	})
	return err
}

// Create sends item to the server and appends the server's copy.
func (r *Reconciler[K, T]) Create(ctx context.Context, item T) (T, error) {
	v, err := r.guard(ctx, opCreate, payloadKey(item), func(ctx context.Context) (any, error) {
		r.store.BeginLoad()
		created, err := r.remote.Create(ctx, item)
		if err != nil {
			r.store.FailLoad(err.Error())
			return nil, r.fail(opCreate, err)
		}
		r.store.ApplyCreate(created)
		r.store.EndLoad()
		observe(r.cfg.name, opCreate, nil)
		return created, nil
	})
	return result[T](v, err)
}

// Update replaces the entity at id with the server's copy of item.
func (r *Reconciler[K, T]) Update(ctx context.Context, id K, item T) (T, error) {
	v, err := r.guard(ctx, opUpdate, fmt.Sprintf("%v/%s", id, payloadKey(item)), func(ctx context.Context) (any, error) {
		r.store.BeginLoad()
		updated, err := r.remote.Update(ctx, id, item)
		if err != nil {
			r.store.FailLoad(err.Error())
			return nil, r.fail(opUpdate, err)
		}
		r.store.ApplyUpdate(updated)
		r.store.EndLoad()
		observe(r.cfg.name, opUpdate, nil)
		return updated, nil
	})
	return result[T](v, err)
}

// Delete removes id on the server, then locally using the confirmed id.
func (r *Reconciler[K, T]) Delete(ctx context.Context, id K) error {
	_, err := r.guard(ctx, opDelete, fmt.Sprintf("%v", id), func(ctx context.Context) (any, error) {
		r.store.BeginLoad()
		confirmed, err := r.remote.Delete(ctx, id)
		if err != nil {
			r.store.FailLoad(err.Error())
			return nil, r.fail(opDelete, err)
		}
		r.store.ApplyDelete(confirmed)
		r.store.EndLoad()
		observe(r.cfg.name, opDelete, nil)
		return confirmed, nil
	})
	return err
}

// guard runs fn, or joins an identical call already in flight. The shared
// call runs on a context detached from any single caller; each caller waits
// on its own ctx, and the call is cancelled only when every waiter has gone.
func (r *Reconciler[K, T]) guard(ctx context.Context, op, key string, fn func(context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		r.store.BeginLoad()
		r.store.FailLoad(err.Error())
		return nil, r.fail(op, err)
	}
	if !r.cfg.dedup {
		return fn(ctx)
	}

	k := op + ":" + key
	r.mu.Lock()
	f, ok := r.flights[k]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		r.flights[k] = f
	}
	f.waiters++
	ch := r.inflight.DoChan(k, func() (any, error) {
		v, err := fn(f.ctx)
		r.mu.Lock()
		if r.flights[k] == f {
			delete(r.flights, k)
		}
		r.mu.Unlock()
		return v, err
	})
	r.mu.Unlock()

	select {
	case res := <-ch:
		r.leave(k, f)
		if res.Shared {
			dedupedTotal.WithLabelValues(r.cfg.name, op).Inc()
		}
		return res.Val, res.Err
	case <-ctx.Done():
		r.leave(k, f)
		return nil, ctx.Err()
	}
}

// leave drops one waiter from f. The last waiter out cancels the shared
// context and, when the call is still registered, forgets it so the next
// caller dispatches afresh.
func (r *Reconciler[K, T]) leave(k string, f *flight) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if r.flights[k] == f {
		delete(r.flights, k)
		r.inflight.Forget(k)
	}
}

func (r *Reconciler[K, T]) fail(op string, err error) error {
	observe(r.cfg.name, op, err)
	r.cfg.log.Warn().Err(err).Str("collection", r.cfg.name).Str("op", op).Msg("collection operation failed")
	return err
}

func result[T any](v any, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// payloadKey identifies a payload for deduplication. Unencodable payloads
// fall back to their %v form.
func payloadKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
