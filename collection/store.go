package collection

import "sync"

// State is an immutable snapshot of a Store.
type State[T any] struct {
	Items []T
	// Loading is true while at least one request is outstanding.
	Loading bool
	// Stale is true while a full fetch is outstanding; Items may be outdated.
	Stale bool
	Error string
	// Version increments whenever Items changes.
	Version uint64
}

// Store holds an ordered collection of entities keyed by identifier together
// with its sync state. All mutation goes through the transition methods; they
// never fail and are safe for concurrent use.
type Store[K comparable, T any] struct {
	key KeyFunc[K, T]

	mu       sync.Mutex
	items    []T
	index    map[K]int
	pending  int
	fetching int
	err      string
	version  uint64

	subs    map[int]func(State[T])
	nextSub int
}

// NewStore returns an empty Store that identifies entities with key.
func NewStore[K comparable, T any](key KeyFunc[K, T]) *Store[K, T] {
	return &Store[K, T]{
		key:   key,
		index: make(map[K]int),
		subs:  make(map[int]func(State[T])),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store[K, T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns the entity with the given id.
func (s *Store[K, T]) Get(id K) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Len reports the number of entities.
func (s *Store[K, T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn to be called with a fresh snapshot after every
// transition. The returned func removes the subscription.
func (s *Store[K, T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// BeginLoad marks a request as dispatched and clears the last error.
func (s *Store[K, T]) BeginLoad() {
	s.transition(func() bool {
		s.pending++
		s.err = ""
		return false
	})
}

// CompleteLoad replaces the whole collection with items and settles one
// outstanding request. Duplicate identifiers in items collapse into the first
// position with the last value.
func (s *Store[K, T]) CompleteLoad(items []T) {
	s.transition(func() bool {
		s.settleLocked()
		s.replaceLocked(items)
		return true
	})
}

// FailLoad settles one outstanding request and records msg. The collection
// is left as it was.
func (s *Store[K, T]) FailLoad(msg string) {
	s.transition(func() bool {
		s.settleLocked()
		s.err = msg
		return false
	})
}

// EndLoad settles one outstanding request without touching the data.
func (s *Store[K, T]) EndLoad() {
	s.transition(func() bool {
		s.settleLocked()
		return false
	})
}

// ClearError drops the recorded error.
func (s *Store[K, T]) ClearError() {
	s.transition(func() bool {
		s.err = ""
		return false
	})
}

// ApplyCreate appends item, or replaces the entity sharing its identifier.
func (s *Store[K, T]) ApplyCreate(item T) {
	s.transition(func() bool {
		id := s.key(item)
		if i, ok := s.index[id]; ok {
			s.items[i] = item
			return true
		}
		s.index[id] = len(s.items)
		s.items = append(s.items, item)
		return true
	})
}

// ApplyUpdate replaces the entity sharing item's identifier. Absent entities
// are ignored; a delete may have raced ahead of the update.
func (s *Store[K, T]) ApplyUpdate(item T) {
	s.transition(func() bool {
		i, ok := s.index[s.key(item)]
		if !ok {
			return false
		}
		s.items[i] = item
		return true
	})
}

// ApplyDelete removes the entity with the given id, if present.
func (s *Store[K, T]) ApplyDelete(id K) {
	s.transition(func() bool {
		i, ok := s.index[id]
		if !ok {
			return false
		}
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		s.reindexLocked()
		return true
	})
}

// beginFetch is BeginLoad for a full read; the data stays flagged stale until
// the read settles.
func (s *Store[K, T]) beginFetch() {
	s.transition(func() bool {
		s.pending++
		s.fetching++
		s.err = ""
		return false
	})
}

func (s *Store[K, T]) completeFetch(items []T) {
	s.transition(func() bool {
		s.settleFetchLocked()
		s.replaceLocked(items)
		return true
	})
}

func (s *Store[K, T]) failFetch(msg string) {
	s.transition(func() bool {
		s.settleFetchLocked()
		s.err = msg
		return false
	})
}

// transition runs fn under the lock and notifies subscribers afterwards.
// fn reports whether the items changed.
func (s *Store[K, T]) transition(fn func() (changed bool)) {
	s.mu.Lock()
	if fn() {
		s.version++
	}
	snap := s.snapshotLocked()
	subs := make([]func(State[T]), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (s *Store[K, T]) settleLocked() {
	if s.pending > 0 {
		s.pending--
	}
}

func (s *Store[K, T]) settleFetchLocked() {
	s.settleLocked()
	if s.fetching > 0 {
		s.fetching--
	}
}

func (s *Store[K, T]) replaceLocked(items []T) {
	out := make([]T, 0, len(items))
	index := make(map[K]int, len(items))
	for _, it := range items {
		id := s.key(it)
		if i, ok := index[id]; ok {
			out[i] = it
			continue
		}
		index[id] = len(out)
		out = append(out, it)
	}
	s.items = out
	s.index = index
}

func (s *Store[K, T]) reindexLocked() {
	index := make(map[K]int, len(s.items))
	for i, it := range s.items {
		index[s.key(it)] = i
	}
	s.index = index
}

func (s *Store[K, T]) snapshotLocked() State[T] {
	items := make([]T, len(s.items))
	copy(items, s.items)
	return State[T]{
		Items:   items,
		Loading: s.pending > 0,
		Stale:   s.fetching > 0,
		Error:   s.err,
		Version: s.version,
	}
}
