package localstore

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	bolt "go.etcd.io/bbolt"
)

// kind describes how one entity type is stored.
type kind[T any] struct {
	key    string
	prefix string // id prefix, e.g. "note"
	limit  int    // maximum entries kept; 0 means unbounded

	// perUser, when set, applies limit to each user's entries separately.
	perUser func(T) string

	id    func(*T) *string
	stamp func(*T, time.Time) // sets creation time on Add; optional
	touch func(*T, time.Time) // sets modification time on Update; optional
}

// Repository is a typed view over one key. Every mutation is a single bbolt
// read-modify-write transaction.
type Repository[T any] struct {
	db *DB
	k  kind[T]
}

func newRepository[T any](db *DB, k kind[T]) *Repository[T] {
	return &Repository[T]{db: db, k: k}
}

// Key returns the storage key.
func (r *Repository[T]) Key() string { return r.k.key }

// List returns all entries, newest first.
func (r *Repository[T]) List() ([]T, error) {
	var out []T
	err := r.db.bolt.View(func(tx *bolt.Tx) error {
		out = readArray[T](r.db, tx.Bucket(bucketVyb), r.k.key)
		return nil
	})
	if out == nil {
		out = []T{}
	}
	return out, err
}

// Where returns entries matching keep, newest first.
func (r *Repository[T]) Where(keep func(T) bool) ([]T, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, it := range all {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Get returns the entry with id or ErrNotFound.
func (r *Repository[T]) Get(id string) (T, error) {
	all, err := r.List()
	if err != nil {
		var zero T
		return zero, err
	}
	for i := range all {
		if *r.k.id(&all[i]) == id {
			return all[i], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Add prepends item, assigning an id when it has none, and drops the oldest
// entries beyond the kind's limit. An item whose id is already stored
// replaces that entry in place.
func (r *Repository[T]) Add(item T) (T, error) {
	now := r.db.now()
	if p := r.k.id(&item); *p == "" {
		*p = r.newID(now)
	}
	if r.k.stamp != nil {
		r.k.stamp(&item, now)
	}
	err := r.db.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVyb)
		items := readArray[T](r.db, b, r.k.key)
		id := *r.k.id(&item)
		for i := range items {
			if *r.k.id(&items[i]) == id {
				items[i] = item
				return writeArray(b, r.k.key, items)
			}
		}
		items = append([]T{item}, items...)
		return writeArray(b, r.k.key, r.truncate(items))
	})
	return item, err
}

// Update applies fn to the entry with id and stores the result. The id
// cannot be changed by fn.
func (r *Repository[T]) Update(id string, fn func(*T)) (T, error) {
	var out T
	err := r.db.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVyb)
		items := readArray[T](r.db, b, r.k.key)
		for i := range items {
			if *r.k.id(&items[i]) != id {
				continue
			}
			fn(&items[i])
			*r.k.id(&items[i]) = id
			if r.k.touch != nil {
				r.k.touch(&items[i], r.db.now())
			}
			out = items[i]
			return writeArray(b, r.k.key, items)
		}
		return ErrNotFound
	})
	return out, err
}

// UpdateWhere applies fn to every entry matching keep and returns how many
// changed.
func (r *Repository[T]) UpdateWhere(keep func(T) bool, fn func(*T)) (int, error) {
	n := 0
	err := r.db.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVyb)
		items := readArray[T](r.db, b, r.k.key)
		for i := range items {
			if keep(items[i]) {
				fn(&items[i])
				n++
			}
		}
		if n == 0 {
			return nil
		}
		return writeArray(b, r.k.key, items)
	})
	return n, err
}

// Delete removes the entry with id. Deleting an unknown id is not an error;
// the result reports whether anything was removed.
func (r *Repository[T]) Delete(id string) (bool, error) {
	removed := false
	err := r.db.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVyb)
		items := readArray[T](r.db, b, r.k.key)
		kept := items[:0]
		for i := range items {
			if *r.k.id(&items[i]) == id {
				removed = true
				continue
			}
			kept = append(kept, items[i])
		}
		if !removed {
			return nil
		}
		return writeArray(b, r.k.key, kept)
	})
	return removed, err
}

// Clear empties the key.
func (r *Repository[T]) Clear() error {
	return r.db.bolt.Update(func(tx *bolt.Tx) error {
		return writeArray[T](tx.Bucket(bucketVyb), r.k.key, nil)
	})
}

func (r *Repository[T]) newID(now time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy())
	return r.k.prefix + "_" + strings.ToLower(id.String())
}

func (r *Repository[T]) truncate(items []T) []T {
	if r.k.limit <= 0 {
		return items
	}
	if r.k.perUser == nil {
		if len(items) > r.k.limit {
			items = items[:r.k.limit]
		}
		return items
	}
	seen := make(map[string]int)
	kept := items[:0]
	for _, it := range items {
		u := r.k.perUser(it)
		if seen[u] >= r.k.limit {
			continue
		}
		seen[u]++
		kept = append(kept, it)
	}
	return kept
}
