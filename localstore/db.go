// Package localstore keeps per-device app data in a single bbolt file. Each
// entity kind lives under one flat key (vyb_notes, vyb_posts, ...) holding a
// JSON array, newest first.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketVyb      = []byte("vyb")
	keyInitialized = []byte("vyb_initialized")
)

// ErrNotFound is returned when no entity has the requested id.
var ErrNotFound = errors.New("localstore: not found")

// DB is the local key-value store.
type DB struct {
	bolt *bolt.DB
	log  zerolog.Logger
	now  func() time.Time
}

// Option configures Open.
type Option func(*DB)

// WithLogger sets the logger used for corrupt-data warnings.
func WithLogger(l zerolog.Logger) Option { return func(db *DB) { db.log = l } }

// WithClock overrides time.Now; ids and timestamps use it.
func WithClock(now func() time.Time) Option { return func(db *DB) { db.now = now } }

// Open opens (creating if needed) the store at path.
func Open(path string, opts ...Option) (*DB, error) {
	b, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	err = b.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketVyb); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketVyb, err)
		}
		return nil
	})
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	db := &DB{bolt: b, log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.bolt.Close()
}

// Init seeds every known key with an empty array the first time it runs and
// records that under vyb_initialized. Later calls do nothing.
func (db *DB) Init() error {
	return db.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVyb)
		if b.Get(keyInitialized) != nil {
			return nil
		}
		for _, k := range seededKeys {
			if b.Get([]byte(k)) == nil {
				if err := b.Put([]byte(k), []byte("[]")); err != nil {
					return err
				}
			}
		}
		return b.Put(keyInitialized, []byte("true"))
	})
}

// Initialized reports whether Init has run.
func (db *DB) Initialized() (bool, error) {
	var ok bool
	err := db.bolt.View(func(tx *bolt.Tx) error {
		ok = tx.Bucket(bucketVyb).Get(keyInitialized) != nil
		return nil
	})
	return ok, err
}

// ClearAll removes every key, including per-user gallery keys and the
// initialized marker. Used on sign-out.
func (db *DB) ClearAll() error {
	return db.bolt.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketVyb); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketVyb)
		return err
	})
}

// Keys lists the stored keys, for diagnostics.
func (db *DB) Keys() ([]string, error) {
	var keys []string
	err := db.bolt.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVyb).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// readArray decodes the array under key. Missing keys and corrupt data both
// read as empty; corruption is logged.
func readArray[T any](db *DB, b *bolt.Bucket, key string) []T {
	raw := b.Get([]byte(key))
	if raw == nil {
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		db.log.Warn().Err(err).Str("key", key).Msg("corrupt local data, treating as empty")
		return nil
	}
	return items
}

func writeArray[T any](b *bolt.Bucket, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), data)
}
