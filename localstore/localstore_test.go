package localstore

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func openTestDB(t *testing.T, opts ...Option) (*DB, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clk.now)}, opts...)
	db, err := Open(filepath.Join(t.TempDir(), "vyb.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, clk
}

func TestInit_SeedsOnce(t *testing.T) {
	db, _ := openTestDB(t)

	ok, err := db.Initialized()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = db.Notes().Add(Note{Title: "keep me"})
	require.NoError(t, err)

	require.NoError(t, db.Init())
	require.NoError(t, db.Init())

	ok, err = db.Initialized()
	require.NoError(t, err)
	assert.True(t, ok)

	notes, err := db.Notes().List()
	require.NoError(t, err)
	assert.Len(t, notes, 1, "Init must not overwrite existing data")

	keys, err := db.Keys()
	require.NoError(t, err)
	for _, k := range seededKeys {
		assert.Contains(t, keys, k)
	}
}

func TestNotes_CRUD(t *testing.T) {
	db, clk := openTestDB(t)
	notes := db.Notes()

	first, err := notes.Add(Note{UserID: "u1", Title: "a"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ID, "note_"), first.ID)
	assert.Equal(t, clk.now(), first.CreatedAt)

	clk.advance(time.Minute)
	second, err := notes.Add(Note{UserID: "u1", Title: "b"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	all, err := notes.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Title, "newest first")

	clk.advance(time.Minute)
	updated, err := notes.Update(first.ID, func(n *Note) {
		n.Content = "edited"
		n.ID = "hijack"
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, clk.now(), updated.UpdatedAt)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	got, err := notes.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	_, err = notes.Update("nope", func(*Note) {})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = notes.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err := notes.Delete(first.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = notes.Delete(first.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, notes.Clear())
	all, err = notes.List()
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)
}

func TestNotifications_CapAndRead(t *testing.T) {
	db, _ := openTestDB(t)
	n := db.Notifications()

	var firstID string
	for i := 0; i < notificationLimit+5; i++ {
		got, err := n.Add(Notification{UserID: "u1", Type: "like", Title: fmt.Sprint(i)})
		require.NoError(t, err)
		if i == 0 {
			firstID = got.ID
		}
	}
	all, err := n.List()
	require.NoError(t, err)
	require.Len(t, all, notificationLimit)
	assert.Equal(t, fmt.Sprint(notificationLimit+4), all[0].Title)
	_, err = n.Get(firstID)
	assert.ErrorIs(t, err, ErrNotFound, "oldest entries are dropped")

	require.NoError(t, n.MarkRead(all[0].ID))
	unread, err := n.Unread("u1")
	require.NoError(t, err)
	assert.Len(t, unread, notificationLimit-1)

	changed, err := n.MarkAllRead("u1")
	require.NoError(t, err)
	assert.Equal(t, notificationLimit-1, changed)
	unread, err = n.Unread("u1")
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestActivity_CapIsPerUser(t *testing.T) {
	db, _ := openTestDB(t)
	act := db.Activity()

	for i := 0; i < defaultLimit+10; i++ {
		_, err := act.Add(Activity{UserID: "busy", Type: "login"})
		require.NoError(t, err)
	}
	_, err := act.Add(Activity{UserID: "quiet", Type: "login"})
	require.NoError(t, err)

	busy, err := act.Where(func(a Activity) bool { return a.UserID == "busy" })
	require.NoError(t, err)
	assert.Len(t, busy, defaultLimit)

	quiet, err := act.Where(func(a Activity) bool { return a.UserID == "quiet" })
	require.NoError(t, err)
	assert.Len(t, quiet, 1)
}

func TestStories_ActiveWindow(t *testing.T) {
	db, clk := openTestDB(t)
	stories := db.Stories()

	_, err := stories.Add(Story{UserID: "u1", Caption: "old"})
	require.NoError(t, err)
	clk.advance(23 * time.Hour)
	_, err = stories.Add(Story{UserID: "u1", Caption: "fresh"})
	require.NoError(t, err)
	clk.advance(2 * time.Hour)

	active, err := stories.Active()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "fresh", active[0].Caption)

	all, err := stories.List()
	require.NoError(t, err)
	assert.Len(t, all, 2, "expired stories stay stored")
}

func TestGallery_KeyPerUser(t *testing.T) {
	db, _ := openTestDB(t)
	_, err := db.Gallery("alice").Add(Photo{URL: "a.jpg"})
	require.NoError(t, err)

	bob, err := db.Gallery("bob").List()
	require.NoError(t, err)
	assert.Empty(t, bob)
	assert.Equal(t, "vyb_gallery_alice", db.Gallery("alice").Key())

	require.NoError(t, db.ClearAll())
	alice, err := db.Gallery("alice").List()
	require.NoError(t, err)
	assert.Empty(t, alice)
	ok, err := db.Initialized()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptDataReadsAsEmpty(t *testing.T) {
	var buf bytes.Buffer
	db, _ := openTestDB(t, WithLogger(zerolog.New(&buf)))

	require.NoError(t, db.bolt.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVyb).Put([]byte(KeyPosts), []byte("{not json"))
	}))

	posts, err := db.Posts().List()
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Contains(t, buf.String(), "corrupt local data")

	// a write replaces the corrupt value
	p, err := db.Posts().Add(Post{UserID: "u1", Content: "hello"})
	require.NoError(t, err)
	assert.NotNil(t, p.Likes)
	posts, err = db.Posts().List()
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestConcurrentAddsAreAtomic(t *testing.T) {
	db, _ := openTestDB(t)
	moods := db.Moods()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := moods.Add(Mood{UserID: "u1", Mood: "happy"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := moods.List()
	require.NoError(t, err)
	assert.Len(t, all, 20)
	seen := map[string]bool{}
	for _, m := range all {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestAdd_ExistingIDReplacesEntry(t *testing.T) {
	db, _ := openTestDB(t)
	notes := db.Notes()

	_, err := notes.Add(Note{UserID: "u1", Title: "other"})
	require.NoError(t, err)
	_, err = notes.Add(Note{ID: "note_x", UserID: "u1", Title: "draft"})
	require.NoError(t, err)
	_, err = notes.Add(Note{ID: "note_x", UserID: "u1", Title: "final"})
	require.NoError(t, err)

	all, err := notes.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	seen := 0
	for _, n := range all {
		if n.ID == "note_x" {
			seen++
			assert.Equal(t, "final", n.Title)
		}
	}
	assert.Equal(t, 1, seen)
	assert.Equal(t, "note_x", all[0].ID, "replacement keeps its position")
}
