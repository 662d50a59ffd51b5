package localstore

import "time"

// Storage keys.
const (
	KeyChats         = "vyb_chats"
	KeyStories       = "vyb_stories"
	KeyPosts         = "vyb_posts"
	KeyNotifications = "vyb_notifications"
	KeyUserMoods     = "vyb_user_moods"
	KeyUserActivity  = "vyb_user_activity"
	KeyReminders     = "vyb_reminders"
	KeyNotes         = "vyb_notes"
	KeyGames         = "vyb_games"
	keyGalleryPrefix = "vyb_gallery_"
)

const (
	notificationLimit = 50
	defaultLimit      = 100
	storyTTL          = 24 * time.Hour
)

var seededKeys = []string{
	KeyChats, KeyStories, KeyPosts, KeyNotifications, KeyUserMoods,
	KeyUserActivity, KeyReminders, KeyNotes, KeyGames,
}

type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Chat struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Story struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Post struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Content   string              `json:"content"`
	Likes     []string            `json:"likes"`
	Reactions map[string][]string `json:"reactions,omitempty"`
	Comments  []Comment           `json:"comments"`
	Timestamp time.Time           `json:"timestamp"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

type Mood struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Activity struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	DueAt     time.Time `json:"dueAt"`
	Done      bool      `json:"done"`
	Timestamp time.Time `json:"timestamp"`
}

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GameResult struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Game      string    `json:"game"`
	Outcome   string    `json:"outcome"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

type Photo struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (db *DB) Chats() *Repository[Chat] {
	return newRepository(db, kind[Chat]{
		key: KeyChats, prefix: "chat", limit: defaultLimit,
		id:    func(c *Chat) *string { return &c.ID },
		stamp: func(c *Chat, t time.Time) { c.UpdatedAt = t },
		touch: func(c *Chat, t time.Time) { c.UpdatedAt = t },
	})
}

func (db *DB) Posts() *Repository[Post] {
	return newRepository(db, kind[Post]{
		key: KeyPosts, prefix: "post", limit: defaultLimit,
		id: func(p *Post) *string { return &p.ID },
		stamp: func(p *Post, t time.Time) {
			p.Timestamp = t
			if p.Likes == nil {
				p.Likes = []string{}
			}
			if p.Comments == nil {
				p.Comments = []Comment{}
			}
		},
	})
}

func (db *DB) Moods() *Repository[Mood] {
	return newRepository(db, kind[Mood]{
		key: KeyUserMoods, prefix: "mood", limit: defaultLimit,
		id:    func(m *Mood) *string { return &m.ID },
		stamp: func(m *Mood, t time.Time) { m.Timestamp = t },
	})
}

// Activity keeps at most 100 entries per user.
func (db *DB) Activity() *Repository[Activity] {
	return newRepository(db, kind[Activity]{
		key: KeyUserActivity, prefix: "activity", limit: defaultLimit,
		perUser: func(a Activity) string { return a.UserID },
		id:      func(a *Activity) *string { return &a.ID },
		stamp:   func(a *Activity, t time.Time) { a.Timestamp = t },
	})
}

func (db *DB) Reminders() *Repository[Reminder] {
	return newRepository(db, kind[Reminder]{
		key: KeyReminders, prefix: "reminder", limit: defaultLimit,
		id:    func(r *Reminder) *string { return &r.ID },
		stamp: func(r *Reminder, t time.Time) { r.Timestamp = t },
	})
}

func (db *DB) Notes() *Repository[Note] {
	return newRepository(db, kind[Note]{
		key: KeyNotes, prefix: "note", limit: defaultLimit,
		id: func(n *Note) *string { return &n.ID },
		stamp: func(n *Note, t time.Time) {
			n.CreatedAt = t
			n.UpdatedAt = t
		},
		touch: func(n *Note, t time.Time) { n.UpdatedAt = t },
	})
}

func (db *DB) Games() *Repository[GameResult] {
	return newRepository(db, kind[GameResult]{
		key: KeyGames, prefix: "game", limit: defaultLimit,
		id:    func(g *GameResult) *string { return &g.ID },
		stamp: func(g *GameResult, t time.Time) { g.Timestamp = t },
	})
}

// Gallery returns the photo album of one user, stored under its own key.
func (db *DB) Gallery(userID string) *Repository[Photo] {
	return newRepository(db, kind[Photo]{
		key: keyGalleryPrefix + userID, prefix: "photo", limit: defaultLimit,
		id:    func(p *Photo) *string { return &p.ID },
		stamp: func(p *Photo, t time.Time) { p.Timestamp = t },
	})
}

// StoryRepository adds expiry filtering to the stories key.
type StoryRepository struct {
	*Repository[Story]
}

func (db *DB) Stories() *StoryRepository {
	return &StoryRepository{newRepository(db, kind[Story]{
		key: KeyStories, prefix: "story", limit: defaultLimit,
		id:    func(s *Story) *string { return &s.ID },
		stamp: func(s *Story, t time.Time) { s.Timestamp = t },
	})}
}

// Active returns stories younger than 24 hours.
func (r *StoryRepository) Active() ([]Story, error) {
	cutoff := r.db.now().Add(-storyTTL)
	return r.Where(func(s Story) bool { return s.Timestamp.After(cutoff) })
}

// NotificationRepository keeps the 50 newest notifications.
type NotificationRepository struct {
	*Repository[Notification]
}

func (db *DB) Notifications() *NotificationRepository {
	return &NotificationRepository{newRepository(db, kind[Notification]{
		key: KeyNotifications, prefix: "notif", limit: notificationLimit,
		id:    func(n *Notification) *string { return &n.ID },
		stamp: func(n *Notification, t time.Time) { n.Timestamp = t },
	})}
}

// MarkRead flags one notification as read.
func (r *NotificationRepository) MarkRead(id string) error {
	_, err := r.Update(id, func(n *Notification) { n.Read = true })
	return err
}

// MarkAllRead flags every notification of userID as read.
func (r *NotificationRepository) MarkAllRead(userID string) (int, error) {
	return r.UpdateWhere(
		func(n Notification) bool { return n.UserID == userID && !n.Read },
		func(n *Notification) { n.Read = true },
	)
}

// Unread returns the unread notifications of userID.
func (r *NotificationRepository) Unread(userID string) ([]Notification, error) {
	return r.Where(func(n Notification) bool { return n.UserID == userID && !n.Read })
}
