// Package sqlstore implements store.Store over database/sql. The sqlite and
// postgres packages supply a Dialect and open the connection.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harvinder-fsd/roster/server/internal/model"
	"github.com/harvinder-fsd/roster/server/internal/store"
)

// Dialect captures what differs between SQL engines.
type Dialect struct {
	Name string
	// Schema statements are run in order by Migrate; they must be idempotent.
	Schema []string
	// Numbered placeholders ($1, $2...) instead of "?".
	Numbered bool
	// IsUniqueViolation reports whether err is a UNIQUE constraint failure.
	IsUniqueViolation func(error) bool
}

// New wraps db. Call Migrate before first use.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d}
}

// Store is the database/sql store.
type Store struct {
	db *sql.DB
	d  Dialect
}

var _ store.Store = (*Store)(nil)

func (s *Store) Students() store.Students { return &students{s} }
func (s *Store) Users() store.Users       { return &users{s} }
func (s *Store) Contacts() store.Contacts { return &contacts{s} }

// Close closes the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the pool for health probes.
func (s *Store) DB() *sql.DB { return s.db }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

// Migrate applies the dialect schema.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range s.d.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s migrate: %w", s.d.Name, err)
		}
	}
	return nil
}

// q rewrites "?" placeholders for dialects that number them.
func (s *Store) q(query string) string {
	if !s.d.Numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return model.ErrNotFound
	case s.d.IsUniqueViolation != nil && s.d.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	default:
		return err
	}
}

func millis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// --- Students ---

type students struct{ *Store }

const studentCols = `id, name, roll_number, class, email, phone, address`

func scanStudent(sc interface{ Scan(...any) error }) (model.Student, error) {
	var st model.Student
	err := sc.Scan(&st.ID, &st.Name, &st.RollNumber, &st.Class, &st.Email, &st.Phone, &st.Address)
	return st, err
}

func (r *students) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+studentCols+` FROM students ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []model.Student{}
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *students) Get(ctx context.Context, id int) (*model.Student, error) {
	row := r.db.QueryRowContext(ctx, r.q(`SELECT `+studentCols+` FROM students WHERE id = ?`), id)
	st, err := scanStudent(row)
	if err != nil {
		return nil, r.mapErr(err)
	}
	return &st, nil
}

func (r *students) Create(ctx context.Context, s *model.Student) (*model.Student, error) {
	out := *s
	row := r.db.QueryRowContext(ctx, r.q(`
        INSERT INTO students (name, roll_number, class, email, phone, address)
        VALUES (?,?,?,?,?,?)
        RETURNING id
    `), s.Name, s.RollNumber, s.Class, s.Email, s.Phone, s.Address)
	if err := row.Scan(&out.ID); err != nil {
		return nil, r.mapErr(err)
	}
	return &out, nil
}

func (r *students) Update(ctx context.Context, s *model.Student) (*model.Student, error) {
	res, err := r.db.ExecContext(ctx, r.q(`
        UPDATE students SET name = ?, roll_number = ?, class = ?, email = ?, phone = ?, address = ?
        WHERE id = ?
    `), s.Name, s.RollNumber, s.Class, s.Email, s.Phone, s.Address, s.ID)
	if err != nil {
		return nil, r.mapErr(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, model.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (r *students) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.q(`DELETE FROM students WHERE id = ?`), id)
	if err != nil {
		return r.mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Users ---

type users struct{ *Store }

func (r *users) Create(ctx context.Context, u *model.User) (*model.User, error) {
	out := *u
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	row := r.db.QueryRowContext(ctx, r.q(`
        INSERT INTO users (username, password_hash, role, created_at)
        VALUES (?,?,?,?)
        RETURNING id
    `), out.Username, out.PasswordHash, out.Role, millis(out.CreatedAt))
	if err := row.Scan(&out.ID); err != nil {
		return nil, r.mapErr(err)
	}
	return &out, nil
}

func (r *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	var created int64
	row := r.db.QueryRowContext(ctx, r.q(`
        SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?
    `), username)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &created); err != nil {
		return nil, r.mapErr(err)
	}
	u.CreatedAt = fromMillis(created)
	return &u, nil
}

func (r *users) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []model.User{}
	for rows.Next() {
		var u model.User
		var created int64
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &created); err != nil {
			return nil, err
		}
		u.CreatedAt = fromMillis(created)
		out = append(out, u)
	}
	return out, rows.Err()
}

// --- Contacts ---

type contacts struct{ *Store }

func (r *contacts) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	out := *c
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	row := r.db.QueryRowContext(ctx, r.q(`
        INSERT INTO contacts (name, email, subject, message, created_at)
        VALUES (?,?,?,?,?)
        RETURNING id
    `), out.Name, out.Email, out.Subject, out.Message, millis(out.CreatedAt))
	if err := row.Scan(&out.ID); err != nil {
		return nil, r.mapErr(err)
	}
	return &out, nil
}

func (r *contacts) List(ctx context.Context) ([]model.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, email, subject, message, created_at FROM contacts ORDER BY id DESC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		var created int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &created); err != nil {
			return nil, err
		}
		c.CreatedAt = fromMillis(created)
		out = append(out, c)
	}
	return out, rows.Err()
}
