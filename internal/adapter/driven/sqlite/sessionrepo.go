package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/iocpanel/internal/domain/model"
	"github.com/ericfisherdev/iocpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port interface.
// Timestamps are stored as unix seconds so expiry comparisons stay in SQL.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new SessionRepo backed by the given DB.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session. The id must be unique.
func (r *SessionRepo) Create(ctx context.Context, s model.Session) error {
	const query = `
		INSERT INTO cpanel_sessions (id, user_id, username, role, logged_in, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		s.ID, s.UserID, s.Username, string(s.Role), boolToInt(s.LoggedIn), createdAt.Unix(), s.ExpiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("create session for %s: %w", s.Username, err)
	}
	return nil
}

// Get returns the session with the given id, or (nil, nil) if it does not exist.
func (r *SessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	const query = `
		SELECT id, user_id, username, role, logged_in, created_at, expires_at
		FROM cpanel_sessions WHERE id = ?`

	var (
		s         model.Session
		role      string
		loggedIn  int
		createdAt int64
		expiresAt int64
	)
	err := r.db.Reader.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Username, &role, &loggedIn, &createdAt, &expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryErr("get session", err)
	}

	s.Role = model.Role(role)
	s.LoggedIn = loggedIn == 1
	s.CreatedAt = time.Unix(createdAt, 0).UTC()
	s.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	return &s, nil
}

// Delete removes the session with the given id.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM cpanel_sessions WHERE id = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions whose expiry is at or before now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM cpanel_sessions WHERE expires_at <= ?`

	result, err := r.db.Writer.ExecContext(ctx, query, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
