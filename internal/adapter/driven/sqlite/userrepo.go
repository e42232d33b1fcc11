package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ericfisherdev/iocpanel/internal/domain/model"
	"github.com/ericfisherdev/iocpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the SQLite implementation of the UserStore port interface.
// It only reads cpanel_users; user management belongs to another component.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByUsername returns the user with the exact username, or (nil, nil) if none exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT id, username, password_hash, role FROM cpanel_users WHERE username = ? LIMIT 1`

	var u model.User
	var role string
	err := r.db.Reader.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryErr("get user by username", err)
	}

	u.Role = model.Role(role)
	return &u, nil
}
