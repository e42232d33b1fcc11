package sqlite

import (
	"context"
	"testing"

	"github.com/ericfisherdev/iocpanel/internal/domain/model"
	"github.com/ericfisherdev/iocpanel/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createUsersTable = `CREATE TABLE cpanel_users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL
)`

func TestUserRepo_GetByUsername(t *testing.T) {
	db := setupTestDB(t)
	execSQL(t, db,
		createUsersTable,
		`INSERT INTO cpanel_users (username, password_hash, role) VALUES ('operator1', '$2y$10$hash', 'operator')`,
	)
	repo := NewUserRepo(db)

	got, err := repo.GetByUsername(context.Background(), "operator1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "operator1", got.Username)
	assert.Equal(t, "$2y$10$hash", got.PasswordHash)
	assert.Equal(t, model.RoleOperator, got.Role)
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	db := setupTestDB(t)
	execSQL(t, db, createUsersTable)
	repo := NewUserRepo(db)

	got, err := repo.GetByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_GetByUsername_ExactMatch(t *testing.T) {
	db := setupTestDB(t)
	execSQL(t, db,
		createUsersTable,
		`INSERT INTO cpanel_users (username, password_hash, role) VALUES ('Admin', 'x', 'admin')`,
	)
	repo := NewUserRepo(db)

	got, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Nil(t, got, "lookup must not be case-insensitive")
}

func TestUserRepo_GetByUsername_MissingTable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	got, err := repo.GetByUsername(context.Background(), "admin")
	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrTableMissing)
	assert.Nil(t, got)
}
