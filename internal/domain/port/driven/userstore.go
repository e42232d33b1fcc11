// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/iocpanel/internal/domain/model"
)

// ErrTableMissing indicates the queried table has not been created yet. The
// panel's read-only tables are owned by other components, so callers treat
// this as an expected condition rather than a failure.
var ErrTableMissing = errors.New("table does not exist")

// UserStore defines the driven port for reading panel users.
type UserStore interface {
	// GetByUsername returns the user with the exact username.
	// Returns (nil, nil) if no such user exists.
	// Returns an error wrapping ErrTableMissing if cpanel_users does not exist.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
