package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/iocpanel/internal/domain/model"
	"github.com/ericfisherdev/iocpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.EntityStore = (*EntityRepo)(nil)

// entityTables maps each entity kind to its table. Table names cannot be bound
// as query parameters, so only names from this map are ever interpolated.
var entityTables = map[model.EntityKind]string{
	model.EntityModules:      "cpanel_modules",
	model.EntityProtocols:    "cpanel_protocols",
	model.EntityAPIEndpoints: "cpanel_api_endpoints",
	model.EntityChannels:     "cpanel_channels",
}

// EntityRepo is the SQLite implementation of the EntityStore port interface.
type EntityRepo struct {
	db *DB
}

// NewEntityRepo creates a new EntityRepo backed by the given DB.
func NewEntityRepo(db *DB) *EntityRepo {
	return &EntityRepo{db: db}
}

// CountEnabled counts rows of the given kind with is_enabled set.
func (r *EntityRepo) CountEnabled(ctx context.Context, kind model.EntityKind) (int, error) {
	table, ok := entityTables[kind]
	if !ok {
		return 0, fmt.Errorf("count enabled: unknown entity kind %q", kind)
	}

	query := "SELECT COUNT(*) FROM " + table + " WHERE is_enabled = 1"

	var n int
	if err := r.db.Reader.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, wrapQueryErr("count enabled "+table, err)
	}
	return n, nil
}
