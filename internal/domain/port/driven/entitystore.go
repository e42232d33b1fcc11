package driven

import (
	"context"

	"github.com/ericfisherdev/iocpanel/internal/domain/model"
)

// EntityStore defines the driven port for the read-only configuration entity tables.
type EntityStore interface {
	// CountEnabled returns the number of rows of the given kind whose enabled
	// flag is set. Returns an error wrapping ErrTableMissing when the kind's
	// table has not been created.
	CountEnabled(ctx context.Context, kind model.EntityKind) (int, error)
}
