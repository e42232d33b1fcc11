package sqlite

import (
	"fmt"
	"strings"

	"github.com/ericfisherdev/iocpanel/internal/domain/port/driven"
)

// isMissingTable reports whether err is SQLite's "no such table" error.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// wrapQueryErr annotates a query error, mapping a missing table to driven.ErrTableMissing.
func wrapQueryErr(op string, err error) error {
	if isMissingTable(err) {
		return fmt.Errorf("%s: %w: %v", op, driven.ErrTableMissing, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
