package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/iocpanel/internal/adapter/driven/sqlite"
)

// NewMigrateCommand applies the panel's own schema migrations.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the panel's schema migrations (session table)",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	db, err := openDB(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations complete")
	return err
}
