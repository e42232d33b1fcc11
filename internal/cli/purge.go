package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/iocpanel/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/iocpanel/internal/application"
)

// NewPurgeSessionsCommand deletes every expired session.
func NewPurgeSessionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-sessions",
		Short: "Delete expired sessions",
		Args:  cobra.NoArgs,
		RunE:  runPurgeSessions,
	}
}

func runPurgeSessions(cmd *cobra.Command, _ []string) error {
	db, err := openDB(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	auth := application.NewAuthService(
		sqliteadapter.NewUserRepo(db),
		sqliteadapter.NewSessionRepo(db),
		application.AuthOptions{},
		commandLogger(cmd.ErrOrStderr()),
	)

	n, err := auth.PurgeExpired(cmd.Context())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired session(s)\n", n)
	return err
}
