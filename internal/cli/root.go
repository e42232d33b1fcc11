// Package cli implements the cpanelctl administration commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/iocpanel/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/iocpanel/internal/config"
	"github.com/ericfisherdev/iocpanel/internal/logging"
)

const dbFlag = "db"

// NewRootCommand builds cpanelctl with every subcommand registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cpanelctl",
		Short:         "Administration tasks for the IOC control panel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(dbFlag, "", "SQLite database path (default: IOCPANEL_DB_PATH)")

	RegisterCommands(rootCmd)
	return rootCmd
}

// RegisterCommands adds all available commands to the root command.
func RegisterCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewHashPasswordCommand())
	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewPurgeSessionsCommand())
}

// openDB opens the database named by --db, falling back to the configured path.
func openDB(ctx context.Context, cmd *cobra.Command) (*sqliteadapter.DB, error) {
	path, err := cmd.Flags().GetString(dbFlag)
	if err != nil {
		return nil, err
	}
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path = cfg.DBPath
	}

	db, err := sqliteadapter.NewDB(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

func commandLogger(w io.Writer) *slog.Logger {
	return logging.New(w, slog.LevelWarn, "text")
}
