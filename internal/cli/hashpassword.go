package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// NewHashPasswordCommand prints a bcrypt hash for the cpanel_users.password_hash column.
func NewHashPasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for cpanel_users.password_hash",
		Long:  "Hashes the password given with --password, or the first line read from stdin.",
		Args:  cobra.NoArgs,
		RunE:  runHashPassword,
	}

	cmd.Flags().StringP("password", "p", "", "password to hash (read from stdin when empty)")
	cmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost")

	return cmd
}

func runHashPassword(cmd *cobra.Command, _ []string) error {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return err
	}
	cost, err := cmd.Flags().GetInt("cost")
	if err != nil {
		return err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}

	if password == "" {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if scanner.Scan() {
			password = strings.TrimRight(scanner.Text(), "\r")
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(hash))
	return err
}
