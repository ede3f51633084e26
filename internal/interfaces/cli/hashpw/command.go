// Package hashpw implements the `rentra hashpw` utility for generating
// bcrypt password hashes, used when provisioning API users by hand.
package hashpw

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rentra/internal/infrastructure/auth"
	"rentra/internal/infrastructure/config"
)

var configPath string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hashpw",
		Short: "Generate a bcrypt password hash",
		Long:  `Prompt for a password and print its bcrypt hash using the configured cost.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("password must not be empty")
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
	hash, err := hasher.Hash(string(password))
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}
