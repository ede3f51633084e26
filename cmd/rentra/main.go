package main

import (
	"os"

	"github.com/spf13/cobra"

	"rentra/internal/interfaces/cli/hashpw"
	"rentra/internal/interfaces/cli/migrate"
	"rentra/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rentra",
		Short: "Rentra - heavy equipment rental management",
		Long:  `Rentra manages the asset rental lifecycle, daily timesheets with multi-party approval, and role-based access control.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		hashpw.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
