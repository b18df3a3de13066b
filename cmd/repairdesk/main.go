package main

import (
	"os"

	"github.com/spf13/cobra"

	"repairdesk/internal/interfaces/cli/migrate"
	"repairdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repairdesk",
		Short: "repairdesk - facility repair ticketing backend",
		Long:  `repairdesk serves the repair request API and manages its database migrations.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
