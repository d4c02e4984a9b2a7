package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/contactdesk/internal/cli"
	"github.com/example/contactdesk/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "contactdesk",
		Short:   "contactdesk - call center contact screen backend",
		Version: version.String(),
		Long: `contactdesk manages a call center's contact list: permission-scoped
status views, administered list filters, status transition workflows and
bulk agent assignment.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ContactCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.AssignCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
