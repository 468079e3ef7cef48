// Command incidentctl is an operator tool for the incident reporting database and NOMIS data.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "incidentctl",
		Short:         "Operate the incident reporting service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newSplitDescriptionCmd(),
		newJoinDescriptionCmd(),
		newCodesCmd(),
		newArchiveCmd(),
	)
	return root
}
