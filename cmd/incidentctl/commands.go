package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"incidentapi/internal/config"
	"incidentapi/internal/database"
	"incidentapi/internal/database/migration"
	"incidentapi/internal/logging"
	"incidentapi/internal/model"
	"incidentapi/internal/nomis"
)

// newMigrateCmd creates the schema when the database has none.
func newMigrateCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logging.New(cmd.ErrOrStderr(), logging.Location(cfg.Timezone))
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := database.NewPostgres(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			return migration.EnsureMigrated(ctx, db, log, cfg.Database.Host)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "migration timeout")
	return cmd
}

type splitOutput struct {
	Original *string                     `json:"original"`
	Addenda  []model.DescriptionAddendum `json:"addenda"`
}

// newSplitDescriptionCmd prints how a NOMIS description splits into original text and addenda.
func newSplitDescriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split-description [text|-]",
		Short: "Split a NOMIS description into its original text and addenda",
		Long: `Split a NOMIS description into its original text and addenda.

The description is read from the argument, or from stdin when the argument is "-" or absent.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 && args[0] != "-" {
				text = args[0]
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read description: %w", err)
				}
				text = string(b)
			}

			original, addenda := nomis.SplitDescription(&text)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(splitOutput{Original: original, Addenda: addenda})
		},
	}
}

// newCodesCmd resolves a NOMIS code to the value stored by this service.
func newCodesCmd() *cobra.Command {
	var toNomis bool
	cmd := &cobra.Command{
		Use:   "codes <kind> <code>",
		Short: "Translate a NOMIS code",
		Long: `Translate a NOMIS code. Kind is one of: status, type, staff-role, prisoner-role, outcome.
With --to-nomis the argument is a value of this service and its NOMIS code is printed.`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"status", "type", "staff-role", "prisoner-role", "outcome"},
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup := nomis.Lookup
			if toNomis {
				lookup = nomis.ReverseLookup
			}
			v, err := lookup(args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
	cmd.Flags().BoolVar(&toNomis, "to-nomis", false, "translate a service value to its NOMIS code")
	return cmd
}
