package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"incidentapi/internal/config"
	"incidentapi/internal/nomis"
	"incidentapi/internal/storage"
)

// openStorage is replaced in tests.
var openStorage = func(cfg config.MinIOConfig) (storage.Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT is not set")
	}
	return storage.NewMinIO(cfg)
}

// newArchiveCmd inspects the NOMIS payloads archived by the sync endpoint.
func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect archived NOMIS sync payloads",
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print an archived payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStorage(config.Load().MinIO)
			if err != nil {
				return err
			}
			rc, _, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get %s: %w", args[0], err)
			}
			defer rc.Close()
			_, err = io.Copy(cmd.OutOrStdout(), rc)
			return err
		},
	}

	var expiry time.Duration
	url := &cobra.Command{
		Use:   "url <key>",
		Short: "Print a presigned download URL for an archived payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStorage(config.Load().MinIO)
			if err != nil {
				return err
			}
			u, err := st.PresignGet(cmd.Context(), args[0], expiry)
			if err != nil {
				return fmt.Errorf("presign %s: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}
	url.Flags().DurationVar(&expiry, "expiry", 15*time.Minute, "URL lifetime")

	rm := &cobra.Command{
		Use:   "rm <key>",
		Short: "Delete an archived payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStorage(config.Load().MinIO)
			if err != nil {
				return err
			}
			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.AddCommand(get, url, rm)
	return cmd
}

// newJoinDescriptionCmd renders split-description output back into a single NOMIS description.
func newJoinDescriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join-description",
		Short: "Join split-description JSON from stdin back into a NOMIS description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in splitOutput
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&in); err != nil {
				return fmt.Errorf("decode input: %w", err)
			}
			var original string
			if in.Original != nil {
				original = *in.Original
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), nomis.JoinDescription(original, in.Addenda))
			return err
		},
	}
}
