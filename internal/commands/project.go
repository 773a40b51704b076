package commands

import (
	"fmt"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/handler"
	"github.com/spf13/cobra"
)

func newProjectCommand(root *rootOptions) *cobra.Command {
	var (
		snapshotPath string
		months       int
		reference    string
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "List obligations due over the coming months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, policy, err := root.load(snapshotPath)
			if err != nil {
				return err
			}
			if reference != "" {
				if snap.ReferenceDate, err = time.Parse("2006-01-02", reference); err != nil {
					return fmt.Errorf("%w: --reference must be YYYY-MM-DD", domain.ErrInvalidInput)
				}
			}

			projection, err := snap.Service(policy).ProjectWorkspace(cmd.Context(), 0, months)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), handler.NewProjectionResponse(projection, nil))
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "Snapshot TOML file")
	cmd.Flags().IntVarP(&months, "months", "m", 0, "Months to project (default 3)")
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "Reference date YYYY-MM-DD (default: snapshot reference_date, then today)")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}
