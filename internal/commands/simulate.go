package commands

import (
	"fmt"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/forecast"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/handler"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSimulateCommand(root *rootOptions) *cobra.Command {
	var (
		snapshotPath    string
		months          int
		startingBalance string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate month-by-month cash flow",
		Long:  "Simulate cash flow from a baseline derived from the snapshot's records. Values under [baseline] replace derived figures.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, policy, err := root.load(snapshotPath)
			if err != nil {
				return err
			}
			if startingBalance != "" {
				if snap.StartingBalance, err = decimal.NewFromString(startingBalance); err != nil {
					return fmt.Errorf("%w: --starting-balance must be a decimal", domain.ErrInvalidInput)
				}
			}

			result, err := snap.Service(policy).SimulateWorkspace(cmd.Context(), 0, snap.Baseline, snap.Overrides, months, snap.StartingBalance)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), handler.NewSimulationResponse(result))
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "Snapshot TOML file")
	cmd.Flags().IntVarP(&months, "months", "m", forecast.DefaultSimulationMonths, "Months to simulate")
	cmd.Flags().StringVarP(&startingBalance, "starting-balance", "b", "", "Opening balance (default: snapshot starting_balance)")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}
